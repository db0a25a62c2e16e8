package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "필승해군캠프 API",
        "description": "Scheduling backend for the Pilseung Navy Camp training program",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, registration and access requests"},
        {"name": "Requests", "description": "Training request lifecycle"},
        {"name": "Availability", "description": "Venue and instructor availability"},
        {"name": "Venues", "description": "Training venue directory"},
        {"name": "Instructors", "description": "Instructor directory and schedules"},
        {"name": "Notices", "description": "Announcements and board posts"},
        {"name": "Exports", "description": "Confirmed-schedule exports"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue a JWT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a unit or admin account (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/access-request": {
            "post": {
                "tags": ["Auth"],
                "summary": "Ask the administrator for an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AccessRequestInput"}}
                ],
                "responses": {
                    "202": {"description": "Accepted"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List training requests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "fleet", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a training request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRequestInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Venue already booked"}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["Requests"],
                "summary": "Get a training request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the owner"}
                }
            }
        },
        "/requests/{id}/status": {
            "patch": {
                "tags": ["Requests"],
                "summary": "Advance, reject or cancel a request (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid transition or concurrent change"}
                }
            }
        },
        "/requests/{id}/instructors": {
            "patch": {
                "tags": ["Requests"],
                "summary": "Assign category instructors (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignInstructorsInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/{id}/plan": {
            "patch": {
                "tags": ["Requests"],
                "summary": "Attach a training plan (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePlanInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Booked venues and instructors for a date range",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/schedule": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the confirmed schedule as CSV or PDF (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "startDate", "in": "query", "required": true, "type": "string"},
                    {"name": "endDate", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an exported file by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Expired or invalid token"}
                }
            }
        }
    },
    "definitions": {
        "LoginInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RegisterInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "UNIT"]},
                "fleet": {"type": "string"},
                "phone": {"type": "string"}
            },
            "required": ["email", "password", "name", "role"]
        },
        "AccessRequestInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rank": {"type": "string"},
                "unit": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "reason": {"type": "string"}
            },
            "required": ["name", "unit", "email"]
        },
        "CreateRequestInput": {
            "type": "object",
            "properties": {
                "venueId": {"type": "integer"},
                "secondVenueId": {"type": "integer"},
                "trainingType": {"type": "string", "enum": ["ONE_DAY", "TWO_DAY"]},
                "fleet": {"type": "string"},
                "ship": {"type": "string"},
                "participantCount": {"type": "integer"},
                "requestDate": {"type": "string"},
                "requestEndDate": {"type": "string"},
                "identityInstructorId": {"type": "integer"},
                "securityInstructorId": {"type": "integer"},
                "communicationInstructorId": {"type": "integer"}
            },
            "required": ["venueId", "trainingType", "fleet", "requestDate"]
        },
        "UpdateStatusInput": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "reason": {"type": "string"}
            },
            "required": ["status"]
        },
        "AssignInstructorsInput": {
            "type": "object",
            "properties": {
                "identityInstructorId": {"type": "integer"},
                "securityInstructorId": {"type": "integer"},
                "communicationInstructorId": {"type": "integer"}
            }
        },
        "UpdatePlanInput": {
            "type": "object",
            "properties": {
                "plan": {"type": "string"}
            },
            "required": ["plan"]
        },
        "AvailabilityResponse": {
            "type": "object",
            "properties": {
                "bookedVenueIds": {"type": "array", "items": {"type": "integer"}},
                "bookedInstructorIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
