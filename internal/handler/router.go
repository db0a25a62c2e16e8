package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/middleware"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth        *AuthHandler
	Requests    *RequestHandler
	Venues      *VenueHandler
	Instructors *InstructorHandler
	Notices     *NoticeHandler
	Exports     *ExportHandler
}

// RegisterRoutes mounts the API surface under the given prefix. Reads are open
// to any authenticated account; lifecycle and directory writes are admin-only.
func RegisterRoutes(r *gin.Engine, prefix string, parser middleware.TokenParser, h Handlers) {
	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/access-request", h.Auth.RequestAccess)
		auth.POST("/register", middleware.JWT(parser), middleware.AdminOnly(), h.Auth.Register)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(parser))

	requests := authed.Group("/requests")
	{
		requests.POST("", h.Requests.Create)
		requests.GET("", h.Requests.List)
		requests.GET("/availability", h.Requests.CheckAvailability)
		requests.GET("/:id", h.Requests.Get)
		requests.PATCH("/:id/status", middleware.AdminOnly(), h.Requests.UpdateStatus)
		requests.PATCH("/:id/instructors", middleware.AdminOnly(), h.Requests.AssignInstructors)
		requests.PATCH("/:id/plan", middleware.AdminOnly(), h.Requests.UpdatePlan)
	}

	venues := authed.Group("/venues")
	{
		venues.GET("", h.Venues.List)
		venues.GET("/:id", h.Venues.Get)
		venues.GET("/:id/rooms", h.Venues.ListRooms)
		venues.GET("/:id/contacts", h.Venues.ListContacts)
		venues.POST("", middleware.AdminOnly(), h.Venues.Create)
		venues.PUT("/:id", middleware.AdminOnly(), h.Venues.Update)
		venues.DELETE("/:id", middleware.AdminOnly(), h.Venues.Delete)
		venues.POST("/:id/rooms", middleware.AdminOnly(), h.Venues.AddRoom)
		venues.POST("/:id/contacts", middleware.AdminOnly(), h.Venues.AddContact)
	}

	instructors := authed.Group("/instructors")
	{
		instructors.GET("", h.Instructors.List)
		instructors.GET("/:id", h.Instructors.Get)
		instructors.GET("/:id/schedules", h.Instructors.ListSchedules)
		instructors.POST("", middleware.AdminOnly(), h.Instructors.Create)
		instructors.PUT("/:id", middleware.AdminOnly(), h.Instructors.Update)
		instructors.DELETE("/:id", middleware.AdminOnly(), h.Instructors.Delete)
		instructors.POST("/:id/schedules", middleware.AdminOnly(), h.Instructors.AddSchedule)
		instructors.DELETE("/:id/schedules/:scheduleId", middleware.AdminOnly(), h.Instructors.RemoveSchedule)
	}

	notices := authed.Group("/notices")
	{
		notices.GET("", h.Notices.ListNotices)
		notices.POST("", middleware.AdminOnly(), h.Notices.CreateNotice)
		notices.DELETE("/:id", middleware.AdminOnly(), h.Notices.DeleteNotice)
	}

	board := authed.Group("/board")
	{
		board.GET("", h.Notices.ListBoardPosts)
		board.POST("", middleware.AdminOnly(), h.Notices.CreateBoardPost)
		board.DELETE("/:id", middleware.AdminOnly(), h.Notices.DeleteBoardPost)
	}

	if h.Exports != nil {
		exports := api.Group("/exports")
		exports.GET("/schedule", middleware.JWT(parser), middleware.AdminOnly(), h.Exports.Export)
		// Download links are pre-authorised by their signed token.
		exports.GET("/download", h.Exports.Download)
	}
}
