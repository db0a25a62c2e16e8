package dto

// NoticeInput is the create/update payload for notices.
type NoticeInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Important bool   `json:"important"`
}

// BoardPostInput is the create/update payload for board posts.
type BoardPostInput struct {
	Title   string  `json:"title" validate:"required"`
	Content string  `json:"content" validate:"required"`
	Summary *string `json:"summary"`
	Author  string  `json:"author" validate:"required"`
	Tags    *string `json:"tags"`
}
