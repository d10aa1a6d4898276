package dto

type CreatePostDTO struct {
	Content   string `json:"content" binding:"required"`
	CreatedBy string `json:"createdBy" binding:"required"`
}

// UpdatePostDTO — all fields are optional pointers
type UpdatePostDTO struct {
	Content   *string `json:"content"`
	CreatedBy *string `json:"createdBy"`
}
