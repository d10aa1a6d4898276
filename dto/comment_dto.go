package dto

type CreateCommentDTO struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
	Sender  string `json:"sender" binding:"required"`
}

type UpdateCommentDTO struct {
	Content *string `json:"content"`
}
