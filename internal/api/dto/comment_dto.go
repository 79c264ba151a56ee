package dto

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentDTO struct {
	ID          uint64         `json:"id"`
	PostID      uint64         `json:"postId"`
	Content     string         `json:"content"`
	WasRedacted bool           `json:"wasRedacted"`
	Severity    string         `json:"nivel_censura"`
	CreatedAt   string         `json:"createdAt"`
	Author      *UserSimpleDTO `json:"author,omitempty"`
}
