package dto

type CreatePostRequest struct {
	Content  string  `json:"content" binding:"required,max=5000"`
	Category string  `json:"category" binding:"required,max=32"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,max=512"`
}

type PostDTO struct {
	ID        uint64         `json:"id"`
	Content   string         `json:"content"`
	Category  string         `json:"category"`
	ImageURL  *string        `json:"imageUrl"`
	Status    int8           `json:"status"`
	CreatedAt string         `json:"createdAt"`
	Author    *UserSimpleDTO `json:"author,omitempty"`
}

// ModerationResultDTO echoes the verdict back to the author so a
// rejection always carries a machine-checkable reason.
type ModerationResultDTO struct {
	Approved          bool     `json:"approved"`
	Action            string   `json:"accion"`
	Reason            string   `json:"razon"`
	Confidence        int      `json:"confianza"`
	FlaggedCategories []string `json:"categorias,omitempty"`
}

type CreatePostResponse struct {
	Post       *PostDTO             `json:"post,omitempty"`
	Moderation *ModerationResultDTO `json:"moderation"`
}
