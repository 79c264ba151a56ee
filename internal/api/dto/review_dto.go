package dto

type ReviewItemDTO struct {
	ID         string   `json:"id"`
	ContentID  uint64   `json:"contentId"`
	Kind       string   `json:"kind"`
	AuthorID   uint64   `json:"authorId"`
	Text       string   `json:"text"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Reason     string   `json:"reason"`
	Categories []string `json:"categories,omitempty"`
	Confidence int      `json:"confidence"`
	Fallback   bool     `json:"fallback"`
	CreatedAt  string   `json:"createdAt"`
}

type ResolveReviewRequest struct {
	Approve bool `json:"approve"`
}
