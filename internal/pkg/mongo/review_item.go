package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review queue statuses.
const (
	ReviewStatusPending  = "pendiente"
	ReviewStatusApproved = "aprobado"
	ReviewStatusRejected = "rechazado"
)

// Review queue content kinds.
const (
	ReviewKindPost    = "post"
	ReviewKindComment = "comment"
	ReviewKindImage   = "image"
)

// ReviewItem is one piece of content parked for a human moderator.
// Items land here when the pipeline demotes a verdict to review or
// when a moderation backend failure forces a fail-open publish.
type ReviewItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentID  uint64             `bson:"content_id" json:"contentId"`
	Kind       string             `bson:"kind" json:"kind"`
	AuthorID   uint64             `bson:"author_id" json:"authorId"`
	Text       string             `bson:"text" json:"text"`
	ImageURL   string             `bson:"image_url,omitempty" json:"imageUrl"`
	Reason     string             `bson:"reason" json:"reason"`
	Categories []string           `bson:"categories,omitempty" json:"categories"`
	Confidence int                `bson:"confidence" json:"confidence"`
	Fallback   bool               `bson:"fallback" json:"fallback"`
	Status     string             `bson:"status" json:"status"`
	ReviewerID uint64             `bson:"reviewer_id,omitempty" json:"reviewerId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	ReviewedAt time.Time          `bson:"reviewed_at,omitempty" json:"reviewedAt"`
}
