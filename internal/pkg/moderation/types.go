package moderation

// Wire-level values shared with clients and the review tooling. These
// strings are stored in rows and pushed over the stream, so they stay
// in the product language.
const (
	SeverityNone   = "ninguno"
	SeverityLow    = "bajo"
	SeverityMedium = "medio"
	SeverityHigh   = "alto"

	ActionPublish  = "publicar"
	ActionReview   = "revision"
	ActionReject   = "rechazar"
	ActionFallback = "error"

	CategoryInsultDirect = "insulto_directo"
	CategoryInsultEntity = "insulto_entidad"
	CategorySexual       = "sexual"
	CategoryThreat       = "amenaza"
	CategoryHate         = "odio"
)

// ConfidenceFloor is the sub-verdict confidence below which an
// approval is demoted to human review.
const ConfidenceFloor = 70

// CommentDecision is the outcome of moderating a single comment.
type CommentDecision struct {
	RedactedText string
	WasRedacted  bool
	Severity     string
	FlaggedCount int
	NeedsReview  bool
	Reason       string
}

// ContentDecision is the outcome of moderating post text or an image.
type ContentDecision struct {
	Approved          bool
	Reason            string
	Confidence        int
	FlaggedCategories []string
	Action            string
}
