package moderation

import (
	"Plaza/internal/pkg/llm"
	"Plaza/internal/pkg/minio"
	"context"
	log "log/slog"
)

const fallbackReason = "fallo del moderador automatico"

// Indirection over the model client so tests can stub the remote.
var (
	censorComment   = llm.CensorComment
	validateContent = llm.ValidateContent
	validateImage   = llm.ValidateImage
	fetchImage      = FetchImage
)

// ModerateComment censors a single comment. Moderation backend
// failures never block the comment; the text passes through
// unredacted and is parked for human review instead.
func ModerateComment(ctx context.Context, text string) *CommentDecision {
	result, err := censorComment(ctx, text)
	if err != nil {
		log.Error("comment moderation failed open", "err", err)
		return &CommentDecision{
			RedactedText: text,
			WasRedacted:  false,
			Severity:     SeverityNone,
			FlaggedCount: 0,
			NeedsReview:  true,
			Reason:       fallbackReason,
		}
	}

	words := make([]string, 0, len(result.Palabras))
	hasGrave := false
	for _, fw := range result.Palabras {
		words = append(words, fw.Palabra)
		if fw.Categoria == CategoryThreat || fw.Categoria == CategoryHate {
			hasGrave = true
		}
	}

	redacted := Redact(text, words)
	severity := severityFor(len(words), hasGrave)

	return &CommentDecision{
		RedactedText: redacted,
		WasRedacted:  redacted != text,
		Severity:     severity,
		FlaggedCount: len(words),
		NeedsReview:  severity == SeverityHigh,
		Reason:       result.Razon,
	}
}

func severityFor(count int, hasGrave bool) string {
	switch {
	case hasGrave, count >= 6:
		return SeverityHigh
	case count >= 3:
		return SeverityMedium
	case count >= 1:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// ModeratePost classifies post text. Any client failure converts to a
// fail-open publish with zero confidence.
func ModeratePost(ctx context.Context, text, category string) *ContentDecision {
	result, err := validateContent(ctx, text, category)
	if err != nil {
		log.Error("post moderation failed open", "err", err)
		return failOpenDecision()
	}
	return normalize(result)
}

// ModerateImage resolves the stored media reference, downloads and
// normalizes the image, and classifies it with its surrounding text.
func ModerateImage(ctx context.Context, imageRef, relatedText string) *ContentDecision {
	url := minio.ResolveFetchURL(imageRef)

	data, mimeType, err := fetchImage(ctx, url)
	if err != nil {
		log.Error("image moderation failed open on fetch", "err", err)
		return failOpenDecision()
	}

	result, err := validateImage(ctx, data, mimeType, relatedText)
	if err != nil {
		log.Error("image moderation failed open", "err", err)
		return failOpenDecision()
	}
	return normalize(result)
}

// Combine merges the text and image sub-verdicts into the final gate.
// Reject wins over review wins over publish; the fallback marker
// survives only when nothing worse applies.
func Combine(content, image *ContentDecision) *ContentDecision {
	if image == nil {
		return content
	}
	if content == nil {
		return image
	}

	worse := content
	if actionRank(image.Action) > actionRank(content.Action) {
		worse = image
	}

	merged := &ContentDecision{
		Approved:          worse.Approved,
		Reason:            worse.Reason,
		Confidence:        minInt(content.Confidence, image.Confidence),
		FlaggedCategories: mergeCategories(content.FlaggedCategories, image.FlaggedCategories),
		Action:            worse.Action,
	}

	if actionRank(merged.Action) == 0 &&
		(content.Action == ActionFallback || image.Action == ActionFallback) {
		merged.Action = ActionFallback
		merged.Approved = true
	}
	return merged
}

func normalize(result *llm.ContentValidateResult) *ContentDecision {
	action := result.Accion
	switch action {
	case ActionPublish, ActionReview, ActionReject:
	default:
		action = ActionReview
	}

	if action == ActionPublish && result.Confianza < ConfidenceFloor {
		action = ActionReview
	}
	if action == ActionPublish && !result.Apropiado {
		action = ActionReview
	}

	return &ContentDecision{
		Approved:          action == ActionPublish,
		Reason:            result.Razon,
		Confidence:        result.Confianza,
		FlaggedCategories: result.Categorias,
		Action:            action,
	}
}

func failOpenDecision() *ContentDecision {
	return &ContentDecision{
		Approved:   true,
		Reason:     fallbackReason,
		Confidence: 0,
		Action:     ActionFallback,
	}
}

func actionRank(action string) int {
	switch action {
	case ActionReject:
		return 2
	case ActionReview:
		return 1
	default:
		return 0
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func mergeCategories(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, c := range append(append([]string{}, a...), b...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
