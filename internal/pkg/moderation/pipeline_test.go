package moderation

import (
	"Plaza/internal/api/config"
	"Plaza/internal/pkg/llm"
	"context"
	"testing"
)

func TestModerateComment(t *testing.T) {
	orig := censorComment
	defer func() { censorComment = orig }()

	t.Run("flagged word is redacted", func(t *testing.T) {
		censorComment = func(ctx context.Context, text string) (*llm.CommentCensorResult, error) {
			return &llm.CommentCensorResult{
				Palabras: []llm.FlaggedWord{{Palabra: "pendejo", Categoria: CategoryInsultDirect}},
				Razon:    "insulto directo",
			}, nil
		}

		got := ModerateComment(context.Background(), "Eres un pendejo")
		if got.RedactedText != "Eres un *******" {
			t.Errorf("RedactedText = %q", got.RedactedText)
		}
		if !got.WasRedacted {
			t.Error("WasRedacted = false, want true")
		}
		if got.Severity != SeverityLow {
			t.Errorf("Severity = %q, want %q", got.Severity, SeverityLow)
		}
		if got.FlaggedCount != 1 {
			t.Errorf("FlaggedCount = %d, want 1", got.FlaggedCount)
		}
		if got.NeedsReview {
			t.Error("NeedsReview = true, want false")
		}
	})

	t.Run("clean comment passes untouched", func(t *testing.T) {
		censorComment = func(ctx context.Context, text string) (*llm.CommentCensorResult, error) {
			return &llm.CommentCensorResult{}, nil
		}

		got := ModerateComment(context.Background(), "hola a todos")
		if got.WasRedacted || got.Severity != SeverityNone || got.NeedsReview {
			t.Errorf("unexpected decision for clean text: %+v", got)
		}
	})

	t.Run("threat category forces high severity", func(t *testing.T) {
		censorComment = func(ctx context.Context, text string) (*llm.CommentCensorResult, error) {
			return &llm.CommentCensorResult{
				Palabras: []llm.FlaggedWord{{Palabra: "matarte", Categoria: CategoryThreat}},
			}, nil
		}

		got := ModerateComment(context.Background(), "voy a matarte")
		if got.Severity != SeverityHigh {
			t.Errorf("Severity = %q, want %q", got.Severity, SeverityHigh)
		}
		if !got.NeedsReview {
			t.Error("NeedsReview = false, want true")
		}
	})

	t.Run("many flagged words bucket to medium", func(t *testing.T) {
		censorComment = func(ctx context.Context, text string) (*llm.CommentCensorResult, error) {
			return &llm.CommentCensorResult{
				Palabras: []llm.FlaggedWord{
					{Palabra: "a", Categoria: CategoryInsultDirect},
					{Palabra: "b", Categoria: CategoryInsultDirect},
					{Palabra: "c", Categoria: CategoryInsultDirect},
				},
			}, nil
		}

		got := ModerateComment(context.Background(), "a b c")
		if got.Severity != SeverityMedium {
			t.Errorf("Severity = %q, want %q", got.Severity, SeverityMedium)
		}
	})

	t.Run("backend failure fails open unredacted", func(t *testing.T) {
		censorComment = func(ctx context.Context, text string) (*llm.CommentCensorResult, error) {
			return nil, llm.ErrModerationTimeout
		}

		got := ModerateComment(context.Background(), "Eres un pendejo")
		if got.RedactedText != "Eres un pendejo" {
			t.Errorf("RedactedText = %q, want original text", got.RedactedText)
		}
		if got.WasRedacted {
			t.Error("WasRedacted = true, want false")
		}
		if !got.NeedsReview {
			t.Error("NeedsReview = false, want true on fallback")
		}
	})
}

func TestModeratePost(t *testing.T) {
	orig := validateContent
	defer func() { validateContent = orig }()

	t.Run("confident approval publishes", func(t *testing.T) {
		validateContent = func(ctx context.Context, text, category string) (*llm.ContentValidateResult, error) {
			return &llm.ContentValidateResult{
				Apropiado: true,
				Confianza: 95,
				Accion:    ActionPublish,
			}, nil
		}

		got := ModeratePost(context.Background(), "buen dia", "general")
		if !got.Approved || got.Action != ActionPublish {
			t.Errorf("decision = %+v, want approved publish", got)
		}
	})

	t.Run("low confidence approval demoted to review", func(t *testing.T) {
		validateContent = func(ctx context.Context, text, category string) (*llm.ContentValidateResult, error) {
			return &llm.ContentValidateResult{
				Apropiado: true,
				Confianza: 50,
				Accion:    ActionPublish,
			}, nil
		}

		got := ModeratePost(context.Background(), "texto dudoso", "general")
		if got.Approved || got.Action != ActionReview {
			t.Errorf("decision = %+v, want review", got)
		}
	})

	t.Run("unknown action defaults to review", func(t *testing.T) {
		validateContent = func(ctx context.Context, text, category string) (*llm.ContentValidateResult, error) {
			return &llm.ContentValidateResult{
				Apropiado: true,
				Confianza: 90,
				Accion:    "quemar",
			}, nil
		}

		got := ModeratePost(context.Background(), "texto", "general")
		if got.Action != ActionReview {
			t.Errorf("Action = %q, want %q", got.Action, ActionReview)
		}
	})

	t.Run("exhausted retries fail open", func(t *testing.T) {
		validateContent = func(ctx context.Context, text, category string) (*llm.ContentValidateResult, error) {
			return nil, llm.ErrModerationTimeout
		}

		got := ModeratePost(context.Background(), "texto", "general")
		if !got.Approved {
			t.Error("Approved = false, want fail-open true")
		}
		if got.Action != ActionFallback {
			t.Errorf("Action = %q, want %q", got.Action, ActionFallback)
		}
		if got.Confidence != 0 {
			t.Errorf("Confidence = %d, want 0", got.Confidence)
		}
	})
}

func TestModerateImage(t *testing.T) {
	origFetch := fetchImage
	origValidate := validateImage
	origCfg := config.Cfg
	config.Cfg = &config.Config{MinIO: config.MinIOConfig{
		InternalEndpoint: "minio.internal:9000",
		MainBucket:       "media",
	}}
	defer func() {
		fetchImage = origFetch
		validateImage = origValidate
		config.Cfg = origCfg
	}()

	t.Run("rejecting verdict propagates", func(t *testing.T) {
		fetchImage = func(ctx context.Context, url string) ([]byte, string, error) {
			return []byte{0xff, 0xd8}, "image/jpeg", nil
		}
		validateImage = func(ctx context.Context, data []byte, mimeType, relatedText string) (*llm.ContentValidateResult, error) {
			return &llm.ContentValidateResult{
				Apropiado:  false,
				Confianza:  90,
				Categorias: []string{CategorySexual},
				Accion:     ActionReject,
			}, nil
		}

		got := ModerateImage(context.Background(), "media/foto.jpg", "mira esto")
		if got.Approved || got.Action != ActionReject {
			t.Errorf("decision = %+v, want reject", got)
		}
	})

	t.Run("fetch failure fails open", func(t *testing.T) {
		fetchImage = func(ctx context.Context, url string) ([]byte, string, error) {
			return nil, "", llm.ErrModerationTransport
		}

		got := ModerateImage(context.Background(), "media/rota.jpg", "")
		if !got.Approved || got.Action != ActionFallback {
			t.Errorf("decision = %+v, want fail-open", got)
		}
	})
}

func TestCombine(t *testing.T) {
	t.Parallel()

	publish := &ContentDecision{Approved: true, Confidence: 90, Action: ActionPublish}
	review := &ContentDecision{Confidence: 80, Action: ActionReview}
	reject := &ContentDecision{Confidence: 95, Action: ActionReject, FlaggedCategories: []string{CategoryHate}}
	fallback := &ContentDecision{Approved: true, Confidence: 0, Action: ActionFallback}

	tests := []struct {
		name       string
		content    *ContentDecision
		image      *ContentDecision
		wantAction string
	}{
		{"reject beats review", review, reject, ActionReject},
		{"review beats publish", publish, review, ActionReview},
		{"both publish stays publish", publish, publish, ActionPublish},
		{"fallback survives alongside publish", fallback, publish, ActionFallback},
		{"reject beats fallback", fallback, reject, ActionReject},
		{"nil image keeps content verdict", reject, nil, ActionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Combine(tt.content, tt.image)
			if got.Action != tt.wantAction {
				t.Errorf("Combine() action = %q, want %q", got.Action, tt.wantAction)
			}
		})
	}

	t.Run("confidence takes the minimum", func(t *testing.T) {
		t.Parallel()
		got := Combine(publish, review)
		if got.Confidence != 80 {
			t.Errorf("Confidence = %d, want 80", got.Confidence)
		}
	})

	t.Run("categories merge without duplicates", func(t *testing.T) {
		t.Parallel()
		a := &ContentDecision{Action: ActionReject, FlaggedCategories: []string{CategoryHate, CategorySexual}}
		b := &ContentDecision{Action: ActionReview, FlaggedCategories: []string{CategoryHate}}
		got := Combine(a, b)
		if len(got.FlaggedCategories) != 2 {
			t.Errorf("FlaggedCategories = %v, want 2 distinct", got.FlaggedCategories)
		}
	})
}
