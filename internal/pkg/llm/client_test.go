package llm

import (
	"Plaza/internal/api/config"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	calls int
	reply func(call int) (*llms.ContentResponse, error)
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	return f.reply(f.calls)
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func textReply(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

func setupClient(t *testing.T, fake *fakeModel) {
	t.Helper()

	origClient := llmClient
	origBackoff := backoffUnit
	origCfg := config.Cfg

	llmClient = fake
	backoffUnit = time.Millisecond
	config.Cfg = &config.Config{
		Moderation: config.ModerationConfig{
			CommentTimeout: 5,
			TextTimeout:    5,
			ImageTimeout:   10,
		},
	}
	commentCensorPrompt = "Censura: {texto}"
	contentValidatePrompt = "Valida: {texto} como {categoria}"
	imageValidatePrompt = "Valida imagen: {texto}"

	t.Cleanup(func() {
		llmClient = origClient
		backoffUnit = origBackoff
		config.Cfg = origCfg
	})
}

func TestCensorComment(t *testing.T) {
	t.Run("parses flagged words", func(t *testing.T) {
		fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
			return textReply(`{"palabras": [{"palabra": "pendejo", "categoria": "insulto_directo"}], "razon": "insulto"}`), nil
		}}
		setupClient(t, fake)

		got, err := CensorComment(context.Background(), "Eres un pendejo")
		if err != nil {
			t.Fatalf("CensorComment() error = %v", err)
		}
		if len(got.Palabras) != 1 || got.Palabras[0].Palabra != "pendejo" {
			t.Errorf("Palabras = %+v", got.Palabras)
		}
	})

	t.Run("retries transport failures then gives up", func(t *testing.T) {
		fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
			return nil, errors.New("connection refused")
		}}
		setupClient(t, fake)

		_, err := CensorComment(context.Background(), "hola")
		if !errors.Is(err, ErrModerationTransport) {
			t.Fatalf("error = %v, want ErrModerationTransport", err)
		}
		if fake.calls != 3 {
			t.Errorf("calls = %d, want 3", fake.calls)
		}
	})

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
			if call < 3 {
				return nil, errors.New("temporarily unavailable")
			}
			return textReply(`{"palabras": [], "razon": ""}`), nil
		}}
		setupClient(t, fake)

		got, err := CensorComment(context.Background(), "hola")
		if err != nil {
			t.Fatalf("CensorComment() error = %v", err)
		}
		if len(got.Palabras) != 0 {
			t.Errorf("Palabras = %+v, want empty", got.Palabras)
		}
		if fake.calls != 3 {
			t.Errorf("calls = %d, want 3", fake.calls)
		}
	})

	t.Run("deadline maps to timeout error", func(t *testing.T) {
		fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
			return nil, context.DeadlineExceeded
		}}
		setupClient(t, fake)

		_, err := CensorComment(context.Background(), "hola")
		if !errors.Is(err, ErrModerationTimeout) {
			t.Fatalf("error = %v, want ErrModerationTimeout", err)
		}
	})

	t.Run("malformed reply is terminal", func(t *testing.T) {
		fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
			return textReply("lo siento, no hay JSON aqui"), nil
		}}
		setupClient(t, fake)

		_, err := CensorComment(context.Background(), "hola")
		if !errors.Is(err, ErrModerationSchema) {
			t.Fatalf("error = %v, want ErrModerationSchema", err)
		}
		if fake.calls != 1 {
			t.Errorf("calls = %d, want 1 (schema failures are not retried)", fake.calls)
		}
	})
}

func TestValidateContent(t *testing.T) {
	fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
		return textReply("```json\n{\"apropiado\": false, \"razon\": \"incita odio\", \"confianza\": 92, \"categorias\": [\"odio\"], \"accion\": \"rechazar\"}\n```"), nil
	}}
	setupClient(t, fake)

	got, err := ValidateContent(context.Background(), "texto malo", "general")
	if err != nil {
		t.Fatalf("ValidateContent() error = %v", err)
	}
	if got.Apropiado {
		t.Error("Apropiado = true, want false")
	}
	if got.Accion != "rechazar" {
		t.Errorf("Accion = %q, want rechazar", got.Accion)
	}
	if got.Confianza != 92 {
		t.Errorf("Confianza = %d, want 92", got.Confianza)
	}
}

func TestValidateImage(t *testing.T) {
	fake := &fakeModel{reply: func(call int) (*llms.ContentResponse, error) {
		return textReply(`{"apropiado": true, "razon": "", "confianza": 85, "categorias": [], "accion": "publicar"}`), nil
	}}
	setupClient(t, fake)

	got, err := ValidateImage(context.Background(), []byte{0xff, 0xd8}, "image/jpeg", "mi foto")
	if err != nil {
		t.Fatalf("ValidateImage() error = %v", err)
	}
	if !got.Apropiado || got.Accion != "publicar" {
		t.Errorf("result = %+v", got)
	}
}

func TestRetryDelayDoublesFromOneUnit(t *testing.T) {
	orig := backoffUnit
	backoffUnit = time.Second
	defer func() { backoffUnit = orig }()

	want := []time.Duration{time.Second, 2 * time.Second}
	for i, w := range want {
		if got := retryDelay(i + 1); got != w {
			t.Errorf("retryDelay(%d) = %v, want %v", i+1, got, w)
		}
	}
}
