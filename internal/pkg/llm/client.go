package llm

import (
	"Plaza/internal/api/config"
	"context"
	"strings"
	"time"

	log "log/slog"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
)

const maxAttempts = 3

// backoffUnit scales the retry delay. Tests shrink it.
var backoffUnit = time.Second

// FillTemplate substitutes {key} placeholders with literal string
// replacement. Callers must pre-escape values; this is not a
// templating language.
func FillTemplate(template string, vars map[string]string) string {
	out := template
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}

// classify runs fetch under a per-operation budget with retries.
// The retry after failed attempt n (counted from 0) waits 2^n units,
// so the sequence is 1s, 2s. Schema failures come from the caller's
// extraction step and never re-enter this loop.
// retryDelay doubles from one unit: 1, 2, 4, ... units before the
// attempt with the given index.
func retryDelay(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * backoffUnit
}

func classify(ctx context.Context, timeout time.Duration, fetch func(context.Context) (*llms.ContentResponse, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := retryDelay(attempt)
			select {
			case <-ctx.Done():
				return "", errors.Wrap(ErrModerationTimeout, ctx.Err().Error())
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := fetch(callCtx)
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err != nil {
			if timedOut {
				lastErr = errors.Wrap(ErrModerationTimeout, err.Error())
			} else {
				lastErr = errors.Wrap(ErrModerationTransport, err.Error())
			}
			log.Warn("moderation model call failed", "attempt", attempt+1, "err", err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = errors.Wrap(ErrModerationTransport, "empty choices in reply")
			log.Warn("moderation model returned no choices", "attempt", attempt+1)
			continue
		}

		return resp.Choices[0].Content, nil
	}
	return "", lastErr
}

func fetchText(ctx context.Context, systemPrompt, userPrompt string) (*llms.ContentResponse, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.TextModel),
		llms.WithTemperature(0.1),
	)
}

func fetchVision(ctx context.Context, systemPrompt string, parts []llms.ContentPart) (*llms.ContentResponse, error) {
	if err := ImageSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer ImageSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: parts,
		},
	}
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.VisionModel),
		llms.WithTemperature(0.1),
	)
}

// FlaggedWord is one span the censor model reported in a comment.
type FlaggedWord struct {
	Palabra   string `json:"palabra"`
	Categoria string `json:"categoria"`
}

type CommentCensorResult struct {
	Palabras []FlaggedWord `json:"palabras"`
	Razon    string        `json:"razon"`
}

type ContentValidateResult struct {
	Apropiado  bool     `json:"apropiado"`
	Razon      string   `json:"razon"`
	Confianza  int      `json:"confianza"`
	Categorias []string `json:"categorias"`
	Accion     string   `json:"accion"`
}

// CensorComment asks the text model which words in a comment are
// objectionable. Redaction itself happens locally.
func CensorComment(ctx context.Context, text string) (*CommentCensorResult, error) {
	timeout := time.Duration(config.Cfg.Moderation.CommentTimeout) * time.Second
	prompt := FillTemplate(commentCensorPrompt, map[string]string{"texto": text})

	raw, err := classify(ctx, timeout, func(c context.Context) (*llms.ContentResponse, error) {
		return fetchText(c, prompt, text)
	})
	if err != nil {
		return nil, err
	}

	var result CommentCensorResult
	if err := extractJSON(raw, &result); err != nil {
		log.Error("failed to parse comment censor reply", "err", err)
		return nil, err
	}
	return &result, nil
}

// ValidateContent classifies post text under the content category the
// author filed it under.
func ValidateContent(ctx context.Context, text, category string) (*ContentValidateResult, error) {
	timeout := time.Duration(config.Cfg.Moderation.TextTimeout) * time.Second
	prompt := FillTemplate(contentValidatePrompt, map[string]string{
		"texto":     text,
		"categoria": category,
	})

	raw, err := classify(ctx, timeout, func(c context.Context) (*llms.ContentResponse, error) {
		return fetchText(c, prompt, text)
	})
	if err != nil {
		return nil, err
	}

	var result ContentValidateResult
	if err := extractJSON(raw, &result); err != nil {
		log.Error("failed to parse content validation reply", "err", err)
		return nil, err
	}
	return &result, nil
}

// ValidateImage classifies an image together with the text that
// accompanies it. The image arrives as raw bytes so the vision model
// never has to reach into private object storage itself.
func ValidateImage(ctx context.Context, imageData []byte, mimeType, relatedText string) (*ContentValidateResult, error) {
	timeout := time.Duration(config.Cfg.Moderation.ImageTimeout) * time.Second
	prompt := FillTemplate(imageValidatePrompt, map[string]string{"texto": relatedText})

	parts := []llms.ContentPart{
		llms.BinaryPart(mimeType, imageData),
		llms.TextPart(relatedText),
	}

	raw, err := classify(ctx, timeout, func(c context.Context) (*llms.ContentResponse, error) {
		return fetchVision(c, prompt, parts)
	})
	if err != nil {
		return nil, err
	}

	var result ContentValidateResult
	if err := extractJSON(raw, &result); err != nil {
		log.Error("failed to parse image validation reply", "err", err)
		return nil, err
	}
	return &result, nil
}
