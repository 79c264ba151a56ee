package llm

import (
	"Plaza/internal/api/config"
	log "log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

var commentCensorPrompt string
var contentValidatePrompt string
var imageValidatePrompt string

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("failed to initialize LLM client", "err", err)
		return err
	}

	llmClient = llm

	// Prompts live in txt files so they can be tuned without a rebuild.
	commentCensorPrompt = readPrompt(cfg.PromptsPath.CommentCensor)
	contentValidatePrompt = readPrompt(cfg.PromptsPath.ContentValidate)
	imageValidatePrompt = readPrompt(cfg.PromptsPath.ImageValidate)

	return nil
}

func readPrompt(file string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("failed to read prompt file", "file", file, "err", err)
		return ""
	}
	return string(data)
}
