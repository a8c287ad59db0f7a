package summarizer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/briefly/briefly-backend/internal/models"
)

const (
	systemPrompt = "You are a helpful assistant that creates high-quality summaries of text content."

	maxTokens   = 500
	temperature = 0.3
)

// stylePrompts maps each summary style to its instruction template
var stylePrompts = map[models.SummaryStyle]string{
	models.StyleConcise:      "Please provide a concise summary of the following text. Keep it brief and to the point, highlighting only the most important information:",
	models.StyleDetailed:     "Please provide a detailed summary of the following text. Include key points, important details, and context while maintaining clarity:",
	models.StyleBulletPoints: "Please provide a summary of the following text in bullet point format. Organize the information into clear, digestible bullet points:",
}

// GenerationError wraps any failure from the generation service
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return "Summary generation failed: " + e.Message
}

// chatCompleter is the slice of the OpenAI client the summarizer needs.
// *openai.Client satisfies it.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces summary text from source text
type Generator interface {
	Generate(ctx context.Context, text string, style models.SummaryStyle) (string, error)
}

// OpenAIGenerator implements Generator using the OpenAI chat completion API
type OpenAIGenerator struct {
	client chatCompleter
	model  string
}

// NewOpenAIGenerator creates a generator backed by the given API key
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate produces a summary of text in the requested style.
// Temperature is kept low to favor faithfulness over creativity.
// No retry happens here; every failure comes back as *GenerationError.
func (g *OpenAIGenerator) Generate(ctx context.Context, text string, style models.SummaryStyle) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Message: "Text cannot be empty"}
	}
	if utf8.RuneCountInString(text) > models.MaxOriginalTextLength {
		return "", &GenerationError{Message: "Text is too long. Please limit to 10,000 characters."}
	}

	prompt, ok := stylePrompts[style]
	if !ok {
		prompt = stylePrompts[models.StyleConcise]
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\n%s", prompt, text)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Message: "Failed to generate summary"}
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", &GenerationError{Message: "Failed to generate summary"}
	}

	return summary, nil
}
