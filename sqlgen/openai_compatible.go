package sqlgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultSystemPrompt = "You are a helpful assistant that writes PostgreSQL."

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	Temperature  float32
	SystemPrompt string // optional; overrides the default system message
}

// OpenAICompatibleGenerator talks to any OpenAI-compatible chat endpoint
// (vLLM, llama.cpp, a hosted provider) and post-processes the completion into
// a bare SQL statement.
type OpenAICompatibleGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	system      string
}

var _ Generator = (*OpenAICompatibleGenerator)(nil)

func NewOpenAICompatible(cfg OpenAICompatibleConfig) (*OpenAICompatibleGenerator, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	openaiCfg.BaseURL = cfg.BaseURL
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	openaiCfg.HTTPClient = &http.Client{Timeout: timeout}

	system := cfg.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = defaultSystemPrompt
	}
	return &OpenAICompatibleGenerator{
		client:      openai.NewClientWithConfig(openaiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		system:      system,
	}, nil
}

func (g *OpenAICompatibleGenerator) Model() string { return g.model }

func (g *OpenAICompatibleGenerator) request(question, schemaDDL string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.system},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(question, schemaDDL)},
		},
	}
}

func (g *OpenAICompatibleGenerator) GenerateSQL(ctx context.Context, question, schemaDDL string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.request(question, schemaDDL))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return ExtractSQL(resp.Choices[0].Message.Content), nil
}

// GenerateSQLStream streams the raw completion to onChunk as it arrives and
// returns the extracted SQL once the stream ends. onChunk may be nil.
func (g *OpenAICompatibleGenerator) GenerateSQLStream(ctx context.Context, question, schemaDDL string, onChunk func(string)) (string, error) {
	req := g.request(question, schemaDDL)
	req.Stream = true

	stream, err := g.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var b strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		b.WriteString(delta)
		if onChunk != nil {
			onChunk(delta)
		}
	}
	return ExtractSQL(b.String()), nil
}
