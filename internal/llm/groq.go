package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqFallbackModels are tried in sequence when the requested model is
// rejected, e.g. because it has been decommissioned.
var groqFallbackModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-8b-instant",
}

// GroqClient implements the Client interface using Groq's
// OpenAI-compatible API.
type GroqClient struct {
	client openai.Client
	model  string
}

// NewGroqClient creates a new Groq client. The API key is read from
// GROQ_API_KEY, falling back to OPENAI_API_KEY.
func NewGroqClient(model, baseURL string) (*GroqClient, error) {
	if strings.TrimSpace(model) == "" {
		model = groqFallbackModels[0]
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing Groq API key: set GROQ_API_KEY or OPENAI_API_KEY")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &GroqClient{
		client: client,
		model:  model,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *GroqClient) Chat(ctx context.Context, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.complete(ctx, openaiMessages)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// complete tries the configured model first, then the fallback list.
func (c *GroqClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (*openai.ChatCompletion, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err == nil {
		return resp, nil
	}

	for _, fb := range groqFallbackModels {
		if fb == c.model {
			continue
		}
		fbResp, fbErr := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    fb,
			Messages: messages,
		})
		if fbErr == nil {
			return fbResp, nil
		}
	}

	return nil, err
}

// ChatJSON sends messages and parses the response as JSON into the
// provided type.
func (c *GroqClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}

	jsonContent := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonContent), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}

	return nil
}

// extractJSON strips markdown fences and surrounding prose from an LLM
// response, returning the JSON payload.
func extractJSON(s string) string {
	if inner, ok := fencedBlock(s, "```json"); ok {
		return inner
	}
	if inner, ok := fencedBlock(s, "```"); ok {
		return inner
	}

	// No fences: take the widest object or array span.
	objStart := strings.IndexAny(s, "{[")
	if objStart == -1 {
		return strings.TrimSpace(s)
	}
	closer := byte('}')
	if s[objStart] == '[' {
		closer = ']'
	}
	if objEnd := strings.LastIndexByte(s, closer); objEnd > objStart {
		return s[objStart : objEnd+1]
	}
	return strings.TrimSpace(s)
}

func fencedBlock(s, fence string) (string, bool) {
	idx := strings.Index(s, fence)
	if idx == -1 {
		return "", false
	}
	rest := s[idx+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
