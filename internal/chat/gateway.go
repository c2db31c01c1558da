package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// SystemPrompt frames the model as a school tutor that explains its working.
const SystemPrompt = "أنت مساعد تعليمي ذكي. مهمتك مساعدة الطلاب في فهم المواد الدراسية.\n" +
	"عند حل المسائل الرياضية:\n" +
	"- اشرح الخطوات بوضوح وبالتفصيل\n" +
	"- استخدم الأمثلة عند الحاجة\n" +
	"- تأكد من دقة الحسابات\n" +
	"- اشرح المفاهيم الرياضية بطريقة مبسطة\n" +
	"- إذا كان السؤال غير واضح، اطلب توضيحاً"

// Gateway opens a streamed completion for a conversation.
type Gateway interface {
	Stream(ctx context.Context, messages []Message) (Stream, error)
}

// Stream yields content deltas until Recv returns io.EOF.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// GatewayError carries the upstream HTTP status of a failed completion.
type GatewayError struct {
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("llm gateway returned %d: %v", e.StatusCode, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// OpenAIGateway talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGateway struct {
	client *openai.Client
	model  string
}

// NewOpenAIGateway returns a gateway for apiKey. An empty baseURL keeps the
// public OpenAI endpoint; an empty model selects DefaultModel.
func NewOpenAIGateway(apiKey, baseURL, model string) *OpenAIGateway {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIGateway{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Stream prepends SystemPrompt and starts a streamed completion.
func (g *OpenAIGateway) Stream(ctx context.Context, messages []Message) (Stream, error) {
	req := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)+1),
		Stream:   true,
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt,
	})
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, wrapOpenAIError(err)
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", wrapOpenAIError(err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *openAIStream) Close() error {
	s.stream.Close()
	return nil
}

func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &GatewayError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &GatewayError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &GatewayError{StatusCode: http.StatusBadGateway, Err: err}
}
