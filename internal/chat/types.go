package chat

import "mathengine-api/internal/mathengine"

// Roles accepted in a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Response types for JSON replies; streamed replies use text/event-stream.
const (
	TypeMathResult        = "math-result"
	TypeMathClarification = "math-clarification"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"max=32768"`
}

// Request is the JSON body for POST /chat.
type Request struct {
	Messages []Message `json:"messages" validate:"required,min=1,max=100,dive"`
}

// MathResultResponse is returned when the latest question was answered by
// the math engine.
type MathResultResponse struct {
	Type string `json:"type"`
	*mathengine.Result
}

// ClarificationResponse asks the user to restate a math question the engine
// could not evaluate.
type ClarificationResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// streamChunk mirrors the OpenAI delta shape so clients can parse relayed
// events the same way as upstream ones.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta streamDelta `json:"delta"`
}

type streamDelta struct {
	Content string `json:"content"`
}
