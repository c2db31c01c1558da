package mathengine

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression is the single failure outcome of the engine. Every
// *ExpressionError unwraps to it.
var ErrInvalidExpression = errors.New("invalid expression")

// Stage names the pipeline step that rejected an expression.
type Stage string

const (
	StageSanitize Stage = "sanitize"
	StageTokenize Stage = "tokenize"
	StageConvert  Stage = "convert"
	StageEvaluate Stage = "evaluate"
)

// ExpressionError carries the stage and reason of a rejection for logs and
// traces. Callers that only care about success should test with
// errors.Is(err, ErrInvalidExpression).
type ExpressionError struct {
	Stage  Stage
	Reason string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidExpression, e.Stage, e.Reason)
}

func (e *ExpressionError) Unwrap() error {
	return ErrInvalidExpression
}

func invalid(stage Stage, format string, args ...any) error {
	return &ExpressionError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}

// StageOf returns the stage recorded in err, or "" if err did not come from
// the engine.
func StageOf(err error) Stage {
	var exprErr *ExpressionError
	if errors.As(err, &exprErr) {
		return exprErr.Stage
	}
	return ""
}
