// Package mathengine evaluates arithmetic expressions deterministically and
// records a human-readable trace of every reduction.
//
// The pipeline is Sanitize → Tokenize → ToPostfix → EvaluatePostfix → Format.
// Engine values hold no mutable state and are safe for concurrent use.
package mathengine

// Input is the object form accepted by CalculateStepByStep.
type Input struct {
	Expression string `json:"expression"`
}

// Result is the terminal artifact handed to callers.
type Result struct {
	Expression      string  `json:"expression"`
	Result          float64 `json:"result"`
	FormattedResult string  `json:"formattedResult"`
	Steps           []Step  `json:"steps"`
}

// Engine wires the pipeline stages to a result formatter.
type Engine struct {
	formatter *Formatter
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the locale used for FormattedResult.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		e.formatter = NewFormatter(locale)
	}
}

// New returns an Engine formatting results in DefaultLocale unless an option
// overrides it.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.formatter == nil {
		e.formatter = NewFormatter(DefaultLocale)
	}
	return e
}

// Evaluate runs the full pipeline on input and returns the result with its
// step trace, or an error wrapping ErrInvalidExpression naming the stage that
// rejected it.
func (e *Engine) Evaluate(input string) (*Result, error) {
	sanitized, postfix, err := compile(input)
	if err != nil {
		return nil, err
	}

	eval, err := EvaluatePostfix(postfix, true)
	if err != nil {
		return nil, err
	}

	return &Result{
		Expression:      sanitized,
		Result:          eval.Result,
		FormattedResult: e.formatter.Format(eval.Result),
		Steps:           eval.Steps,
	}, nil
}

// CalculateStepByStep accepts a string, an Input, a *Input or a map with an
// "expression" key. It returns nil when the expression cannot be evaluated,
// so callers can fall back to a generic "unclear expression" reply.
func (e *Engine) CalculateStepByStep(input any) *Result {
	res, err := e.Evaluate(expressionOf(input))
	if err != nil {
		return nil
	}
	return res
}

// SafeEval returns only the numeric result, skipping step collection and
// formatting.
func (e *Engine) SafeEval(input string) (float64, bool) {
	_, postfix, err := compile(input)
	if err != nil {
		return 0, false
	}
	eval, err := EvaluatePostfix(postfix, false)
	if err != nil {
		return 0, false
	}
	return eval.Result, true
}

func compile(input string) (string, []Token, error) {
	sanitized := Sanitize(input)
	if sanitized == "" {
		return "", nil, invalid(StageSanitize, "no arithmetic content")
	}

	tokens, err := Tokenize(sanitized)
	if err != nil {
		return "", nil, err
	}

	postfix, err := ToPostfix(tokens)
	if err != nil {
		return "", nil, err
	}
	return sanitized, postfix, nil
}

func expressionOf(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case Input:
		return v.Expression
	case *Input:
		if v == nil {
			return ""
		}
		return v.Expression
	case map[string]any:
		s, _ := v["expression"].(string)
		return s
	case map[string]string:
		return v["expression"]
	default:
		return ""
	}
}

var defaultEngine = New()

// CalculateStepByStep evaluates input with a shared Engine formatting in
// DefaultLocale.
func CalculateStepByStep(input any) *Result {
	return defaultEngine.CalculateStepByStep(input)
}

// SafeEval evaluates input with the shared Engine.
func SafeEval(input string) (float64, bool) {
	return defaultEngine.SafeEval(input)
}
