package mathengine

import (
	"math"
	"strconv"
)

// Step records one operator application of the stack machine.
type Step struct {
	Expression  string  `json:"expression"`
	Operation   string  `json:"operation"`
	Result      float64 `json:"result"`
	Description string  `json:"description"`
}

// Evaluation is the outcome of EvaluatePostfix.
type Evaluation struct {
	Result float64
	Steps  []Step
}

// EvaluatePostfix reduces a postfix sequence with a numeric stack. When
// collectSteps is set, one Step is appended per operator in reduction order.
func EvaluatePostfix(postfix []Token, collectSteps bool) (Evaluation, error) {
	stack := make([]float64, 0, len(postfix))
	var steps []Step
	if collectSteps {
		steps = make([]Step, 0, len(postfix)/2)
	}

	for _, tok := range postfix {
		if tok.Kind == NumberToken {
			stack = append(stack, tok.Value)
			continue
		}
		if tok.Kind != OperatorToken {
			return Evaluation{}, invalid(StageEvaluate, "unexpected %s token %q", tok.Kind, tok.Text)
		}
		if len(stack) < 2 {
			return Evaluation{}, invalid(StageEvaluate, "operator %q is missing an operand", tok.Text)
		}

		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		result, err := apply(tok.Text, a, b)
		if err != nil {
			return Evaluation{}, err
		}
		stack = append(stack, result)

		if collectSteps {
			expr := FormatOperand(a) + " " + tok.Text + " " + FormatOperand(b)
			steps = append(steps, Step{
				Expression:  expr,
				Operation:   tok.Text,
				Result:      result,
				Description: expr + " = " + FormatOperand(result),
			})
		}
	}

	if len(stack) != 1 {
		return Evaluation{}, invalid(StageEvaluate, "%d values left on the stack", len(stack))
	}
	return Evaluation{Result: stack[0], Steps: steps}, nil
}

func apply(op string, a, b float64) (float64, error) {
	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return 0, invalid(StageEvaluate, "division by zero")
		}
		result = a / b
	case "%":
		if b == 0 {
			return 0, invalid(StageEvaluate, "modulo by zero")
		}
		result = math.Mod(a, b)
	case "^":
		result = math.Pow(a, b)
	default:
		return 0, invalid(StageEvaluate, "unknown operator %q", op)
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, invalid(StageEvaluate, "%g %s %g is not a finite number", a, op, b)
	}
	return result, nil
}

// FormatOperand renders v in its shortest round-trip decimal form, as used in
// step expressions and descriptions. Plain positional notation is used for
// magnitudes in [1e-7, 1e21) so a step stays readable by the sanitizer.
func FormatOperand(v float64) string {
	if v == 0 {
		// normalize -0
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e-7 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
