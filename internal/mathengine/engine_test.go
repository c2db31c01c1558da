package mathengine

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStepByStepKnownResults(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{expr: "2^3^2", want: 512},
		{expr: "-5+3", want: -2},
		{expr: "2+3*4", want: 14},
		{expr: "5-3", want: 2},
		{expr: "10 - 4 - 3", want: 3},
		{expr: "2*-3", want: -6},
		{expr: "(-3+2)*4", want: -4},
		{expr: "2^-1", want: 0.5},
		{expr: "7 % 3", want: 1},
		{expr: "-7 % 3", want: -1},
		{expr: "(1+2)*(3+4)", want: 21},
		{expr: "42", want: 42},
		{expr: ".5 + 5.", want: 5.5},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			res := CalculateStepByStep(tc.expr)
			require.NotNil(t, res)
			assert.InDelta(t, tc.want, res.Result, 1e-9)
		})
	}
}

func TestCalculateStepByStepRejects(t *testing.T) {
	for _, expr := range []string{
		"5/0",
		"5 % 0",
		"(1+2",
		"1+2)",
		"3..4+2",
		"",
		"hello",
		"-",
		".",
		"-(2)",
		"2 +",
		"* 3",
		"0^-1",
		"(-8)^(1/3)",
		"()",
	} {
		t.Run(expr, func(t *testing.T) {
			assert.Nil(t, CalculateStepByStep(expr))
		})
	}
}

func TestCalculateStepByStepRecordsStepsInReductionOrder(t *testing.T) {
	res := CalculateStepByStep("2+3*4")
	require.NotNil(t, res)

	require.Len(t, res.Steps, 2)
	assert.Equal(t, Step{Expression: "3 * 4", Operation: "*", Result: 12, Description: "3 * 4 = 12"}, res.Steps[0])
	assert.Equal(t, Step{Expression: "2 + 12", Operation: "+", Result: 14, Description: "2 + 12 = 14"}, res.Steps[1])
	assert.Equal(t, "2+3*4", res.Expression)
}

func TestStepCountMatchesAppliedOperators(t *testing.T) {
	for _, expr := range []string{"1+2+3", "2^3^2", "(1+2)*(3-4)/5", "-1-1", "8 % 3 ^ 2"} {
		t.Run(expr, func(t *testing.T) {
			sanitized := Sanitize(expr)
			tokens, err := Tokenize(sanitized)
			require.NoError(t, err)
			postfix, err := ToPostfix(tokens)
			require.NoError(t, err)

			ops := 0
			for _, tok := range postfix {
				if tok.Kind == OperatorToken {
					ops++
				}
			}

			res := CalculateStepByStep(expr)
			require.NotNil(t, res)
			require.Len(t, res.Steps, ops)
			assert.Equal(t, res.Result, res.Steps[len(res.Steps)-1].Result)
		})
	}
}

func TestCalculateStepByStepAcceptsInputShapes(t *testing.T) {
	inputs := []any{
		"1+1",
		Input{Expression: "1+1"},
		&Input{Expression: "1+1"},
		map[string]any{"expression": "1+1"},
		map[string]string{"expression": "1+1"},
	}
	for _, in := range inputs {
		res := CalculateStepByStep(in)
		require.NotNil(t, res, "input %#v", in)
		assert.Equal(t, float64(2), res.Result)
	}

	assert.Nil(t, CalculateStepByStep(nil))
	assert.Nil(t, CalculateStepByStep((*Input)(nil)))
	assert.Nil(t, CalculateStepByStep(map[string]any{"expression": 12}))
	assert.Nil(t, CalculateStepByStep(42))
}

func TestCalculateStepByStepDropsForeignCharacters(t *testing.T) {
	res := CalculateStepByStep("كم ناتج 12 + 30 ؟")
	require.NotNil(t, res)
	assert.Equal(t, "12 + 30", res.Expression)
	assert.Equal(t, float64(42), res.Result)
}

func TestEvaluateReportsStage(t *testing.T) {
	e := New(WithLocale("en"))

	tests := []struct {
		expr  string
		stage Stage
	}{
		{expr: "letters only", stage: StageSanitize},
		{expr: "3..4", stage: StageTokenize},
		{expr: "(1+2", stage: StageConvert},
		{expr: "1/0", stage: StageEvaluate},
		{expr: "1+", stage: StageEvaluate},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			res, err := e.Evaluate(tc.expr)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrInvalidExpression))
			assert.Equal(t, tc.stage, StageOf(err))
		})
	}

	assert.Equal(t, Stage(""), StageOf(errors.New("other")))
}

func TestEvaluateFormatsResult(t *testing.T) {
	e := New(WithLocale("en"))

	res, err := e.Evaluate("1000000 + 234567.891")
	require.NoError(t, err)
	assert.Equal(t, "1,234,567.891", res.FormattedResult)
}

func TestSafeEval(t *testing.T) {
	v, ok := SafeEval("2 * (3 + 4)")
	require.True(t, ok)
	assert.Equal(t, float64(14), v)

	_, ok = SafeEval("2 / (3 - 3)")
	assert.False(t, ok)
}

// referenceExpr rewrites an expression for govaluate, which spells
// exponentiation as "**".
func referenceExpr(expr string) string {
	return strings.ReplaceAll(expr, "^", "**")
}

func TestCalculateStepByStepMatchesReferenceEvaluator(t *testing.T) {
	for _, expr := range []string{
		"1 + 2 * 3 - 4 / 5",
		"(1.5 + 2.25) * (3 - 0.5)",
		"100 / (8 * 2)",
		"2 ^ 10 - 1",
		"(17 % 5) * 3",
		"(2 + 3) ^ 2 / 5",
		"((((1))))+(((2)))",
		"0.1 + 0.2",
		"-3 * 3 - 9",
		"1 - (2 - (3 - (4 - 5)))",
	} {
		t.Run(expr, func(t *testing.T) {
			ref, err := govaluate.NewEvaluableExpression(referenceExpr(expr))
			require.NoError(t, err)
			want, err := ref.Evaluate(nil)
			require.NoError(t, err)

			res := CalculateStepByStep(expr)
			require.NotNil(t, res)
			assert.InDelta(t, want.(float64), res.Result, 1e-9)
		})
	}
}

func TestCalculateStepByStepConcurrentUse(t *testing.T) {
	e := New(WithLocale("en"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				res := e.CalculateStepByStep("2^3^2 - (4 * 5)")
				if res == nil || res.Result != 492 {
					t.Errorf("unexpected result %#v", res)
					return
				}
			}
		}()
	}
	wg.Wait()
}
