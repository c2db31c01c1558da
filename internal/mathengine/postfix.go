package mathengine

// ToPostfix reorders infix tokens into Reverse Polish order using the
// shunting-yard algorithm.
func ToPostfix(tokens []Token) ([]Token, error) {
	if len(tokens) == 0 {
		return nil, invalid(StageConvert, "empty expression")
	}

	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2+1)

	for _, tok := range tokens {
		switch tok.Kind {
		case NumberToken:
			output = append(output, tok)

		case OperatorToken:
			op := operators[tok.Text]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != OperatorToken || !op.yieldsTo(operators[top.Text]) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case LeftParenToken:
			stack = append(stack, tok)

		case RightParenToken:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == LeftParenToken {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, invalid(StageConvert, "unmatched ')'")
			}

		default:
			return nil, invalid(StageConvert, "unknown token %q", tok.Text)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind != OperatorToken {
			return nil, invalid(StageConvert, "unmatched '('")
		}
		output = append(output, top)
	}

	return output, nil
}
