package mathengine

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// TokenKind tags a Token.
type TokenKind int

const (
	NumberToken TokenKind = iota
	OperatorToken
	LeftParenToken
	RightParenToken
)

func (k TokenKind) String() string {
	switch k {
	case NumberToken:
		return "number"
	case OperatorToken:
		return "operator"
	case LeftParenToken:
		return "lparen"
	case RightParenToken:
		return "rparen"
	default:
		return "unknown"
	}
}

// Token is either a numeric literal (Value is set) or a symbol.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float64
}

func (t Token) String() string {
	return t.Text
}

// numberLiteral accepts an optional sign, digits and at most one decimal
// point with at least one digit somewhere. "3..4", "-" and "." do not match.
var numberLiteral = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// Tokenize splits a sanitized expression into numbers and symbols. A '-' at
// the start of input, after an operator, or after '(' is a sign folded into
// the following literal.
func Tokenize(expr string) ([]Token, error) {
	var (
		tokens []Token
		buf    strings.Builder
		// last is nil at the start of input; otherwise the most recent token.
		last *Token
	)

	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		text := buf.String()
		buf.Reset()

		if !numberLiteral.MatchString(text) {
			return invalid(StageTokenize, "malformed number %q", text)
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return invalid(StageTokenize, "number %q out of range", text)
		}
		tokens = append(tokens, Token{Kind: NumberToken, Text: text, Value: v})
		last = &tokens[len(tokens)-1]
		return nil
	}

	for _, ch := range expr {
		switch {
		case unicode.IsSpace(ch):
			continue

		case ch >= '0' && ch <= '9', ch == '.':
			buf.WriteRune(ch)

		case ch == '-' && buf.Len() == 0 && signPosition(last):
			buf.WriteRune(ch)

		case isSymbol(ch):
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, symbolToken(ch))
			last = &tokens[len(tokens)-1]

		default:
			return nil, invalid(StageTokenize, "unexpected character %q", ch)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// signPosition reports whether a '-' following last is unary.
func signPosition(last *Token) bool {
	return last == nil || last.Kind == OperatorToken || last.Kind == LeftParenToken
}

func isSymbol(ch rune) bool {
	if ch == '(' || ch == ')' {
		return true
	}
	_, ok := operators[string(ch)]
	return ok
}

func symbolToken(ch rune) Token {
	switch ch {
	case '(':
		return Token{Kind: LeftParenToken, Text: "("}
	case ')':
		return Token{Kind: RightParenToken, Text: ")"}
	default:
		return Token{Kind: OperatorToken, Text: string(ch)}
	}
}
