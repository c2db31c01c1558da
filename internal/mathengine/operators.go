package mathengine

// Associativity decides how operators of equal precedence group.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// Operator is the static metadata attached to a binary operator symbol.
type Operator struct {
	Symbol        string
	Precedence    int
	Associativity Associativity
}

// operators is built once and never mutated; concurrent readers need no locking.
var operators = map[string]Operator{
	"+": {Symbol: "+", Precedence: 2, Associativity: LeftAssoc},
	"-": {Symbol: "-", Precedence: 2, Associativity: LeftAssoc},
	"*": {Symbol: "*", Precedence: 3, Associativity: LeftAssoc},
	"/": {Symbol: "/", Precedence: 3, Associativity: LeftAssoc},
	"%": {Symbol: "%", Precedence: 3, Associativity: LeftAssoc},
	"^": {Symbol: "^", Precedence: 4, Associativity: RightAssoc},
}

// LookupOperator returns the metadata for symbol.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// yieldsTo reports whether top must be popped before pushing op.
func (op Operator) yieldsTo(top Operator) bool {
	if op.Associativity == RightAssoc {
		return top.Precedence > op.Precedence
	}
	return top.Precedence >= op.Precedence
}
