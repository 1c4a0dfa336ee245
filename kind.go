package mathexpr

// Kind is the type of an expression node. The kind alone determines which
// payload a node carries: a numeric value, a name, or a list of children.
type Kind int8

// Node kinds. Leaf kinds come first, then operators and functions.
const (
	Invalid    Kind = iota // poison leaf standing in for an absent operand
	Number                 // numeric literal, carries a value
	Variable               // single-letter variable, carries a name
	ConstantPi             // the constant π
	ConstantE              // Euler's number
	Negation               // unary minus
	Add                    // a + b
	Sub                    // a - b
	Mul                    // a * b, or juxtaposition
	Div                    // a / b
	Exponent               // a ^ b
	Equal                  // a = b, a == b
	NotEqual               // a != b
	LessThan               // a < b
	LessOrEqual            // a <= b
	GreaterThan            // a > b
	GreaterOrEqual         // a >= b
	Sqrt                   // sqrt(a)
	Log                    // log(a)
	Sin                    // sin(a)
	Cos                    // cos(a)
	Tan                    // tan(a)
	Max                    // max(a, b, …)
	Min                    // min(a, b, …)
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	Number:         "Number",
	Variable:       "Variable",
	ConstantPi:     "Pi",
	ConstantE:      "E",
	Negation:       "Negation",
	Add:            "Add",
	Sub:            "Sub",
	Mul:            "Mul",
	Div:            "Div",
	Exponent:       "Exponent",
	Equal:          "Equal",
	NotEqual:       "NotEqual",
	LessThan:       "LessThan",
	LessOrEqual:    "LessOrEqual",
	GreaterThan:    "GreaterThan",
	GreaterOrEqual: "GreaterOrEqual",
	Sqrt:           "Sqrt",
	Log:            "Log",
	Sin:            "Sin",
	Cos:            "Cos",
	Tan:            "Tan",
	Max:            "Max",
	Min:            "Min",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// IsArithmetic is true for the binary arithmetic operators Add … Exponent.
func (k Kind) IsArithmetic() bool {
	switch k {
	case Add, Sub, Mul, Div, Exponent:
		return true
	}
	return false
}

// IsComparison is true for the binary comparison operators.
func (k Kind) IsComparison() bool {
	switch k {
	case Equal, NotEqual, LessThan, LessOrEqual, GreaterThan, GreaterOrEqual:
		return true
	}
	return false
}

// IsFunction is true for named functions like sin or max.
func (k Kind) IsFunction() bool {
	switch k {
	case Sqrt, Log, Sin, Cos, Tan, Max, Min:
		return true
	}
	return false
}

// IsConstant is true for the named constants pi and e.
func (k Kind) IsConstant() bool {
	return k == ConstantPi || k == ConstantE
}

// IsLeaf is true for kinds which never have children.
func (k Kind) IsLeaf() bool {
	switch k {
	case Invalid, Number, Variable, ConstantPi, ConstantE:
		return true
	}
	return false
}

// IsBinary is true for kinds with exactly two children.
func (k Kind) IsBinary() bool {
	return k.IsArithmetic() || k.IsComparison()
}

// IsVariadic is true for functions taking two or more arguments.
func (k Kind) IsVariadic() bool {
	return k == Max || k == Min
}

// Arity returns the minimum and maximum number of children for a kind.
// A maximum of -1 denotes an open argument list.
func (k Kind) Arity() (int, int) {
	switch {
	case k.IsLeaf():
		return 0, 0
	case k.IsBinary():
		return 2, 2
	case k.IsVariadic():
		return 2, -1
	}
	return 1, 1 // Negation and single-argument functions
}

// --- Name resolution -------------------------------------------------------

var functionKinds = map[string]Kind{
	"sin":  Sin,
	"cos":  Cos,
	"tan":  Tan,
	"sqrt": Sqrt,
	"log":  Log,
	"max":  Max,
	"min":  Min,
}

var constantKinds = map[string]Kind{
	"pi": ConstantPi,
	"e":  ConstantE,
}

var comparisonKinds = map[string]Kind{
	"=":  Equal,
	"==": Equal,
	"!=": NotEqual,
	"<":  LessThan,
	"<=": LessOrEqual,
	">":  GreaterThan,
	">=": GreaterOrEqual,
}

// FunctionKind returns the kind for a function name like "sin".
// Names are case-sensitive.
func FunctionKind(name string) (Kind, bool) {
	k, ok := functionKinds[name]
	return k, ok
}

// ConstantKind returns the kind for a constant name, i.e. "pi" or "e".
func ConstantKind(name string) (Kind, bool) {
	k, ok := constantKinds[name]
	return k, ok
}

// ComparisonKind returns the kind for a comparison operator. Both "=" and
// "==" map to Equal.
func ComparisonKind(op string) (Kind, bool) {
	k, ok := comparisonKinds[op]
	return k, ok
}

// --- Display symbols -------------------------------------------------------

var symbols = map[Kind]string{
	Add:            "+",
	Sub:            "-",
	Mul:            "×",
	Div:            "÷",
	Exponent:       "^",
	Equal:          "=",
	NotEqual:       "≠",
	LessThan:       "<",
	LessOrEqual:    "≤",
	GreaterThan:    ">",
	GreaterOrEqual: "≥",
	ConstantPi:     "π",
	ConstantE:      "e",
	Sqrt:           "√",
	Log:            "log",
	Sin:            "sin",
	Cos:            "cos",
	Tan:            "tan",
	Min:            "min",
	Max:            "max",
}

// Symbol returns the conventional display symbol for a kind, e.g. "×" for Mul.
// Kinds without a symbol (numbers, variables, negation) return "?".
func Symbol(k Kind) string {
	if s, ok := symbols[k]; ok {
		return s
	}
	return "?"
}
