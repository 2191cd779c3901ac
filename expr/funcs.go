package expr

import (
	"strings"
)

// FuncKind identifies the built-in functions the parser gives special
// syntax to.
type FuncKind uint8

const (
	FuncGeneric     FuncKind = iota // any other function, myfunc(a, b)
	FuncCount                       // COUNT(expr), COUNT(DISTINCT expr)
	FuncCountStar                   // COUNT(*)
	FuncSum                         // SUM([DISTINCT] expr)
	FuncAvg                         // AVG([DISTINCT] expr)
	FuncMax                         // MAX([DISTINCT] expr)
	FuncMin                         // MIN([DISTINCT] expr)
	FuncGroupConcat                 // GROUP_CONCAT([DISTINCT] expr, ... [SEPARATOR 's'])
)

var builtinFuncs = map[string]FuncKind{
	"count":        FuncCount,
	"sum":          FuncSum,
	"avg":          FuncAvg,
	"max":          FuncMax,
	"min":          FuncMin,
	"group_concat": FuncGroupConcat,
}

var funcKindNames = []string{
	FuncGeneric:     "Generic",
	FuncCount:       "Count",
	FuncCountStar:   "CountStar",
	FuncSum:         "Sum",
	FuncAvg:         "Avg",
	FuncMax:         "Max",
	FuncMin:         "Min",
	FuncGroupConcat: "GroupConcat",
}

func (k FuncKind) String() string {
	if int(k) < len(funcKindNames) {
		return funcKindNames[k]
	}
	return "Unknown"
}

// IsAggregate COUNT, SUM, AVG, MAX, MIN, GROUP_CONCAT
func (k FuncKind) IsAggregate() bool { return k != FuncGeneric }

// LookupFuncKind classifies a function name, case-insensitive.
func LookupFuncKind(name string) FuncKind {
	if k, ok := builtinFuncs[strings.ToLower(name)]; ok {
		return k
	}
	return FuncGeneric
}

// Operator is the operator of a ConditionTree or Arithmetic node.
type Operator uint8

const (
	OpNone Operator = iota

	// logical
	OpOr
	OpAnd
	OpNot

	// comparison
	OpEqual
	OpNotEqual
	OpNullSafeEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpBetween
	OpNotBetween
	OpIsNull
	OpIsNotNull

	// arithmetic
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulus
	OpNegate
)

var operatorText = []string{
	OpNone:          "",
	OpOr:            "OR",
	OpAnd:           "AND",
	OpNot:           "NOT",
	OpEqual:         "=",
	OpNotEqual:      "<>",
	OpNullSafeEqual: "<=>",
	OpLess:          "<",
	OpLessEqual:     "<=",
	OpGreater:       ">",
	OpGreaterEqual:  ">=",
	OpLike:          "LIKE",
	OpNotLike:       "NOT LIKE",
	OpIn:            "IN",
	OpNotIn:         "NOT IN",
	OpBetween:       "BETWEEN",
	OpNotBetween:    "NOT BETWEEN",
	OpIsNull:        "IS NULL",
	OpIsNotNull:     "IS NOT NULL",
	OpAdd:           "+",
	OpSubtract:      "-",
	OpMultiply:      "*",
	OpDivide:        "/",
	OpModulus:       "%",
	OpNegate:        "-",
}

// String is the canonical sql text of the operator.
func (o Operator) String() string {
	if int(o) < len(operatorText) {
		return operatorText[o]
	}
	return "?"
}

func (o Operator) precedence() int {
	switch o {
	case OpOr:
		return precOr
	case OpAnd:
		return precAnd
	case OpNot:
		return precNot
	case OpAdd, OpSubtract:
		return precAdditive
	case OpMultiply, OpDivide, OpModulus:
		return precMultiplicative
	case OpNegate:
		return precUnary
	case OpNone:
		return precPrimary
	}
	return precCompare
}

// IsComparison = <> < <= > >= <=> LIKE IN BETWEEN IS NULL and their negations
func (o Operator) IsComparison() bool {
	return o.precedence() == precCompare
}
