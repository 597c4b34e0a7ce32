// Package mderror defines the closed error-kind taxonomy shared by every
// stage of the Mandalang pipeline.
package mderror

import "fmt"

// Kind identifies a specific failure condition raised anywhere in the
// scanner, parser, resolver, type solver, or evaluator.
type Kind int

const (
	OK Kind = iota
	NotEnoughMemory
	InvalidCharacter
	InvalidNumber
	InvalidExpression
	InvalidOperator
	UnclosedParenthesisInExpression
	InvalidNodeToEvaluate
	InvalidNodeToSolveType
	InvalidNodeToResolve
	DuplicatedName
	UnknownName
	UnaryMinusShouldHaveNumericalOperand
	OperandsShouldHaveNumericalTypes
	OperandsShouldHaveSameType
	ExpectedValueName
	ExpectedTypeName
	ExpectedEquals
	ExpectedLeftParenthesis
	ExpectedRightParenthesis
	ExpectedArrow
	NameIsNotFoundToImport
	InvalidTypeResolving
	TypeNameExpected
	MismatchFunctionTypeAndExpression
	ExpectedParameterName
	ExpectedSymbolName
	ExpectedExpressionAfterFunctionHeader
	ExpectedArgumentOrRightParenthesis
	ExpectedCommaOrRightParenthesis
	ExpectedFunctionToCall
	MismatchParametersAndArgumentsCount
	MismatchParameterAndArgumentTypes
	InvalidStackOperation
	InvalidSymbol
	InvalidSymbolToEvaluate
	InvalidTypeSyntax
	BooleanNotShouldHaveBooleanOperand
	OperandsShouldHaveBooleanType
	ExpectedKeywordThen
	ExpectedKeywordElse
	ConditionShouldBeBoolean
	ConditionalExpressionTypesMismatch
	ExpectedLeftSquareBrace
	ExpectedRightSquareBrace
	DivisionByZero
)

var messages = map[Kind]string{
	OK:                                     "ok",
	NotEnoughMemory:                        "not enough memory",
	InvalidCharacter:                       "invalid character",
	InvalidNumber:                          "invalid number",
	InvalidExpression:                      "invalid expression",
	InvalidOperator:                        "invalid operator",
	UnclosedParenthesisInExpression:        "unclosed parenthesis in expression",
	InvalidNodeToEvaluate:                  "invalid node to evaluate",
	InvalidNodeToSolveType:                 "invalid node to solve type",
	InvalidNodeToResolve:                   "invalid node to resolve",
	DuplicatedName:                         "duplicated name",
	UnknownName:                            "unknown name",
	UnaryMinusShouldHaveNumericalOperand:   "unary minus should have numerical operand",
	OperandsShouldHaveNumericalTypes:       "operands should have numerical types",
	OperandsShouldHaveSameType:             "operands should have same type",
	ExpectedValueName:                      "expected value name",
	ExpectedTypeName:                       "expected type name",
	ExpectedEquals:                         "expected '='",
	ExpectedLeftParenthesis:                "expected '('",
	ExpectedRightParenthesis:               "expected ')'",
	ExpectedArrow:                          "expected '->'",
	NameIsNotFoundToImport:                 "name is not found to import",
	InvalidTypeResolving:                   "invalid type resolving",
	TypeNameExpected:                       "type name expected",
	MismatchFunctionTypeAndExpression:      "mismatch function type and expression",
	ExpectedParameterName:                  "expected parameter name",
	ExpectedSymbolName:                     "expected symbol name",
	ExpectedExpressionAfterFunctionHeader:  "expected expression after function header",
	ExpectedArgumentOrRightParenthesis:     "expected argument or ')'",
	ExpectedCommaOrRightParenthesis:        "expected ',' or ')'",
	ExpectedFunctionToCall:                 "expected function to call",
	MismatchParametersAndArgumentsCount:    "mismatch parameters and arguments count",
	MismatchParameterAndArgumentTypes:      "mismatch function parameter and argument types",
	InvalidStackOperation:                  "invalid stack operation",
	InvalidSymbol:                          "invalid symbol",
	InvalidSymbolToEvaluate:                "invalid symbol to evaluate",
	InvalidTypeSyntax:                      "invalid type syntax",
	BooleanNotShouldHaveBooleanOperand:     "'!' should have boolean operand",
	OperandsShouldHaveBooleanType:          "operands should have boolean type",
	ExpectedKeywordThen:                    "expected 'then'",
	ExpectedKeywordElse:                    "expected 'else'",
	ConditionShouldBeBoolean:               "expression after 'if' should be boolean",
	ConditionalExpressionTypesMismatch:     "expressions after 'then' and 'else' should have the same type",
	ExpectedLeftSquareBrace:                "expected '['",
	ExpectedRightSquareBrace:               "expected ']'",
	DivisionByZero:                         "division by zero",
}

// Message returns the static, line-independent description of a Kind.
func (k Kind) Message() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return "unknown error"
}

// Error carries a Kind, the source line it was raised on (0 when not
// applicable), and optional free-form detail such as an offending name.
type Error struct {
	Kind    Kind
	Line    uint
	Details string
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func At(kind Kind, line uint) *Error {
	return &Error{Kind: kind, Line: line}
}

func WithDetails(kind Kind, line uint, details string) *Error {
	return &Error{Kind: kind, Line: line, Details: details}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var out string
	if e.Line != 0 {
		out = fmt.Sprintf("line %d. %s", e.Line, e.Kind.Message())
	} else {
		out = e.Kind.Message()
	}
	if e.Details != "" {
		out += fmt.Sprintf(" ('%s')", e.Details)
	}
	return out
}

// Is reports whether err is an *Error of the given Kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if !asError(err, &e) {
		return false
	}
	return e.Kind == kind
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
