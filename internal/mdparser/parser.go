// Package mdparser implements Mandalang's recursive-descent grammar,
// producing mdir.Node trees directly (no separate concrete-syntax tree).
package mdparser

import (
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdlexer"
)

// Parser consumes tokens from a Lexer and builds mdir.Node trees.
type Parser struct {
	lex *mdlexer.Lexer
}

// New creates a Parser over source.
func New(source string) *Parser {
	return &Parser{lex: mdlexer.New(source)}
}

// ParseDefinitionOrExpression parses one top-level REPL line: a `let`
// definition, a `type` definition, or a bare expression.
func (p *Parser) ParseDefinitionOrExpression() (mdir.SymbolOrExpression, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return mdir.SymbolOrExpression{}, err
	}
	switch tok.Tag {
	case mdlexer.TokenKeywordLet:
		sym, err := p.parseValueDefinition()
		if err != nil {
			return mdir.SymbolOrExpression{}, err
		}
		return mdir.SymbolOrExpression{Symbol: sym}, nil
	case mdlexer.TokenKeywordType:
		sym, err := p.parseTypeDefinition()
		if err != nil {
			return mdir.SymbolOrExpression{}, err
		}
		return mdir.SymbolOrExpression{Symbol: sym}, nil
	default:
		p.lex.Back()
		expr, err := p.ParseExpression()
		if err != nil {
			return mdir.SymbolOrExpression{}, err
		}
		return mdir.SymbolOrExpression{Expression: expr}, nil
	}
}

// ExpectEOF fails unless the lexer has nothing left but its stop token. A
// caller parsing one whole top-level production should call this right
// after the parse succeeds: parseComparison deliberately does not chain
// (`a < b < c` is rejected rather than left- or right-associated), so
// without this check its trailing, unconsumed tokens would be silently
// dropped instead of rejected.
func (p *Parser) ExpectEOF() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if tok.Tag != mdlexer.TokenStop {
		return mderror.At(mderror.InvalidExpression, tok.Line)
	}
	return nil
}

// ParseExpression parses one Mandalang expression.
func (p *Parser) ParseExpression() (*mdir.Node, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Tag {
	case mdlexer.TokenKeywordFn:
		return p.parseFunction()
	case mdlexer.TokenKeywordIf:
		return p.parseConditional()
	default:
		p.lex.Back()
		return p.parseComparison()
	}
}

func additiveOperator(tag mdlexer.TokenTag) (mdir.NodeKind, bool) {
	switch tag {
	case mdlexer.TokenPlus:
		return mdir.NodeAdd, true
	case mdlexer.TokenMinus:
		return mdir.NodeSubtract, true
	default:
		return 0, false
	}
}

func multiplicativeOperator(tag mdlexer.TokenTag) (mdir.NodeKind, bool) {
	switch tag {
	case mdlexer.TokenAsterisk:
		return mdir.NodeMultiply, true
	case mdlexer.TokenSlash:
		return mdir.NodeDivide, true
	default:
		return 0, false
	}
}

func comparisonOperator(tag mdlexer.TokenTag) (mdir.NodeKind, bool) {
	switch tag {
	case mdlexer.TokenDoubleEquals:
		return mdir.NodeEqualsTo, true
	case mdlexer.TokenExclamationEquals:
		return mdir.NodeNotEqualsTo, true
	case mdlexer.TokenGreater:
		return mdir.NodeGreaterThan, true
	case mdlexer.TokenGreaterEquals:
		return mdir.NodeGreaterOrEquals, true
	case mdlexer.TokenLess:
		return mdir.NodeLessThan, true
	case mdlexer.TokenLessEquals:
		return mdir.NodeLessOrEquals, true
	default:
		return 0, false
	}
}

func (p *Parser) parseValueDefinition() (*mdir.Symbol, error) {
	nameTok, err := p.lex.Expect(mdlexer.TokenName, mderror.ExpectedValueName)
	if err != nil {
		return nil, err
	}
	if _, err := p.lex.Expect(mdlexer.TokenEquals, mderror.ExpectedEquals); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return mdir.NewExpressionSymbol(nameTok.Name, expr), nil
}

func (p *Parser) parseTypeDefinition() (*mdir.Symbol, error) {
	nameTok, err := p.lex.Expect(mdlexer.TokenName, mderror.ExpectedTypeName)
	if err != nil {
		return nil, err
	}
	if _, err := p.lex.Expect(mdlexer.TokenEquals, mderror.ExpectedEquals); err != nil {
		return nil, err
	}
	typeNode, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return mdir.NewTypeExpressionSymbol(nameTok.Name, typeNode), nil
}

func (p *Parser) parseFunction() (*mdir.Node, error) {
	header, err := p.parseFunctionHeader()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, mderror.At(mderror.ExpectedExpressionAfterFunctionHeader, header.Line)
	}
	return mdir.Function(header.Arity, header.Parameters, header.Result, body, header.Line), nil
}

func (p *Parser) parseConditional() (*mdir.Node, error) {
	line := p.lex.Line()
	condition, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenKeywordThen {
		return nil, mderror.At(mderror.ExpectedKeywordThen, tok.Line)
	}
	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	tok, err = p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenKeywordElse {
		return nil, mderror.At(mderror.ExpectedKeywordElse, tok.Line)
	}
	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return mdir.Conditional(condition, then, els, line), nil
}

// parseComparison is intentionally non-associative: `a < b < c` is a
// parse error rather than left- or right-associating, since chained
// comparisons don't type-check to anything meaningful here (`(a<b)<c`
// would compare a boolean against whatever type c is).
func (p *Parser) parseComparison() (*mdir.Node, error) {
	left, err := p.parseBooleanTerm()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if kind, ok := comparisonOperator(tok.Tag); ok {
		right, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}
		return mdir.Binary(kind, left, right, tok.Line), nil
	}
	p.lex.Back()
	return left, nil
}

func (p *Parser) parseBooleanTerm() (*mdir.Node, error) {
	left, err := p.parseBooleanFactor()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	for tok.Tag == mdlexer.TokenDoubleVertical {
		right, err := p.parseBooleanFactor()
		if err != nil {
			return nil, err
		}
		left = mdir.Binary(mdir.NodeBooleanOr, left, right, tok.Line)
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
	}
	p.lex.Back()
	return left, nil
}

func (p *Parser) parseBooleanFactor() (*mdir.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	for tok.Tag == mdlexer.TokenDoubleAmpersand {
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = mdir.Binary(mdir.NodeBooleanAnd, left, right, tok.Line)
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
	}
	p.lex.Back()
	return left, nil
}

func (p *Parser) parseTerm() (*mdir.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	kind, ok := additiveOperator(tok.Tag)
	for ok {
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = mdir.Binary(kind, left, right, tok.Line)
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
		kind, ok = additiveOperator(tok.Tag)
	}
	p.lex.Back()
	return left, nil
}

func (p *Parser) parseFactor() (*mdir.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	kind, ok := multiplicativeOperator(tok.Tag)
	for ok {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = mdir.Binary(kind, left, right, tok.Line)
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
		kind, ok = multiplicativeOperator(tok.Tag)
	}
	p.lex.Back()
	return left, nil
}

func (p *Parser) parseUnary() (*mdir.Node, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Tag {
	case mdlexer.TokenPlus:
		return p.parseUnary()
	case mdlexer.TokenMinus:
		return p.parseUnaryOperator(mdir.NodeNegate)
	case mdlexer.TokenExclamation:
		return p.parseUnaryOperator(mdir.NodeBooleanNot)
	case mdlexer.TokenLeftParenthesis:
		return p.parseSubexpressionAndOptionalCalls()
	case mdlexer.TokenFloat:
		return mdir.Float(tok.Float, tok.Line), nil
	case mdlexer.TokenInt:
		return mdir.Int(tok.Int, tok.Line), nil
	case mdlexer.TokenName:
		return p.parseNameAndOptionalCalls(tok)
	default:
		return nil, mderror.At(mderror.InvalidExpression, p.lex.Line())
	}
}

func (p *Parser) parseUnaryOperator(kind mdir.NodeKind) (*mdir.Node, error) {
	line := p.lex.Line()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return mdir.Unary(kind, operand, line), nil
}

func (p *Parser) parseSubexpressionAndOptionalCalls() (*mdir.Node, error) {
	node, err := p.parseSubexpression()
	if err != nil {
		return nil, err
	}
	return p.parseOptionalCalls(node)
}

func (p *Parser) parseSubexpression() (*mdir.Node, error) {
	line := p.lex.Line()
	inner, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenRightParenthesis {
		return nil, mderror.At(mderror.UnclosedParenthesisInExpression, p.lex.Line())
	}
	return mdir.Subexpression(inner, line), nil
}

func (p *Parser) parseNameAndOptionalCalls(tok mdlexer.Token) (*mdir.Node, error) {
	node := mdir.NameNode(tok.Name, tok.Line)
	return p.parseOptionalCalls(node)
}

func (p *Parser) parseOptionalCalls(node *mdir.Node) (*mdir.Node, error) {
	call := node
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	for tok.Tag == mdlexer.TokenLeftParenthesis {
		args, count, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		call = mdir.FunctionCall(call, count, args, call.Line)
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
	}
	p.lex.Back()
	return call, nil
}

func (p *Parser) parseArguments() (*mdir.Node, uint, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, 0, err
	}
	if tok.Tag == mdlexer.TokenRightParenthesis {
		return nil, 0, nil
	}
	p.lex.Back()

	first, err := p.ParseExpression()
	if err != nil {
		return nil, 0, mderror.At(mderror.ExpectedArgumentOrRightParenthesis, tok.Line)
	}
	head := mdir.FunctionArgument(first, nil, first.Line)
	current := head
	count := uint(1)

	tok, err = p.lex.Next()
	if err != nil {
		return nil, 0, err
	}
	for tok.Tag != mdlexer.TokenRightParenthesis {
		if tok.Tag != mdlexer.TokenComma {
			return nil, 0, mderror.At(mderror.ExpectedCommaOrRightParenthesis, tok.Line)
		}
		next, err := p.ParseExpression()
		if err != nil {
			return nil, 0, mderror.At(mderror.ExpectedArgumentOrRightParenthesis, tok.Line)
		}
		argNode := mdir.FunctionArgument(next, nil, next.Line)
		current.Right = argNode
		current = argNode
		count++
		tok, err = p.lex.Next()
		if err != nil {
			return nil, 0, err
		}
	}
	return head, count, nil
}

func (p *Parser) parseFunctionHeader() (*mdir.Node, error) {
	open, err := p.lex.Expect(mdlexer.TokenLeftParenthesis, mderror.ExpectedLeftParenthesis)
	if err != nil {
		return nil, err
	}
	var arity uint
	var parameters *mdir.Node

	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenRightParenthesis {
		p.lex.Back()
		parameters, arity, err = p.parseTypedNames()
		if err != nil {
			return nil, err
		}
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Tag != mdlexer.TokenRightParenthesis {
			return nil, mderror.At(mderror.ExpectedRightParenthesis, tok.Line)
		}
	}

	tok, err = p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenMinusGreater {
		return nil, mderror.At(mderror.ExpectedArrow, tok.Line)
	}

	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return mdir.FunctionHeader(arity, parameters, result, open.Line), nil
}

func (p *Parser) parseTypedNames() (*mdir.Node, uint, error) {
	first, err := p.parseTypedName()
	if err != nil {
		return nil, 0, err
	}
	count := uint(1)
	last := first

	tok, err := p.lex.Next()
	if err != nil {
		return nil, 0, err
	}
	for tok.Tag == mdlexer.TokenComma {
		next, err := p.parseTypedName()
		if err != nil {
			return nil, 0, err
		}
		count++
		last.TypedNameNext = next
		last = next
		tok, err = p.lex.Next()
		if err != nil {
			return nil, 0, err
		}
	}
	p.lex.Back()
	return first, count, nil
}

func (p *Parser) parseTypedName() (*mdir.Node, error) {
	typeNode, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.lex.Expect(mdlexer.TokenName, mderror.ExpectedParameterName)
	if err != nil {
		return nil, err
	}
	return mdir.TypedName(typeNode, nameTok.Name, nameTok.Line), nil
}

func (p *Parser) parseType() (*mdir.Node, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Tag {
	case mdlexer.TokenName:
		return mdir.NameNode(tok.Name, tok.Line), nil
	case mdlexer.TokenLeftParenthesis:
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.lex.Expect(mdlexer.TokenRightParenthesis, mderror.UnclosedParenthesisInExpression); err != nil {
			return nil, err
		}
		return inner, nil
	case mdlexer.TokenKeywordFn:
		return p.parseFunctionType()
	case mdlexer.TokenKeywordVector:
		return p.parseVectorType()
	default:
		return nil, mderror.At(mderror.InvalidTypeSyntax, tok.Line)
	}
}

func (p *Parser) parseFunctionType() (*mdir.Node, error) {
	open, err := p.lex.Expect(mdlexer.TokenLeftParenthesis, mderror.ExpectedLeftParenthesis)
	if err != nil {
		return nil, err
	}
	var arity uint
	var parameters *mdir.Node

	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Tag != mdlexer.TokenRightParenthesis {
		p.lex.Back()
		first, err := p.parseType()
		if err != nil {
			return nil, err
		}
		arity = 1
		parameters = mdir.TypeItem(first, first.Line)
		last := parameters
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
		for tok.Tag == mdlexer.TokenComma {
			next, err := p.parseType()
			if err != nil {
				return nil, err
			}
			arity++
			item := mdir.TypeItem(next, next.Line)
			last.TypeItemNext = item
			last = item
			tok, err = p.lex.Next()
			if err != nil {
				return nil, err
			}
		}
		if tok.Tag != mdlexer.TokenRightParenthesis {
			return nil, mderror.At(mderror.ExpectedCommaOrRightParenthesis, tok.Line)
		}
	}

	if _, err := p.lex.Expect(mdlexer.TokenMinusGreater, mderror.ExpectedArrow); err != nil {
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return mdir.FunctionHeader(arity, parameters, result, open.Line), nil
}

func (p *Parser) parseVectorType() (*mdir.Node, error) {
	open, err := p.lex.Expect(mdlexer.TokenLeftSquareBrace, mderror.ExpectedLeftSquareBrace)
	if err != nil {
		return nil, err
	}
	item, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.lex.Expect(mdlexer.TokenRightSquareBrace, mderror.ExpectedRightSquareBrace); err != nil {
		return nil, err
	}
	return mdir.TypeVector(item, open.Line), nil
}
