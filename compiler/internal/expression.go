package internal

import (
	"go/constant"
	"go/token"
	"math"
	"strings"
)

// Expression is implemented by all expression nodes. The type checker assigns the type of every
// expression exactly once, later passes only read it.
type Expression interface {
	Node
	ExprType() Type
	setType(t Type)
	expressionNode()
}

type exprBase struct {
	pos
	typ Type
}

func (e *exprBase) ExprType() Type {
	return e.typ
}

func (e *exprBase) setType(t Type) {
	e.typ = t
}

type LiteralKind int

const (
	BooleanLiteral LiteralKind = iota
	CharLiteral
	IntLiteral
	LongLiteral
	FloatLiteral
	DoubleLiteral
	StringLiteral
	NullLiteral
)

var literalNames = map[string]LiteralKind{
	"boolean": BooleanLiteral,
	"char":    CharLiteral,
	"int":     IntLiteral,
	"long":    LongLiteral,
	"float":   FloatLiteral,
	"double":  DoubleLiteral,
	"String":  StringLiteral,
	"null":    NullLiteral,
}

// Literal keeps the source spelling of the constant: 'a', "abc", 0x1F, 10L, 2.5f, true.
type Literal struct {
	exprBase
	Kind LiteralKind
	Text string
}

// NameExpr is a plain identifier. Decl is one of *LocalDecl, *ParamDecl, *FieldDecl or *ClassDecl
// once the name checker has run.
type NameExpr struct {
	exprBase
	Name string
	Decl Node
}

type FieldRef struct {
	exprBase
	Target Expression
	Name   string

	Decl       *FieldDecl
	TargetType Type
	// Rewritten marks field references synthesized from a plain name.
	Rewritten bool
}

// Invocation is a method call, Target is nil for an unqualified call.
type Invocation struct {
	exprBase
	Target Expression
	Name   string
	Args   []Expression

	TargetType Type
	Method     *MethodDecl
}

type New struct {
	exprBase
	Class *ClassType
	Args  []Expression

	Constructor *ConstructorDecl
}

type ArrayAccessExpr struct {
	exprBase
	Target Expression
	Index  Expression
}

// NewArray is new Base[d1][d2]...[] with an optional initializer. Dims is the depth of the created array,
// DimExprs holds the sized dimensions only.
type NewArray struct {
	exprBase
	Base     Type
	DimExprs []Expression
	Dims     int
	Init     *ArrayLiteral
}

type ArrayLiteral struct {
	exprBase
	Elements []Expression
}

type AssignOp int

const (
	Assign AssignOp = iota
	MultAssign
	DivAssign
	ModAssign
	PlusAssign
	MinusAssign
	LShiftAssign
	RShiftAssign
	RRShiftAssign
	AndAssign
	OrAssign
	XorAssign
)

var assignOpNames = []string{"=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", ">>>=", "&=", "|=", "^="}

func (op AssignOp) String() string {
	return assignOpNames[op]
}

type Assignment struct {
	exprBase
	Left  Expression
	Op    AssignOp
	Right Expression
}

type BinOp int

const (
	Plus BinOp = iota
	Minus
	Mult
	Div
	Mod
	LShift
	RShift
	RRShift
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	And
	Or
	Xor
	AndAnd
	OrOr
	InstanceOf
)

var binOpNames = []string{
	"+", "-", "*", "/", "%", "<<", ">>", ">>>", "<", ">", "<=", ">=", "==", "!=", "&", "|", "^", "&&", "||",
	"instanceof",
}

func (op BinOp) String() string {
	return binOpNames[op]
}

type BinaryExpr struct {
	exprBase
	Left  Expression
	Op    BinOp
	Right Expression
}

type PreOp int

const (
	PrePlusPlus PreOp = iota
	PreMinusMinus
	PrePlus
	PreMinus
	PreComp
	PreNot
)

var preOpNames = []string{"++", "--", "+", "-", "~", "!"}

func (op PreOp) String() string {
	return preOpNames[op]
}

type UnaryPreExpr struct {
	exprBase
	Op   PreOp
	Expr Expression
}

type PostOp int

const (
	PostPlusPlus PostOp = iota
	PostMinusMinus
)

var postOpNames = []string{"++", "--"}

func (op PostOp) String() string {
	return postOpNames[op]
}

type UnaryPostExpr struct {
	exprBase
	Expr Expression
	Op   PostOp
}

type CastExpr struct {
	exprBase
	CastType Type
	Expr     Expression
}

type Ternary struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

type This struct {
	exprBase
}

type Super struct {
	exprBase
}

func (*Literal) expressionNode()         {}
func (*NameExpr) expressionNode()        {}
func (*FieldRef) expressionNode()        {}
func (*Invocation) expressionNode()      {}
func (*New) expressionNode()             {}
func (*ArrayAccessExpr) expressionNode() {}
func (*NewArray) expressionNode()        {}
func (*ArrayLiteral) expressionNode()    {}
func (*Assignment) expressionNode()      {}
func (*BinaryExpr) expressionNode()      {}
func (*UnaryPreExpr) expressionNode()    {}
func (*UnaryPostExpr) expressionNode()   {}
func (*CastExpr) expressionNode()        {}
func (*Ternary) expressionNode()         {}
func (*This) expressionNode()            {}
func (*Super) expressionNode()           {}

// isClassName reports whether e is a name that resolved to a class, like A in A.f or x instanceof A.
func isClassName(e Expression) bool {
	ne, ok := e.(*NameExpr)
	if !ok {
		return false
	}
	_, ok = ne.Decl.(*ClassDecl)
	return ok
}

func isConstant(e Expression) bool {
	_, ok := constantValue(e)
	return ok
}

// constantValue folds e, ok is false when e is not a compile time constant.
func constantValue(e Expression) (constant.Value, bool) {
	switch e := e.(type) {
	case *Literal:
		return literalValue(e)
	case *CastExpr:
		v, ok := constantValue(e.Expr)
		if !ok {
			return nil, false
		}
		return castValue(v, e.CastType)
	case *UnaryPreExpr:
		v, ok := constantValue(e.Expr)
		if !ok {
			return nil, false
		}
		numeric := v.Kind() == constant.Int || v.Kind() == constant.Float
		switch e.Op {
		case PrePlus:
			if !numeric {
				return nil, false
			}
			return v, true
		case PreMinus:
			if !numeric {
				return nil, false
			}
			return wrapIntegral(constant.UnaryOp(token.SUB, v, 0), isLong(e.Expr)), true
		case PreComp:
			if v.Kind() != constant.Int {
				return nil, false
			}
			return wrapIntegral(constant.UnaryOp(token.XOR, v, 0), isLong(e.Expr)), true
		case PreNot:
			if v.Kind() != constant.Bool {
				return nil, false
			}
			return constant.UnaryOp(token.NOT, v, 0), true
		}
	case *BinaryExpr:
		l, ok := constantValue(e.Left)
		if !ok {
			return nil, false
		}
		r, ok := constantValue(e.Right)
		if !ok {
			return nil, false
		}
		return foldBinary(e, l, r)
	}
	return nil, false
}

func literalValue(li *Literal) (constant.Value, bool) {
	text := li.Text
	var v constant.Value
	switch li.Kind {
	case BooleanLiteral:
		v = constant.MakeBool(text == "true")
	case CharLiteral:
		v = constant.MakeFromLiteral(text, token.CHAR, 0)
	case IntLiteral, LongLiteral:
		v = constant.MakeFromLiteral(strings.TrimRight(text, "lL"), token.INT, 0)
		if v.Kind() == constant.Int {
			// 0xFFFFFFFF is the int -1.
			v = wrapIntegral(v, li.Kind == LongLiteral)
		}
	case FloatLiteral, DoubleLiteral:
		text = strings.TrimRight(text, "fFdD")
		if strings.ContainsAny(text, ".eE") {
			v = constant.MakeFromLiteral(text, token.FLOAT, 0)
		} else {
			v = constant.MakeFromLiteral(text, token.INT, 0)
			v = constant.ToFloat(v)
		}
	case StringLiteral:
		v = constant.MakeFromLiteral(text, token.STRING, 0)
	default:
		return nil, false
	}
	return v, v.Kind() != constant.Unknown
}

var foldOps = map[BinOp]token.Token{
	Plus: token.ADD, Minus: token.SUB, Mult: token.MUL, Div: token.QUO, Mod: token.REM,
	And: token.AND, Or: token.OR, Xor: token.XOR, AndAnd: token.LAND, OrOr: token.LOR,
	Lt: token.LSS, Gt: token.GTR, Le: token.LEQ, Ge: token.GEQ, Eq: token.EQL, Ne: token.NEQ,
}

func foldBinary(e *BinaryExpr, l, r constant.Value) (constant.Value, bool) {
	lk, rk := l.Kind(), r.Kind()
	switch e.Op {
	case InstanceOf:
		return nil, false
	case Lt, Gt, Le, Ge, Eq, Ne:
		if lk == constant.String || rk == constant.String {
			return nil, false
		}
		if lk == constant.Bool || rk == constant.Bool {
			if lk != rk || (e.Op != Eq && e.Op != Ne) {
				return nil, false
			}
		}
		return constant.MakeBool(constant.Compare(l, foldOps[e.Op], r)), true
	case LShift, RShift, RRShift:
		return foldShift(e, l, r)
	}
	if lk == constant.Bool && rk == constant.Bool {
		switch e.Op {
		case And, AndAnd:
			return constant.BinaryOp(l, token.LAND, r), true
		case Or, OrOr:
			return constant.BinaryOp(l, token.LOR, r), true
		case Xor:
			return constant.MakeBool(constant.Compare(l, token.NEQ, r)), true
		}
		return nil, false
	}
	if e.Op == Plus && (lk == constant.String || rk == constant.String) {
		if lk != constant.String || rk != constant.String {
			return nil, false
		}
		return constant.BinaryOp(l, token.ADD, r), true
	}
	if lk == constant.Bool || rk == constant.Bool || lk == constant.String || rk == constant.String {
		return nil, false
	}
	integral := lk == constant.Int && rk == constant.Int
	switch e.Op {
	case Div, Mod:
		if constant.Sign(r) == 0 {
			return nil, false
		}
		if e.Op == Mod && !integral {
			return nil, false
		}
	case And, Or, Xor:
		if !integral {
			return nil, false
		}
	case AndAnd, OrOr:
		return nil, false
	}
	if !integral {
		return constant.BinaryOp(l, foldOps[e.Op], r), true
	}
	op := foldOps[e.Op]
	if e.Op == Div {
		op = token.QUO_ASSIGN
	}
	return wrapIntegral(constant.BinaryOp(l, op, r), isLong(e.Left) || isLong(e.Right)), true
}

// isLong reports whether e has type long, untyped literals are judged by their suffix.
func isLong(e Expression) bool {
	if t := e.ExprType(); t != nil {
		return isKind(t, LongKind)
	}
	li, ok := e.(*Literal)
	return ok && li.Kind == LongLiteral
}

// lowBits returns the two's complement low 64 bits of the integer constant v.
func lowBits(v constant.Value) uint64 {
	u, _ := constant.Uint64Val(constant.BinaryOp(v, token.AND, constant.MakeUint64(math.MaxUint64)))
	return u
}

// wrapIntegral truncates the integer constant v to 64 bits when long is set, to 32 bits otherwise.
func wrapIntegral(v constant.Value, long bool) constant.Value {
	if long {
		return constant.MakeInt64(int64(lowBits(v)))
	}
	return constant.MakeInt64(int64(int32(lowBits(v))))
}

// integerLiteralInRange reports whether the int or long literal li is representable. A decimal literal may be
// one larger than the maximum when it is the operand of a unary minus.
func integerLiteralInRange(li *Literal, negated bool) bool {
	text := strings.TrimRight(li.Text, "lL")
	v := constant.MakeFromLiteral(text, token.INT, 0)
	if v.Kind() != constant.Int {
		return true
	}
	bits := uint(32)
	if li.Kind == LongLiteral {
		bits = 64
	}
	limit := constant.Shift(constant.MakeInt64(1), token.SHL, bits-1)
	decimal := text == "0" || !strings.HasPrefix(text, "0")
	switch {
	case !decimal:
		limit = constant.Shift(limit, token.SHL, 1)
	case negated:
		limit = constant.BinaryOp(limit, token.ADD, constant.MakeInt64(1))
	}
	return constant.Compare(v, token.LSS, limit)
}

func foldShift(e *BinaryExpr, l, r constant.Value) (constant.Value, bool) {
	lv, lok := constant.Int64Val(l)
	rv, rok := constant.Int64Val(r)
	if l.Kind() != constant.Int || r.Kind() != constant.Int || !lok || !rok {
		return nil, false
	}
	long := isKind(e.Left.ExprType(), LongKind)
	if long {
		s := uint(rv & 63)
		switch e.Op {
		case LShift:
			return constant.MakeInt64(lv << s), true
		case RShift:
			return constant.MakeInt64(lv >> s), true
		}
		return constant.MakeInt64(int64(uint64(lv) >> s)), true
	}
	s := uint(rv & 31)
	switch e.Op {
	case LShift:
		return constant.MakeInt64(int64(int32(lv) << s)), true
	case RShift:
		return constant.MakeInt64(int64(int32(lv) >> s)), true
	}
	return constant.MakeInt64(int64(int32(uint32(lv) >> s))), true
}

func castValue(v constant.Value, t Type) (constant.Value, bool) {
	k, ok := primitiveKind(t)
	if !ok {
		return nil, false
	}
	switch v.Kind() {
	case constant.Bool:
		return v, k == BooleanKind
	case constant.String:
		return v, k == StringKind
	}
	switch k {
	case FloatKind, DoubleKind:
		return constant.ToFloat(v), true
	case BooleanKind, StringKind, VoidKind:
		return nil, false
	}
	var i int64
	if v.Kind() == constant.Int {
		i = int64(lowBits(v))
	} else {
		f, _ := constant.Float64Val(v)
		i = int64(f)
	}
	switch k {
	case ByteKind:
		i = int64(int8(i))
	case ShortKind:
		i = int64(int16(i))
	case CharKind:
		i = int64(uint16(i))
	case IntKind:
		i = int64(int32(i))
	}
	return constant.MakeInt64(i), true
}

var valueRanges = map[PrimitiveKind][2]int64{
	ByteKind:  {-128, 127},
	ShortKind: {-32768, 32767},
	CharKind:  {0, 65535},
}

// fitsIn reports whether the integer constant v is in the range of the narrow kind k (byte, short or char).
func fitsIn(v constant.Value, k PrimitiveKind) bool {
	r, ok := valueRanges[k]
	if !ok || v.Kind() != constant.Int {
		return false
	}
	i, exact := constant.Int64Val(v)
	return exact && i >= r[0] && i <= r[1]
}

// narrowConstantAssignable reports whether the int constant value may initialize target even though its type
// is wider.
func narrowConstantAssignable(target Type, value Expression) bool {
	k, ok := primitiveKind(target)
	if !ok || (k != ByteKind && k != ShortKind && k != CharKind) || !isKind(value.ExprType(), ByteKind, ShortKind, CharKind, IntKind) {
		return false
	}
	v, ok := constantValue(value)
	return ok && fitsIn(v, k)
}
