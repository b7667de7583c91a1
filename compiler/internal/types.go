package internal

import (
	"strings"
)

// Type is one of *PrimitiveType, *ClassType, *ArrayType or *NullType.
type Type interface {
	Node
	// TypeName is the readable name used in diagnostics.
	TypeName() string
	// Signature is the JVM style encoding used for parameter signatures.
	Signature() string
	typeNode()
}

type PrimitiveKind int

// The order of the numeric kinds matters, see ceiling.
const (
	BooleanKind PrimitiveKind = iota
	ByteKind
	ShortKind
	CharKind
	IntKind
	LongKind
	FloatKind
	DoubleKind
	StringKind
	VoidKind
)

var primitiveNames = map[PrimitiveKind]string{
	BooleanKind: "boolean",
	ByteKind:    "byte",
	ShortKind:   "short",
	CharKind:    "char",
	IntKind:     "int",
	LongKind:    "long",
	FloatKind:   "float",
	DoubleKind:  "double",
	StringKind:  "String",
	VoidKind:    "void",
}

var primitiveSignatures = map[PrimitiveKind]string{
	BooleanKind: "Z",
	ByteKind:    "B",
	ShortKind:   "S",
	CharKind:    "C",
	IntKind:     "I",
	LongKind:    "J",
	FloatKind:   "F",
	DoubleKind:  "D",
	StringKind:  "Ljava/lang/String;",
	VoidKind:    "V",
}

func (k PrimitiveKind) String() string {
	return primitiveNames[k]
}

type PrimitiveType struct {
	pos
	Kind PrimitiveKind
}

func NewPrimitiveType(kind PrimitiveKind) *PrimitiveType {
	return &PrimitiveType{Kind: kind}
}

func (t *PrimitiveType) TypeName() string  { return t.Kind.String() }
func (t *PrimitiveType) Signature() string { return primitiveSignatures[t.Kind] }

type ClassType struct {
	pos
	Name string
	// Decl is bound by the name checker.
	Decl *ClassDecl
	// IsIntersection marks a type synthesized for a ternary expression, it has no source declaration.
	IsIntersection bool
}

func NewClassType(decl *ClassDecl) *ClassType {
	return &ClassType{pos: decl.pos, Name: decl.Name, Decl: decl, IsIntersection: decl.Intersection}
}

func (t *ClassType) TypeName() string {
	if !t.IsIntersection || t.Decl == nil {
		return t.Name
	}
	s := t.Name + " (extends " + t.Decl.SuperClass.Name
	if len(t.Decl.Interfaces) > 0 {
		names := make([]string, 0, len(t.Decl.Interfaces))
		for _, i := range t.Decl.Interfaces {
			names = append(names, i.Name)
		}
		s += " implements " + strings.Join(names, ", ")
	}
	return s + ")"
}

func (t *ClassType) Signature() string { return "L" + t.Name + ";" }

type ArrayType struct {
	pos
	Base  Type
	Depth int
}

func (t *ArrayType) TypeName() string {
	return t.Base.TypeName() + strings.Repeat("[]", t.Depth)
}

func (t *ArrayType) Signature() string {
	return strings.Repeat("[", t.Depth) + t.Base.Signature()
}

// elementType is the type of t[i].
func (t *ArrayType) elementType() Type {
	if t.Depth == 1 {
		return t.Base
	}
	return &ArrayType{pos: t.pos, Base: t.Base, Depth: t.Depth - 1}
}

// NullType is the type of the null literal only.
type NullType struct {
	pos
}

func (t *NullType) TypeName() string  { return "null" }
func (t *NullType) Signature() string { return "" }

func (*PrimitiveType) typeNode() {}
func (*ClassType) typeNode()     {}
func (*ArrayType) typeNode()     {}
func (*NullType) typeNode()      {}

func primitiveKind(t Type) (PrimitiveKind, bool) {
	p, ok := t.(*PrimitiveType)
	if !ok {
		return 0, false
	}
	return p.Kind, true
}

func isKind(t Type, kinds ...PrimitiveKind) bool {
	k, ok := primitiveKind(t)
	if !ok {
		return false
	}
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func isNumericType(t Type) bool {
	return isKind(t, ByteKind, ShortKind, CharKind, IntKind, LongKind, FloatKind, DoubleKind)
}

func isIntegralType(t Type) bool {
	return isKind(t, ByteKind, ShortKind, CharKind, IntKind, LongKind)
}

func isBooleanType(t Type) bool { return isKind(t, BooleanKind) }
func isStringType(t Type) bool  { return isKind(t, StringKind) }
func isVoidType(t Type) bool    { return isKind(t, VoidKind) }

func isClassType(t Type) bool {
	_, ok := t.(*ClassType)
	return ok
}

func isArrayType(t Type) bool {
	_, ok := t.(*ArrayType)
	return ok
}

func isNullType(t Type) bool {
	_, ok := t.(*NullType)
	return ok
}

func isReferenceType(t Type) bool {
	return isClassType(t) || isArrayType(t)
}

func identical(a, b Type) bool {
	switch at := a.(type) {
	case *PrimitiveType:
		bt, ok := b.(*PrimitiveType)
		return ok && at.Kind == bt.Kind
	case *ClassType:
		bt, ok := b.(*ClassType)
		return ok && at.Name == bt.Name
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && at.Depth == bt.Depth && identical(at.Base, bt.Base)
	case *NullType:
		return isNullType(b)
	}
	return false
}

// widening lists, for each numeric kind, the kinds it can be assigned to without a cast.
var widening = map[PrimitiveKind][]PrimitiveKind{
	ByteKind:  {ShortKind, IntKind, LongKind, FloatKind, DoubleKind},
	ShortKind: {IntKind, LongKind, FloatKind, DoubleKind},
	CharKind:  {IntKind, LongKind, FloatKind, DoubleKind},
	IntKind:   {LongKind, FloatKind, DoubleKind},
	LongKind:  {FloatKind, DoubleKind},
	FloatKind: {DoubleKind},
}

// assignmentCompatible reports whether a value of type source can be stored in a variable of type target.
func assignmentCompatible(target, source Type) bool {
	if identical(target, source) {
		return true
	}
	switch tt := target.(type) {
	case *PrimitiveType:
		sk, ok := primitiveKind(source)
		if !ok {
			return false
		}
		for _, k := range widening[sk] {
			if k == tt.Kind {
				return true
			}
		}
		return false
	case *ClassType:
		switch st := source.(type) {
		case *NullType:
			return true
		case *ClassType:
			return isSuper(tt, st)
		case *ArrayType:
			return tt.Name == objectClassName
		}
		return false
	case *ArrayType:
		switch st := source.(type) {
		case *NullType:
			return true
		case *ArrayType:
			if st.Depth != tt.Depth {
				return false
			}
			tb, tok := tt.Base.(*ClassType)
			sb, sok := st.Base.(*ClassType)
			if tok && sok {
				return isSuper(tb, sb)
			}
			return identical(tt.Base, st.Base)
		}
	}
	return false
}

// isSuper reports whether sup is sub itself or one of its ancestors.
func isSuper(sup, sub *ClassType) bool {
	if sup.Decl == nil || sub.Decl == nil {
		return sup.Name == sub.Name
	}
	return isSuperDecl(sup.Decl, sub.Decl)
}

func isSuperDecl(sup, sub *ClassDecl) bool {
	if sup == sub || sup.Name == sub.Name {
		return true
	}
	if s := sub.superDecl(); s != nil && isSuperDecl(sup, s) {
		return true
	}
	for _, i := range sub.Interfaces {
		if i.Decl != nil && isSuperDecl(sup, i.Decl) {
			return true
		}
	}
	return false
}

// ceiling is the least numeric kind both a and b are losslessly represented in.
func ceiling(a, b PrimitiveKind) PrimitiveKind {
	if a == b {
		return a
	}
	if (a == ByteKind && b == ShortKind) || (a == ShortKind && b == ByteKind) {
		return ShortKind
	}
	if a < IntKind && b < IntKind {
		// char mixed with byte or short.
		return IntKind
	}
	if a > b {
		return a
	}
	return b
}

// promote lifts byte, short and char to int.
func promote(k PrimitiveKind) PrimitiveKind {
	if k == ByteKind || k == ShortKind || k == CharKind {
		return IntKind
	}
	return k
}

// ceilingType is the result kind of arithmetic and bitwise operators: the ceiling, at least int.
func ceilingType(a, b *PrimitiveType) *PrimitiveType {
	return NewPrimitiveType(promote(ceiling(a.Kind, b.Kind)))
}

func typeNames(types []Type) string {
	s := ""
	for _, t := range types {
		s += " " + t.TypeName()
	}
	return s
}

func paramTypeNames(params []*ParamDecl) string {
	types := make([]Type, 0, len(params))
	for _, p := range params {
		types = append(types, p.Type)
	}
	return typeNames(types)
}
