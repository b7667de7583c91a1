package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small builders for the trees the tests compile, lines are left at 0.

const testFile = "Test.java"

func prim(k PrimitiveKind) *PrimitiveType { return NewPrimitiveType(k) }
func classRef(name string) *ClassType     { return &ClassType{Name: name} }

func arrayOf(base Type, depth int) *ArrayType {
	return &ArrayType{Base: base, Depth: depth}
}

func class(name string, members ...ClassBodyDecl) *ClassDecl {
	return &ClassDecl{Name: name, Body: members}
}

func iface(name string, members ...ClassBodyDecl) *ClassDecl {
	return &ClassDecl{Name: name, Body: members, IsInterface: true}
}

func extends(cd *ClassDecl, super string) *ClassDecl {
	cd.SuperClass = classRef(super)
	return cd
}

func implements(cd *ClassDecl, names ...string) *ClassDecl {
	for _, name := range names {
		cd.Interfaces = append(cd.Interfaces, classRef(name))
	}
	return cd
}

func withModifiers(cd *ClassDecl, m Modifiers) *ClassDecl {
	cd.Modifiers = m
	return cd
}

func param(t Type, name string) *ParamDecl {
	return &ParamDecl{Type: t, Name: name}
}

func method(mods Modifiers, ret Type, name string, params []*ParamDecl, stats ...Statement) *MethodDecl {
	return &MethodDecl{Modifiers: mods, ReturnType: ret, Name: name, Params: params, Body: &Block{Stats: stats}}
}

func abstractMethod(mods Modifiers, ret Type, name string, params ...*ParamDecl) *MethodDecl {
	return &MethodDecl{Modifiers: mods, ReturnType: ret, Name: name, Params: params}
}

func field(mods Modifiers, t Type, name string, init Expression) *FieldDecl {
	return &FieldDecl{Modifiers: mods, Type: t, Name: name, Init: init}
}

func ctor(mods Modifiers, name string, params []*ParamDecl, stats ...Statement) *ConstructorDecl {
	return &ConstructorDecl{Modifiers: mods, Name: name, Params: params, Body: stats}
}

func local(t Type, name string, init Expression) *LocalDecl {
	return &LocalDecl{Type: t, Name: name, Init: init}
}

func exprStat(e Expression) *ExprStat { return &ExprStat{Expr: e} }
func ret(e Expression) *ReturnStat    { return &ReturnStat{Expr: e} }

func lit(kind LiteralKind, text string) *Literal { return &Literal{Kind: kind, Text: text} }
func intLit(text string) *Literal                 { return lit(IntLiteral, text) }
func boolLit(text string) *Literal                { return lit(BooleanLiteral, text) }
func name(n string) *NameExpr                     { return &NameExpr{Name: n} }

func call(target Expression, name string, args ...Expression) *Invocation {
	return &Invocation{Target: target, Name: name, Args: args}
}

func newObject(class string, args ...Expression) *New {
	return &New{Class: classRef(class), Args: args}
}

func fieldRef(target Expression, name string) *FieldRef {
	return &FieldRef{Target: target, Name: name}
}

func assign(left, right Expression) *Assignment {
	return &Assignment{Left: left, Op: Assign, Right: right}
}

func binary(left Expression, op BinOp, right Expression) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

func cast(t Type, e Expression) *CastExpr {
	return &CastExpr{CastType: t, Expr: e}
}

func ternary(cond, then, els Expression) *Ternary {
	return &Ternary{Cond: cond, Then: then, Else: els}
}

func compileClasses(classes ...*ClassDecl) (*Context, error) {
	return Compile(&Compilation{FileName: testFile, Classes: classes}, Options{})
}

func requireDiagnostic(t *testing.T, err error) *Diagnostic {
	require.NotNil(t, err)
	d, ok := AsDiagnostic(err)
	require.True(t, ok, "%+v", err)
	return d
}

type compileCase struct {
	name      string
	classes   []*ClassDecl
	expectErr string
}

func runCompileCases(t *testing.T, cases []compileCase) {
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := compileClasses(c.classes...)
			if c.expectErr == "" {
				assert.Nil(t, err, "%+v", err)
				return
			}
			d := requireDiagnostic(t, err)
			assert.Equal(t, c.expectErr, d.Message)
		})
	}
}
