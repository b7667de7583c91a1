package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassMemberFinder_collectDeclarations(t *testing.T) {
	intType := prim(IntKind)
	voidType := prim(VoidKind)
	testDatas := []struct {
		name      string
		classes   []*ClassDecl
		expectErr string
	}{
		{
			name: "members",
			classes: []*ClassDecl{
				class("A",
					field(0, intType, "f", nil),
					method(0, voidType, "m", []*ParamDecl{param(intType, "a")}),
					method(0, voidType, "m", []*ParamDecl{param(prim(DoubleKind), "a")}),
					ctor(0, "A", nil),
					ctor(0, "A", []*ParamDecl{param(intType, "a")}),
					&StaticInitDecl{Body: &Block{}},
				),
			},
		},
		{
			name:      "duplicate class",
			classes:   []*ClassDecl{class("A"), class("A")},
			expectErr: "Symbol 'A' already defined in this scope.",
		},
		{
			name:      "root class redefined",
			classes:   []*ClassDecl{class("Object")},
			expectErr: "Symbol 'Object' already defined in this scope.",
		},
		{
			name: "duplicate method",
			classes: []*ClassDecl{
				class("A",
					method(0, voidType, "m", []*ParamDecl{param(intType, "a")}),
					method(0, intType, "m", []*ParamDecl{param(intType, "b")}),
				),
			},
			expectErr: "Method m( int ) already defined.",
		},
		{
			name: "duplicate constructor",
			classes: []*ClassDecl{
				class("A", ctor(0, "A", nil), ctor(PublicModifier, "A", nil)),
			},
			expectErr: "Constructor A( ) already defined.",
		},
		{
			name:      "constructor name",
			classes:   []*ClassDecl{class("A", ctor(0, "B", nil))},
			expectErr: "Constructor must be named the same as the class.",
		},
		{
			name:      "duplicate field",
			classes:   []*ClassDecl{class("A", field(0, intType, "f", nil), field(0, prim(CharKind), "f", nil))},
			expectErr: "Symbol 'f' already defined in this scope.",
		},
		{
			name: "two static initializers",
			classes: []*ClassDecl{
				class("A", &StaticInitDecl{Body: &Block{}}, &StaticInitDecl{Body: &Block{}}),
			},
			expectErr: "Only one static initializer allowed in class 'A'.",
		},
	}
	for _, testData := range testDatas {
		ctx := NewContext(Options{FileName: testFile})
		err := collectDeclarations(ctx, &Compilation{Classes: testData.classes})
		if testData.expectErr == "" {
			assert.Nil(t, err, testData.name)
			continue
		}
		d := requireDiagnostic(t, err)
		assert.Equal(t, testData.expectErr, d.Message, testData.name)
	}
}

func TestClassMemberFinder_defaults(t *testing.T) {
	a := class("A", method(0, prim(VoidKind), "m", nil))
	i := iface("I", abstractMethod(0, prim(IntKind), "n"))
	b := extends(class("B", ctor(0, "B", []*ParamDecl{param(prim(IntKind), "x")})), "A")
	ctx := NewContext(Options{FileName: testFile})
	require.Nil(t, collectDeclarations(ctx, &Compilation{Classes: []*ClassDecl{a, i, b}}))

	classes := ctx.Classes()
	require.Len(t, classes, 4)
	assert.Equal(t, objectClassName, classes[0].Name)
	assert.Nil(t, classes[0].SuperClass)
	assert.NotNil(t, classes[0].defaultConstructor())

	// A class without constructors gets a public one without parameters.
	cod := a.defaultConstructor()
	require.NotNil(t, cod)
	assert.True(t, cod.Modifiers.IsPublic())
	assert.Equal(t, a, cod.Class())
	assert.Equal(t, objectClassName, a.SuperClass.Name)

	// Interfaces never get one.
	assert.Nil(t, i.constructorTable())
	assert.True(t, i.Body[0].(*MethodDecl).InterfaceMember)

	assert.Nil(t, b.defaultConstructor())
	assert.NotNil(t, b.constructorTable().GetLocal("I"))
	assert.Equal(t, "A", b.SuperClass.Name)
	assert.Equal(t, a, ctx.Class("A"))

	overloads, ok := a.methodTable.GetLocal("m").(*SymbolTable)
	require.True(t, ok)
	assert.Equal(t, a.Body[0], overloads.GetLocal(""))
}
