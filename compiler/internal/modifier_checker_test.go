package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifierChecker_abstractMethods(t *testing.T) {
	intType, voidType := prim(IntKind), prim(VoidKind)
	testDatas := []struct {
		name      string
		classes   []*ClassDecl
		expectErr bool
		missing   []string
	}{
		{
			name: "unimplemented interface method",
			classes: []*ClassDecl{
				iface("I", abstractMethod(0, intType, "foo")),
				implements(class("C"), "I"),
			},
			expectErr: true,
			missing:   []string{" int foo( )"},
		},
		{
			name: "implemented interface method",
			classes: []*ClassDecl{
				iface("I", abstractMethod(0, intType, "foo")),
				implements(class("C", method(PublicModifier, intType, "foo", nil, ret(intLit("1")))), "I"),
			},
		},
		{
			name: "implemented by the superclass",
			classes: []*ClassDecl{
				iface("I", abstractMethod(0, intType, "foo")),
				class("S", method(PublicModifier, intType, "foo", nil, ret(intLit("1")))),
				implements(extends(class("C"), "S"), "I"),
			},
		},
		{
			name: "abstract superclass",
			classes: []*ClassDecl{
				withModifiers(class("A",
					abstractMethod(AbstractModifier, voidType, "m", param(intType, "x")),
					abstractMethod(AbstractModifier, intType, "n"),
				), AbstractModifier),
				extends(class("B", method(0, intType, "n", nil, ret(intLit("0")))), "A"),
			},
			expectErr: true,
			missing:   []string{" void m( int )"},
		},
		{
			name: "abstract subclass may leave methods out",
			classes: []*ClassDecl{
				iface("I", abstractMethod(0, intType, "foo"), abstractMethod(0, intType, "bar")),
				withModifiers(implements(class("C"), "I"), AbstractModifier),
			},
		},
		{
			name: "inherited interface methods",
			classes: []*ClassDecl{
				iface("I", abstractMethod(0, intType, "foo")),
				implements(iface("J", abstractMethod(0, voidType, "bar")), "I"),
				implements(class("C"), "J"),
			},
			expectErr: true,
			missing:   []string{" int foo( )", " void bar( )"},
		},
	}
	for _, testData := range testDatas {
		_, err := compileClasses(testData.classes...)
		if !testData.expectErr {
			assert.Nil(t, err, "%s: %+v", testData.name, err)
			continue
		}
		d := requireDiagnostic(t, err)
		assert.Equal(t, "Class 'C' is not abstract and does not override abstract methods:", d.Message, testData.name)
		assert.ElementsMatch(t, testData.missing, d.Notes, testData.name)
	}
}

func TestModifierChecker_errors(t *testing.T) {
	intType, voidType := prim(IntKind), prim(VoidKind)
	runCompileCases(t, []compileCase{
		{
			name:      "final superclass",
			classes:   []*ClassDecl{withModifiers(class("A"), FinalModifier), extends(class("B"), "A")},
			expectErr: "Class 'B' cannot inherit from final class 'A'.",
		},
		{
			name:      "abstract method with body",
			classes:   []*ClassDecl{withModifiers(class("A", method(AbstractModifier, voidType, "m", nil)), AbstractModifier)},
			expectErr: "Abstract method 'm' cannot have a body.",
		},
		{
			name:      "private abstract method",
			classes:   []*ClassDecl{withModifiers(class("A", abstractMethod(AbstractModifier|PrivateModifier, voidType, "m")), AbstractModifier)},
			expectErr: "Abstract method 'm' cannot be declared private.",
		},
		{
			name:      "method without body",
			classes:   []*ClassDecl{class("A", abstractMethod(0, voidType, "m"))},
			expectErr: "Method 'm' does not have a body, or class should be declared abstract.",
		},
		{
			name:      "method without body in abstract class",
			classes:   []*ClassDecl{withModifiers(class("A", abstractMethod(0, voidType, "m")), AbstractModifier)},
			expectErr: "Method 'm' does not have a body, or should be declared abstract.",
		},
		{
			name:      "final interface method",
			classes:   []*ClassDecl{iface("I", abstractMethod(FinalModifier, voidType, "m"))},
			expectErr: "Method 'm' cannot be declared final in an interface.",
		},
		{
			name:      "static interface method",
			classes:   []*ClassDecl{iface("I", abstractMethod(StaticModifier, voidType, "m"))},
			expectErr: "Static method not allowed in interface",
		},
		{
			name:      "uninitialized final field",
			classes:   []*ClassDecl{class("A", field(FinalModifier, intType, "x", nil))},
			expectErr: "Field 'x' in class 'A' must be initialized.",
		},
		{
			name:      "uninitialized interface field",
			classes:   []*ClassDecl{iface("I", field(FinalModifier, intType, "x", nil))},
			expectErr: "Field 'x' in interface 'I' must be initialized.",
		},
		{
			name:      "abstract field",
			classes:   []*ClassDecl{class("A", field(AbstractModifier, intType, "x", nil))},
			expectErr: "Field 'x' cannot be declared abstract.",
		},
		{
			name:      "private interface field",
			classes:   []*ClassDecl{iface("I", field(PrivateModifier, intType, "x", intLit("1")))},
			expectErr: "Illegal use of 'private' modifier in interface.",
		},
		{
			name: "final method overridden",
			classes: []*ClassDecl{
				class("A", method(FinalModifier, voidType, "m", nil)),
				extends(class("B", method(0, voidType, "m", nil)), "A"),
			},
			expectErr: "Method 'm' was implemented as final in super class, cannot be reimplemented.",
		},
		{
			name: "private final method redeclared",
			classes: []*ClassDecl{
				class("A", method(FinalModifier|PrivateModifier, voidType, "m", nil)),
				extends(class("B", method(0, voidType, "m", nil)), "A"),
			},
		},
		{
			name: "static method overridden",
			classes: []*ClassDecl{
				class("A", method(StaticModifier, voidType, "m", nil)),
				extends(class("B", method(0, voidType, "m", nil)), "A"),
			},
			expectErr: "Method 'm' declared static in superclass, cannot be reimplemented non-static.",
		},
		{
			name: "instance method hidden by static",
			classes: []*ClassDecl{
				class("A", method(0, voidType, "m", nil)),
				extends(class("B", method(StaticModifier, voidType, "m", nil)), "A"),
			},
			expectErr: "Method 'm' declared non-static in superclass, cannot be reimplemented static.",
		},
		{
			name: "weaker access",
			classes: []*ClassDecl{
				class("A", method(PublicModifier, voidType, "m", nil)),
				extends(class("B", method(PrivateModifier, voidType, "m", nil)), "A"),
			},
			expectErr: "Method 'm' declared public in superclass, cannot be reimplemented as private.",
		},
		{
			name: "assign final field",
			classes: []*ClassDecl{class("A",
				field(FinalModifier, intType, "x", intLit("1")),
				method(0, voidType, "m", nil, exprStat(assign(name("x"), intLit("2")))),
			)},
			expectErr: "Cannot assign a value to final field 'x'.",
		},
		{
			name: "assign constant final field in constructor",
			classes: []*ClassDecl{class("A",
				field(FinalModifier, intType, "x", intLit("1")),
				ctor(0, "A", nil, exprStat(assign(name("x"), intLit("2")))),
			)},
			expectErr: "Cannot assign a value to final field 'x'.",
		},
		{
			name: "assign computed final field in constructor",
			classes: []*ClassDecl{class("A",
				field(FinalModifier, intType, "x", call(nil, "init")),
				ctor(0, "A", nil, exprStat(assign(name("x"), intLit("2")))),
				method(0, intType, "init", nil, ret(intLit("1"))),
			)},
		},
		{
			name: "increment final field",
			classes: []*ClassDecl{class("A",
				field(FinalModifier, intType, "x", call(nil, "init")),
				ctor(0, "A", nil, exprStat(&UnaryPostExpr{Expr: name("x"), Op: PostPlusPlus})),
				method(0, intType, "init", nil, ret(intLit("1"))),
			)},
			expectErr: "Cannot assign a value to final field 'x'.",
		},
		{
			name: "field from static method",
			classes: []*ClassDecl{class("A",
				field(0, intType, "f", nil),
				method(StaticModifier, voidType, "m", nil, exprStat(assign(name("f"), intLit("1")))),
			)},
			expectErr: "non-static field 'f' cannot be referenced from a static context.",
		},
		{
			name: "static field from static method",
			classes: []*ClassDecl{class("A",
				field(StaticModifier, intType, "f", nil),
				method(StaticModifier, voidType, "m", nil, exprStat(assign(name("f"), intLit("1")))),
			)},
		},
		{
			name: "instance field through class name",
			classes: []*ClassDecl{
				class("A", field(0, intType, "f", nil)),
				class("B", method(0, voidType, "m", nil, exprStat(assign(fieldRef(name("A"), "f"), intLit("1"))))),
			},
			expectErr: "non-static field 'f' cannot be referenced in a static context.",
		},
		{
			name: "this in static method",
			classes: []*ClassDecl{class("A",
				method(StaticModifier, voidType, "m", nil, local(classRef("A"), "a", &This{})),
			)},
			expectErr: "non-static variable this cannot be referenced from a static context.",
		},
		{
			name: "this in static field initializer",
			classes: []*ClassDecl{class("A",
				field(StaticModifier, classRef("A"), "a", &This{}),
			)},
			expectErr: "non-static variable this cannot be referenced from a static context.",
		},
		{
			name: "instance method from static method",
			classes: []*ClassDecl{class("A",
				method(0, voidType, "n", nil),
				method(StaticModifier, voidType, "m", nil, exprStat(call(nil, "n"))),
			)},
			expectErr: "non-static method 'n' cannot be referenced from a static context.",
		},
		{
			name: "instance method through class name",
			classes: []*ClassDecl{
				class("A", method(0, voidType, "n", nil)),
				class("B", method(0, voidType, "m", nil, exprStat(call(name("A"), "n")))),
			},
			expectErr: "non-static method 'n' cannot be referenced from a static context.",
		},
		{
			name: "static method through class name",
			classes: []*ClassDecl{
				class("A", method(StaticModifier, voidType, "n", nil)),
				class("B", method(0, voidType, "m", nil, exprStat(call(name("A"), "n")))),
			},
		},
		{
			name: "private field of another class",
			classes: []*ClassDecl{
				class("A", field(PrivateModifier, intType, "f", nil)),
				class("B", method(0, voidType, "m", nil, local(intType, "x", fieldRef(newObject("A"), "f")))),
			},
			expectErr: "field 'f' was declared 'private' and cannot be accessed outside its class.",
		},
		{
			name: "private method of another class",
			classes: []*ClassDecl{
				class("A", method(PrivateModifier, voidType, "p", []*ParamDecl{param(intType, "x")})),
				class("B", method(0, voidType, "m", nil, exprStat(call(newObject("A"), "p", intLit("1"))))),
			},
			expectErr: "p( int ) has private access in 'A'.",
		},
		{
			name: "private constructor of another class",
			classes: []*ClassDecl{
				class("A", ctor(PrivateModifier, "A", []*ParamDecl{param(intType, "x")})),
				class("B", method(0, voidType, "m", nil, exprStat(newObject("A", intLit("1"))))),
			},
			expectErr: "A( int ) has private access in 'A'.",
		},
		{
			name: "private super constructor",
			classes: []*ClassDecl{
				class("A", ctor(PrivateModifier, "A", []*ParamDecl{param(intType, "x")}), ctor(0, "A", nil)),
				extends(class("B", &ConstructorDecl{Name: "B", CInvocation: &CInvocation{Super: true, Args: []Expression{intLit("1")}}}), "A"),
			},
			expectErr: "Constructor A( int ) was declared 'private' in class 'A'.",
		},
		{
			name: "abstract class instantiated",
			classes: []*ClassDecl{
				withModifiers(class("A"), AbstractModifier),
				class("B", method(0, voidType, "m", nil, exprStat(newObject("A")))),
			},
			expectErr: "Cannot instantiate abstract class 'A'.",
		},
		{
			name: "array length assigned",
			classes: []*ClassDecl{class("A", method(0, voidType, "m", nil,
				local(arrayOf(intType, 1), "a", &NewArray{Base: intType, DimExprs: []Expression{intLit("3")}, Dims: 1}),
				exprStat(assign(fieldRef(name("a"), "length"), intLit("4"))),
			))},
			expectErr: "Cannot assign a value to final variable length.",
		},
		{
			name: "array length incremented",
			classes: []*ClassDecl{class("A", method(0, voidType, "m", nil,
				local(arrayOf(intType, 1), "a", nil),
				exprStat(&UnaryPreExpr{Op: PrePlusPlus, Expr: fieldRef(name("a"), "length")}),
			))},
			expectErr: "cannot assign a value to final variable length.",
		},
	})
}

func TestModifierChecker_defaults(t *testing.T) {
	f := field(0, prim(IntKind), "f", nil)
	m := abstractMethod(0, prim(IntKind), "m")
	i := iface("I", m)
	a := class("A", f)
	_, err := compileClasses(i, a)
	require.Nil(t, err, "%+v", err)
	assert.True(t, f.Modifiers.IsPublic())
	assert.True(t, a.Modifiers.IsPublic())
	assert.True(t, i.Modifiers.IsAbstract())
	assert.True(t, m.Modifiers.IsAbstract())
}
