package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareProgram = `
{
	"file": "Square.java",
	"classes": [
		{"kind": "interface", "line": 1, "name": "Shape", "members": [
			{"kind": "method", "line": 2, "name": "area", "type": {"kind": "type", "name": "double"}}
		]},
		{"kind": "class", "line": 4, "name": "Square", "modifiers": ["public"],
		 "implements": [{"kind": "type", "name": "Shape"}], "members": [
			{"kind": "field", "line": 5, "name": "side", "modifiers": ["private"], "type": {"kind": "type", "name": "int"}},
			{"kind": "constructor", "line": 6, "name": "Square",
			 "params": [{"kind": "param", "line": 6, "name": "s", "type": {"kind": "type", "name": "int"}}],
			 "stats": [
				{"kind": "expr", "line": 7, "expr": {"kind": "assign", "line": 7, "op": "=",
				 "left": {"kind": "name", "name": "side"}, "right": {"kind": "name", "name": "s"}}}
			]},
			{"kind": "method", "line": 9, "name": "area", "modifiers": ["public"], "type": {"kind": "type", "name": "double"},
			 "body": {"kind": "block", "stats": [
				{"kind": "if", "line": 10,
				 "cond": {"kind": "binary", "op": "<", "left": {"kind": "name", "name": "side"},
				          "right": {"kind": "literal", "literal": "int", "value": "0"}},
				 "then": {"kind": "return", "line": 11, "expr": {"kind": "literal", "literal": "double", "value": "0.0"}}},
				{"kind": "return", "line": 12, "expr": {"kind": "binary", "op": "*",
				 "left": {"kind": "name", "name": "side"}, "right": {"kind": "name", "name": "side"}}}
			]}}
		]},
		{"kind": "class", "line": 14, "name": "Main", "members": [
			{"kind": "method", "line": 15, "name": "main", "modifiers": ["public", "static"], "type": {"kind": "type", "name": "void"},
			 "params": [{"name": "args", "type": {"kind": "type", "name": "String", "depth": 1}}],
			 "body": {"kind": "block", "stats": [
				{"kind": "local", "line": 16, "name": "s", "type": {"kind": "type", "name": "Shape"},
				 "init": {"kind": "new", "type": {"kind": "type", "name": "Square"},
				          "args": [{"kind": "literal", "literal": "int", "value": "3"}]}},
				{"kind": "local", "line": 17, "name": "a", "type": {"kind": "type", "name": "double"},
				 "init": {"kind": "invoke", "target": {"kind": "name", "name": "s"}, "name": "area"}}
			]}}
		]}
	]
}`

func TestDecodeCompilation(t *testing.T) {
	comp, err := DecodeCompilation([]byte(squareProgram))
	require.Nil(t, err, "%+v", err)
	assert.Equal(t, "Square.java", comp.FileName)
	require.Len(t, comp.Classes, 3)

	shape, square, main := comp.Classes[0], comp.Classes[1], comp.Classes[2]
	assert.True(t, shape.IsInterface)
	assert.Nil(t, shape.Body[0].(*MethodDecl).Body)
	assert.True(t, shape.Body[0].(*MethodDecl).InterfaceMember)
	assert.True(t, square.Modifiers.IsPublic())
	assert.Equal(t, "Shape", square.Interfaces[0].Name)
	assert.True(t, square.Body[0].(*FieldDecl).Modifiers.IsPrivate())
	assert.Equal(t, 6, square.Body[1].Line())
	mainMethod := main.Body[0].(*MethodDecl)
	assert.True(t, mainMethod.Modifiers.IsStatic())
	assert.Equal(t, "String[]", mainMethod.Params[0].Type.TypeName())

	ctx, err := Compile(comp, Options{})
	require.Nil(t, err, "%+v", err)
	assert.Equal(t, "Square.java", ctx.FileName)
	area := mainMethod.Body.Stats[1].(*LocalDecl).Init
	assert.Equal(t, "double", area.ExprType().TypeName())
	assert.Equal(t, shape, area.(*Invocation).Method.Class())
}

func TestDecodeCompilation_errors(t *testing.T) {
	testDatas := []struct {
		data      string
		expectErr string
	}{
		{data: `{`, expectErr: "malformed compilation"},
		{data: `{"classes": [{"kind": "enum", "name": "E"}]}`, expectErr: "expected a class or an interface declaration"},
		{data: `{"classes": [{"kind": "class", "name": "1A"}]}`, expectErr: `illegal identifier "1A"`},
		{data: `{"classes": [{"kind": "class", "name": "A", "modifiers": ["protected"]}]}`, expectErr: `unknown modifier "protected"`},
		{
			data:      `{"classes": [{"kind": "class", "name": "A", "extends": {"kind": "type", "name": "int"}}]}`,
			expectErr: "int is not a class type",
		},
		{
			data: `{"classes": [{"kind": "class", "name": "A", "members": [
				{"kind": "field", "name": "f", "type": {"kind": "type", "name": "int"},
				 "init": {"kind": "binary", "op": "**", "left": {"kind": "literal", "literal": "int", "value": "1"},
				          "right": {"kind": "literal", "literal": "int", "value": "1"}}}]}]}`,
			expectErr: `unknown binary operator "**"`,
		},
		{
			data: `{"classes": [{"kind": "class", "name": "A", "members": [
				{"kind": "method", "line": 3, "name": "m", "type": {"kind": "type", "name": "void"},
				 "body": {"kind": "block", "stats": [{"kind": "goto", "line": 4}]}}]}]}`,
			expectErr: `line 4: unknown statement kind "goto"`,
		},
		{
			data: `{"classes": [{"kind": "class", "name": "A", "members": [
				{"kind": "field", "name": "f", "type": {"kind": "type", "name": "int"},
				 "init": {"kind": "literal", "literal": "decimal", "value": "1"}}]}]}`,
			expectErr: `unknown literal type "decimal"`,
		},
		{
			data:      `{"classes": [{"kind": "class", "name": "A", "members": [{"kind": "field", "name": "f"}]}]}`,
			expectErr: "field f: expected a type",
		},
	}
	for _, testData := range testDatas {
		_, err := DecodeCompilation([]byte(testData.data))
		if assert.NotNil(t, err, testData.data) {
			assert.Contains(t, err.Error(), testData.expectErr)
		}
	}
}

func TestDecodeCompilation_interfaceExtends(t *testing.T) {
	comp, err := DecodeCompilation([]byte(`{"classes": [
		{"kind": "interface", "line": 1, "name": "J"},
		{"kind": "interface", "line": 2, "name": "I", "extends": {"kind": "type", "name": "J"}},
		{"kind": "class", "line": 3, "name": "A", "extends": {"kind": "type", "name": "B"}}
	]}`))
	require.Nil(t, err, "%+v", err)
	i, a := comp.Classes[1], comp.Classes[2]
	assert.Nil(t, i.SuperClass)
	require.Len(t, i.Interfaces, 1)
	assert.Equal(t, "J", i.Interfaces[0].Name)
	assert.Equal(t, "B", a.SuperClass.Name)
	assert.Empty(t, a.Interfaces)
}
