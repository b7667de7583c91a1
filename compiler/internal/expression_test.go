package internal

import (
	"go/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpression_constantValue(t *testing.T) {
	testDatas := []struct {
		expr   Expression
		expect string // empty when the expression is not a constant.
	}{
		{expr: intLit("42"), expect: "42"},
		{expr: intLit("0x1F"), expect: "31"},
		{expr: lit(LongLiteral, "10L"), expect: "10"},
		{expr: lit(CharLiteral, "'a'"), expect: "97"},
		{expr: lit(CharLiteral, `'\n'`), expect: "10"},
		{expr: boolLit("true"), expect: "true"},
		{expr: lit(NullLiteral, "null")},
		{expr: name("x")},
		{expr: intLit("-1")},
		{expr: intLit("0xFFFFFFFF"), expect: "-1"},
		{expr: lit(LongLiteral, "0xFFFFFFFFFFFFFFFFL"), expect: "-1"},
		{expr: lit(LongLiteral, "0xFFFFFFFFL"), expect: "4294967295"},
		{expr: binary(intLit("65536"), Mult, intLit("65536")), expect: "0"},
		{expr: binary(intLit("2147483647"), Plus, intLit("1")), expect: "-2147483648"},
		{expr: binary(lit(LongLiteral, "2147483647L"), Plus, intLit("1")), expect: "2147483648"},
		{expr: &UnaryPreExpr{Op: PreMinus, Expr: intLit("2147483648")}, expect: "-2147483648"},
		{expr: binary(intLit("7"), Div, intLit("2")), expect: "3"},
		{expr: binary(intLit("7"), Mod, intLit("2")), expect: "1"},
		{expr: binary(intLit("1"), Div, intLit("0"))},
		{expr: binary(lit(CharLiteral, "'a'"), Plus, intLit("1")), expect: "98"},
		{expr: binary(intLit("1"), LShift, intLit("33")), expect: "2"},
		{expr: binary(&UnaryPreExpr{Op: PreMinus, Expr: intLit("8")}, RRShift, intLit("28")), expect: "15"},
		{expr: binary(intLit("6"), And, intLit("3")), expect: "2"},
		{expr: binary(intLit("1"), Lt, intLit("2")), expect: "true"},
		{expr: binary(boolLit("true"), AndAnd, boolLit("false")), expect: "false"},
		{expr: binary(boolLit("true"), Xor, boolLit("false")), expect: "true"},
		{expr: binary(boolLit("true"), Lt, boolLit("false"))},
		{expr: binary(lit(StringLiteral, `"a"`), Plus, lit(StringLiteral, `"b"`)), expect: `"ab"`},
		{expr: binary(lit(StringLiteral, `"a"`), Plus, intLit("1"))},
		{expr: &UnaryPreExpr{Op: PreMinus, Expr: intLit("5")}, expect: "-5"},
		{expr: &UnaryPreExpr{Op: PreComp, Expr: intLit("0")}, expect: "-1"},
		{expr: &UnaryPreExpr{Op: PreNot, Expr: boolLit("true")}, expect: "false"},
		{expr: &UnaryPreExpr{Op: PreMinus, Expr: boolLit("true")}},
		{expr: cast(prim(ByteKind), intLit("200")), expect: "-56"},
		{expr: cast(prim(CharKind), &UnaryPreExpr{Op: PreMinus, Expr: intLit("1")}), expect: "65535"},
		{expr: cast(prim(IntKind), lit(DoubleLiteral, "2.9")), expect: "2"},
		{expr: cast(prim(BooleanKind), intLit("1"))},
		{expr: cast(classRef("A"), intLit("1"))},
	}
	for i, testData := range testDatas {
		v, ok := constantValue(testData.expr)
		if testData.expect == "" {
			assert.False(t, ok, "case %d", i)
			continue
		}
		if assert.True(t, ok, "case %d", i) {
			assert.Equal(t, testData.expect, v.ExactString(), "case %d", i)
		}
	}
}

func TestExpression_integerLiteralInRange(t *testing.T) {
	testDatas := []struct {
		literal *Literal
		negated bool
		expect  bool
	}{
		{intLit("2147483647"), false, true},
		{intLit("2147483648"), false, false},
		{intLit("2147483648"), true, true},
		{intLit("2147483649"), true, false},
		{intLit("0xFFFFFFFF"), false, true},
		{intLit("0x100000000"), false, false},
		{intLit("037777777777"), false, true},
		{intLit("0"), false, true},
		{lit(LongLiteral, "9223372036854775807L"), false, true},
		{lit(LongLiteral, "9223372036854775808L"), false, false},
		{lit(LongLiteral, "9223372036854775808L"), true, true},
		{lit(LongLiteral, "0xFFFFFFFFFFFFFFFFL"), false, true},
	}
	for _, testData := range testDatas {
		assert.Equal(t, testData.expect, integerLiteralInRange(testData.literal, testData.negated),
			"%s negated=%v", testData.literal.Text, testData.negated)
	}
}

func TestExpression_longShift(t *testing.T) {
	left := lit(LongLiteral, "1L")
	left.setType(prim(LongKind))
	v, ok := constantValue(binary(left, LShift, intLit("33")))
	assert.True(t, ok)
	assert.Equal(t, "8589934592", v.ExactString())
}

func TestExpression_fitsIn(t *testing.T) {
	testDatas := []struct {
		value  int64
		kind   PrimitiveKind
		expect bool
	}{
		{127, ByteKind, true},
		{128, ByteKind, false},
		{-128, ByteKind, true},
		{32767, ShortKind, true},
		{-32769, ShortKind, false},
		{65535, CharKind, true},
		{-1, CharKind, false},
		{1, IntKind, false},
	}
	for _, testData := range testDatas {
		assert.Equal(t, testData.expect, fitsIn(constant.MakeInt64(testData.value), testData.kind),
			"%d %s", testData.value, testData.kind)
	}
	assert.False(t, fitsIn(constant.MakeFloat64(1), ByteKind))
}
