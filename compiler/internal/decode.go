package internal

import (
	"encoding/json"
	"espresso/util"

	"github.com/pkg/errors"
)

// In this file, we decode the tree produced by the external parser. Every node is a json object
// discriminated by "kind" and carrying its source "line":
//
//	{"file": "A.java", "classes": [{"kind": "class", "line": 1, "name": "A", "members": [...]}]}
//
// Types are {"kind": "type", "name": "int", "depth": 1}, a depth above zero makes an array type.

type jsonNode struct {
	Kind      string   `json:"kind"`
	Line      int      `json:"line"`
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers"`
	Op        string   `json:"op"`
	Literal   string   `json:"literal"`
	Value     string   `json:"value"`
	Depth     int      `json:"depth"`
	Super     bool     `json:"super"`

	Extends    *jsonNode   `json:"extends"`
	Implements []*jsonNode `json:"implements"`
	Members    []*jsonNode `json:"members"`
	Type       *jsonNode   `json:"type"`
	Params     []*jsonNode `json:"params"`
	Call       *jsonNode   `json:"call"`
	Body       *jsonNode   `json:"body"`
	Stats      []*jsonNode `json:"stats"`
	Init       *jsonNode   `json:"init"`
	Inits      []*jsonNode `json:"inits"`
	Cond       *jsonNode   `json:"cond"`
	Then       *jsonNode   `json:"then"`
	Else       *jsonNode   `json:"else"`
	Incr       []*jsonNode `json:"incr"`
	Expr       *jsonNode   `json:"expr"`
	Groups     []*jsonNode `json:"groups"`
	Labels     []*jsonNode `json:"labels"`
	Target     *jsonNode   `json:"target"`
	Index      *jsonNode   `json:"index"`
	Left       *jsonNode   `json:"left"`
	Right      *jsonNode   `json:"right"`
	Args       []*jsonNode `json:"args"`
	Dims       []*jsonNode `json:"dims"`
	Elements   []*jsonNode `json:"elements"`
}

type jsonCompilation struct {
	File    string      `json:"file"`
	Classes []*jsonNode `json:"classes"`
}

var modifierNames = map[string]Modifiers{
	"public":   PublicModifier,
	"private":  PrivateModifier,
	"static":   StaticModifier,
	"final":    FinalModifier,
	"abstract": AbstractModifier,
}

var primitiveKinds = func() map[string]PrimitiveKind {
	kinds := map[string]PrimitiveKind{}
	for k, name := range primitiveNames {
		kinds[name] = k
	}
	return kinds
}()

// DecodeCompilation builds the tree of one compilation unit from its json encoding.
func DecodeCompilation(data []byte) (*Compilation, error) {
	var jc jsonCompilation
	err := json.Unmarshal(data, &jc)
	if err != nil {
		return nil, errors.Wrap(err, "malformed compilation")
	}
	comp := &Compilation{FileName: jc.File}
	for _, n := range jc.Classes {
		cd, err := decodeClass(n)
		if err != nil {
			return nil, err
		}
		comp.Classes = append(comp.Classes, cd)
	}
	return comp, nil
}

func decodeError(n *jsonNode, format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "line %d", n.Line)
}

func decodeName(n *jsonNode) (string, error) {
	if !util.IsIdentifier(n.Name) {
		return "", decodeError(n, "illegal identifier %q", n.Name)
	}
	return n.Name, nil
}

func decodeModifiers(n *jsonNode) (Modifiers, error) {
	var m Modifiers
	for _, s := range n.Modifiers {
		flag, ok := modifierNames[s]
		if !ok {
			return 0, decodeError(n, "unknown modifier %q", s)
		}
		m.Set(flag)
	}
	return m, nil
}

func decodeClass(n *jsonNode) (*ClassDecl, error) {
	if n == nil || (n.Kind != "class" && n.Kind != "interface") {
		return nil, errors.New("expected a class or an interface declaration")
	}
	name, err := decodeName(n)
	if err != nil {
		return nil, err
	}
	mods, err := decodeModifiers(n)
	if err != nil {
		return nil, err
	}
	cd := &ClassDecl{pos: at(n.Line), Modifiers: mods, Name: name, IsInterface: n.Kind == "interface"}
	if n.Extends != nil {
		ct, err := decodeClassType(n.Extends)
		if err != nil {
			return nil, err
		}
		// The parent types of an interface are all super interfaces.
		if cd.IsInterface {
			cd.Interfaces = append(cd.Interfaces, ct)
		} else {
			cd.SuperClass = ct
		}
	}
	for _, i := range n.Implements {
		ct, err := decodeClassType(i)
		if err != nil {
			return nil, err
		}
		cd.Interfaces = append(cd.Interfaces, ct)
	}
	for _, m := range n.Members {
		member, err := decodeMember(m, cd.IsInterface)
		if err != nil {
			return nil, err
		}
		cd.Body = append(cd.Body, member)
	}
	return cd, nil
}

func decodeType(n *jsonNode) (Type, error) {
	if n == nil || n.Kind != "type" {
		return nil, errors.New("expected a type")
	}
	var base Type
	if kind, ok := primitiveKinds[n.Name]; ok {
		base = &PrimitiveType{pos: at(n.Line), Kind: kind}
	} else {
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		base = &ClassType{pos: at(n.Line), Name: name}
	}
	switch {
	case n.Depth < 0:
		return nil, decodeError(n, "negative array depth %d", n.Depth)
	case n.Depth > 0:
		return &ArrayType{pos: at(n.Line), Base: base, Depth: n.Depth}, nil
	}
	return base, nil
}

func decodeClassType(n *jsonNode) (*ClassType, error) {
	t, err := decodeType(n)
	if err != nil {
		return nil, err
	}
	ct, ok := t.(*ClassType)
	if !ok {
		return nil, decodeError(n, "%s is not a class type", t.TypeName())
	}
	return ct, nil
}

func decodeParams(nodes []*jsonNode) ([]*ParamDecl, error) {
	params := make([]*ParamDecl, 0, len(nodes))
	for _, n := range nodes {
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", name)
		}
		params = append(params, &ParamDecl{pos: at(n.Line), Type: t, Name: name})
	}
	return params, nil
}

func decodeMember(n *jsonNode, inInterface bool) (ClassBodyDecl, error) {
	if n == nil {
		return nil, errors.New("missing class member")
	}
	if n.Kind == "static" {
		body, err := decodeBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &StaticInitDecl{pos: at(n.Line), Body: body}, nil
	}
	name, err := decodeName(n)
	if err != nil {
		return nil, err
	}
	mods, err := decodeModifiers(n)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "field":
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", name)
		}
		fd := &FieldDecl{pos: at(n.Line), Modifiers: mods, Type: t, Name: name, InterfaceMember: inInterface}
		if n.Init != nil {
			fd.Init, err = decodeExpr(n.Init)
			if err != nil {
				return nil, err
			}
		}
		return fd, nil
	case "method":
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", name)
		}
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		md := &MethodDecl{pos: at(n.Line), Modifiers: mods, ReturnType: t, Name: name, Params: params,
			InterfaceMember: inInterface}
		if n.Body != nil {
			md.Body, err = decodeBlock(n.Body)
			if err != nil {
				return nil, err
			}
		}
		return md, nil
	case "constructor":
		params, err := decodeParams(n.Params)
		if err != nil {
			return nil, err
		}
		cod := &ConstructorDecl{pos: at(n.Line), Modifiers: mods, Name: name, Params: params}
		if n.Call != nil {
			args, err := decodeExprs(n.Call.Args)
			if err != nil {
				return nil, err
			}
			cod.CInvocation = &CInvocation{pos: at(n.Call.Line), Super: n.Call.Super, Args: args}
		}
		cod.Body, err = decodeStats(n.Stats)
		if err != nil {
			return nil, err
		}
		return cod, nil
	}
	return nil, decodeError(n, "unknown class member kind %q", n.Kind)
}

func decodeBlock(n *jsonNode) (*Block, error) {
	if n == nil || n.Kind != "block" {
		return nil, errors.New("expected a block")
	}
	stats, err := decodeStats(n.Stats)
	if err != nil {
		return nil, err
	}
	return &Block{pos: at(n.Line), Stats: stats}, nil
}

func decodeStats(nodes []*jsonNode) ([]Statement, error) {
	stats := make([]Statement, 0, len(nodes))
	for _, n := range nodes {
		s, err := decodeStat(n)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// decodeOptionalStat returns a nil Statement for a missing node so that no typed nil escapes.
func decodeOptionalStat(n *jsonNode) (Statement, error) {
	if n == nil {
		return nil, nil
	}
	return decodeStat(n)
}

func decodeOptionalExpr(n *jsonNode) (Expression, error) {
	if n == nil {
		return nil, nil
	}
	return decodeExpr(n)
}

func decodeStat(n *jsonNode) (Statement, error) {
	if n == nil {
		return nil, errors.New("missing statement")
	}
	p := at(n.Line)
	switch n.Kind {
	case "block":
		return decodeBlock(n)
	case "local":
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %s", name)
		}
		init, err := decodeOptionalExpr(n.Init)
		if err != nil {
			return nil, err
		}
		return &LocalDecl{pos: p, Type: t, Name: name, Init: init}, nil
	case "expr":
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStat{pos: p, Expr: e}, nil
	case "if":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStat(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeOptionalStat(n.Else)
		if err != nil {
			return nil, err
		}
		return &IfStat{pos: p, Cond: cond, Then: then, Else: els}, nil
	case "while", "do":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStat(n.Body)
		if err != nil {
			return nil, err
		}
		if n.Kind == "do" {
			return &DoStat{pos: p, Body: body, Cond: cond}, nil
		}
		return &WhileStat{pos: p, Cond: cond, Body: body}, nil
	case "for":
		inits, err := decodeStats(n.Inits)
		if err != nil {
			return nil, err
		}
		cond, err := decodeOptionalExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		incr, err := decodeExprs(n.Incr)
		if err != nil {
			return nil, err
		}
		body, err := decodeStat(n.Body)
		if err != nil {
			return nil, err
		}
		return &ForStat{pos: p, Init: inits, Cond: cond, Incr: incr, Body: body}, nil
	case "return":
		e, err := decodeOptionalExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ReturnStat{pos: p, Expr: e}, nil
	case "break":
		return &BreakStat{pos: p}, nil
	case "continue":
		return &ContinueStat{pos: p}, nil
	case "switch":
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		ss := &SwitchStat{pos: p, Expr: e}
		for _, g := range n.Groups {
			group := &SwitchGroup{pos: at(g.Line)}
			for _, l := range g.Labels {
				le, err := decodeOptionalExpr(l.Expr)
				if err != nil {
					return nil, err
				}
				group.Labels = append(group.Labels, &SwitchLabel{pos: at(l.Line), Expr: le})
			}
			group.Stats, err = decodeStats(g.Stats)
			if err != nil {
				return nil, err
			}
			ss.Groups = append(ss.Groups, group)
		}
		return ss, nil
	}
	return nil, decodeError(n, "unknown statement kind %q", n.Kind)
}

func decodeExprs(nodes []*jsonNode) ([]Expression, error) {
	exprs := make([]Expression, 0, len(nodes))
	for _, n := range nodes {
		e, err := decodeExpr(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func lookupOp(n *jsonNode, names []string) (int, error) {
	for i, name := range names {
		if name == n.Op {
			return i, nil
		}
	}
	return 0, decodeError(n, "unknown %s operator %q", n.Kind, n.Op)
}

func decodeBinary(n *jsonNode) (left, right Expression, err error) {
	left, err = decodeExpr(n.Left)
	if err != nil {
		return nil, nil, err
	}
	right, err = decodeExpr(n.Right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func decodeArrayLiteral(n *jsonNode) (*ArrayLiteral, error) {
	elements, err := decodeExprs(n.Elements)
	if err != nil {
		return nil, err
	}
	return &ArrayLiteral{exprBase: exprBase{pos: at(n.Line)}, Elements: elements}, nil
}

func decodeExpr(n *jsonNode) (Expression, error) {
	if n == nil {
		return nil, errors.New("missing expression")
	}
	base := exprBase{pos: at(n.Line)}
	switch n.Kind {
	case "literal":
		kind, ok := literalNames[n.Literal]
		if !ok {
			return nil, decodeError(n, "unknown literal type %q", n.Literal)
		}
		return &Literal{exprBase: base, Kind: kind, Text: n.Value}, nil
	case "name":
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		return &NameExpr{exprBase: base, Name: name}, nil
	case "field":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		return &FieldRef{exprBase: base, Target: target, Name: name}, nil
	case "invoke":
		target, err := decodeOptionalExpr(n.Target)
		if err != nil {
			return nil, err
		}
		name, err := decodeName(n)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &Invocation{exprBase: base, Target: target, Name: name, Args: args}, nil
	case "new":
		ct, err := decodeClassType(n.Type)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &New{exprBase: base, Class: ct, Args: args}, nil
	case "index":
		target, err := decodeExpr(n.Target)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(n.Index)
		if err != nil {
			return nil, err
		}
		return &ArrayAccessExpr{exprBase: base, Target: target, Index: index}, nil
	case "newarray":
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, err
		}
		dims, err := decodeExprs(n.Dims)
		if err != nil {
			return nil, err
		}
		if n.Depth < len(dims) || n.Depth == 0 {
			return nil, decodeError(n, "array depth %d does not cover %d dimensions", n.Depth, len(dims))
		}
		na := &NewArray{exprBase: base, Base: t, DimExprs: dims, Dims: n.Depth}
		if n.Init != nil {
			na.Init, err = decodeArrayLiteral(n.Init)
			if err != nil {
				return nil, err
			}
		}
		return na, nil
	case "arrayliteral":
		return decodeArrayLiteral(n)
	case "assign":
		op, err := lookupOp(n, assignOpNames)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		return &Assignment{exprBase: base, Left: left, Op: AssignOp(op), Right: right}, nil
	case "binary":
		op, err := lookupOp(n, binOpNames)
		if err != nil {
			return nil, err
		}
		left, right, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{exprBase: base, Left: left, Op: BinOp(op), Right: right}, nil
	case "pre":
		op, err := lookupOp(n, preOpNames)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryPreExpr{exprBase: base, Op: PreOp(op), Expr: e}, nil
	case "post":
		op, err := lookupOp(n, postOpNames)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryPostExpr{exprBase: base, Expr: e, Op: PostOp(op)}, nil
	case "cast":
		t, err := decodeType(n.Type)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &CastExpr{exprBase: base, CastType: t, Expr: e}, nil
	case "ternary":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(n.Else)
		if err != nil {
			return nil, err
		}
		return &Ternary{exprBase: base, Cond: cond, Then: then, Else: els}, nil
	case "this":
		return &This{exprBase: base}, nil
	case "super":
		return &Super{exprBase: base}, nil
	}
	return nil, decodeError(n, "unknown expression kind %q", n.Kind)
}
