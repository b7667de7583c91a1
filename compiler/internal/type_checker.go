package internal

import (
	"go/constant"
)

// typeChecker assigns a type to every expression and resolves every invocation and instantiation.
type typeChecker struct {
	ctx          *Context
	currentClass *ClassDecl
	// currentContext is the member whose body is being checked, nil inside field initializers.
	currentContext ClassBodyDecl
	// negated is the literal operand of the unary minus being visited.
	negated *Literal
}

func checkTypes(ctx *Context) error {
	tc := &typeChecker{ctx: ctx}
	for _, cd := range ctx.classes {
		err := tc.visitClass(cd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (tc *typeChecker) visitClass(cd *ClassDecl) error {
	ctx := tc.ctx
	ctx.tracef(cd, "Visiting a ClassDecl(%s)", cd.Name)
	tc.currentClass = cd
	for i := range cd.Interfaces {
		for j := i + 1; j < len(cd.Interfaces); j++ {
			if cd.Interfaces[i].Name == cd.Interfaces[j].Name {
				return ctx.makeSemanticError(cd, "Repeated interface '%s'", cd.Interfaces[i].Name)
			}
		}
	}
	for _, member := range cd.Body {
		var err error
		switch member := member.(type) {
		case *FieldDecl:
			tc.currentContext = nil
			if member.Init != nil {
				err = tc.checkInitializer(member, member.Type, member.Init)
			}
		case *MethodDecl:
			tc.currentContext = member
			if member.Body != nil {
				err = tc.visitStat(member.Body)
			}
		case *ConstructorDecl:
			tc.currentContext = member
			err = tc.visitConstructorDecl(member)
		case *StaticInitDecl:
			tc.currentContext = member
			err = tc.visitStat(member.Body)
		}
		if err != nil {
			return err
		}
	}
	tc.currentContext = nil
	return nil
}

func (tc *typeChecker) visitConstructorDecl(cod *ConstructorDecl) error {
	if cod.CInvocation != nil {
		err := tc.visitCInvocation(cod, cod.CInvocation)
		if err != nil {
			return err
		}
	}
	return tc.visitStats(cod.Body)
}

func (tc *typeChecker) visitCInvocation(cod *ConstructorDecl, ci *CInvocation) error {
	ctx, cd := tc.ctx, tc.currentClass
	ctx.tracef(ci, "Visiting an explicit constructor invocation.")
	target := cd
	if ci.Super {
		target = cd.superDecl()
	}
	if target == nil {
		return ctx.makeSemanticError(ci, "Class '%s' does not have a super class.", cd.Name)
	}
	actuals, err := tc.visitArgs(ci.Args)
	if err != nil {
		return err
	}
	candidates := constructorCandidates(target.Constructors)
	constructor, _ := ctx.findMethod(candidates, target.Name, actuals).(*ConstructorDecl)
	if constructor == nil {
		return ctx.makeSemanticErrorWithNotes(ci, listCandidates(target, candidates, target.Name),
			"No constructor %s(%s ) found. Candidates are:", target.Name, typeNames(actuals))
	}
	if constructor == cod {
		return ctx.makeSemanticError(ci, "Recursive constructor invocation of constructor %s(%s ).",
			target.Name, paramTypeNames(constructor.Params))
	}
	ci.TargetClass = target
	ci.Constructor = constructor
	return nil
}

// checkInitializer checks the initializer of a field or a local variable of type t.
func (tc *typeChecker) checkInitializer(n Node, t Type, init Expression) error {
	if al, ok := init.(*ArrayLiteral); ok && isArrayType(t) {
		return tc.checkArrayLiteral(t, al)
	}
	it, err := tc.visitExpr(init)
	if err != nil {
		return err
	}
	if narrowConstantAssignable(t, init) || assignmentCompatible(t, it) {
		return nil
	}
	return tc.ctx.makeSemanticError(n, "Cannot assign value of type %s to variable of type %s.", it.TypeName(), t.TypeName())
}

func (tc *typeChecker) checkArrayLiteral(t Type, al *ArrayLiteral) error {
	ctx := tc.ctx
	at, ok := t.(*ArrayType)
	if !ok {
		return ctx.makeSemanticError(al, "Cannot assign an array literal to type '%s'.", t.TypeName())
	}
	al.setType(at)
	elem := at.elementType()
	for _, e := range al.Elements {
		if inner, ok := e.(*ArrayLiteral); ok {
			if !isArrayType(elem) {
				return ctx.makeSemanticError(inner, "Cannot assign an array literal to type '%s'.", elem.TypeName())
			}
			err := tc.checkArrayLiteral(elem, inner)
			if err != nil {
				return err
			}
			continue
		}
		et, err := tc.visitExpr(e)
		if err != nil {
			return err
		}
		if !narrowConstantAssignable(elem, e) && !assignmentCompatible(elem, et) {
			return ctx.makeSemanticError(e, "Incompatible type in array assignment.")
		}
	}
	return nil
}

func (tc *typeChecker) visitStats(stats []Statement) error {
	for _, s := range stats {
		err := tc.visitStat(s)
		if err != nil {
			return err
		}
	}
	return nil
}

func (tc *typeChecker) visitCondition(cond Expression, message string) error {
	t, err := tc.visitExpr(cond)
	if err != nil {
		return err
	}
	if !isBooleanType(t) {
		return tc.ctx.makeSemanticError(cond, message)
	}
	return nil
}

func (tc *typeChecker) visitStat(s Statement) error {
	if s == nil {
		return nil
	}
	switch s := s.(type) {
	case *Block:
		return tc.visitStats(s.Stats)
	case *LocalDecl:
		if s.Init == nil {
			return nil
		}
		return tc.checkInitializer(s, s.Type, s.Init)
	case *ExprStat:
		_, err := tc.visitExpr(s.Expr)
		return err
	case *IfStat:
		err := tc.visitCondition(s.Cond, "Non boolean Expression found as test in if-statement.")
		if err != nil {
			return err
		}
		err = tc.visitStat(s.Then)
		if err != nil {
			return err
		}
		return tc.visitStat(s.Else)
	case *WhileStat:
		err := tc.visitCondition(s.Cond, "Non boolean Expression found as test in while-statement.")
		if err != nil {
			return err
		}
		return tc.visitStat(s.Body)
	case *DoStat:
		err := tc.visitStat(s.Body)
		if err != nil {
			return err
		}
		return tc.visitCondition(s.Cond, "Non boolean Expression found as test in do-statement.")
	case *ForStat:
		err := tc.visitStats(s.Init)
		if err != nil {
			return err
		}
		if s.Cond != nil {
			err = tc.visitCondition(s.Cond, "Non boolean Expression found in for-statement.")
			if err != nil {
				return err
			}
		}
		_, err = tc.visitArgs(s.Incr)
		if err != nil {
			return err
		}
		return tc.visitStat(s.Body)
	case *ReturnStat:
		return tc.visitReturnStat(s)
	case *SwitchStat:
		return tc.visitSwitchStat(s)
	}
	return nil
}

func (tc *typeChecker) visitReturnStat(rs *ReturnStat) error {
	ctx := tc.ctx
	if _, ok := tc.currentContext.(*StaticInitDecl); ok {
		return ctx.makeSemanticError(rs, "return outside method.")
	}
	var returnType Type
	if md, ok := tc.currentContext.(*MethodDecl); ok {
		returnType = md.ReturnType
	}
	if returnType == nil || isVoidType(returnType) {
		if rs.Expr != nil {
			return ctx.makeSemanticError(rs, "Return statement of a void function cannot return a value.")
		}
		return nil
	}
	if rs.Expr == nil {
		return ctx.makeSemanticError(rs, "Non void function must return a value.")
	}
	t, err := tc.visitExpr(rs.Expr)
	if err != nil {
		return err
	}
	if !narrowConstantAssignable(returnType, rs.Expr) && !assignmentCompatible(returnType, t) {
		return ctx.makeSemanticError(rs, "Illegal value of type %s in method expecting value of type %s.",
			t.TypeName(), returnType.TypeName())
	}
	rs.Type = returnType
	return nil
}

func (tc *typeChecker) visitSwitchStat(ss *SwitchStat) error {
	ctx := tc.ctx
	et, err := tc.visitExpr(ss.Expr)
	if err != nil {
		return err
	}
	validSwitchType := func(t Type) bool {
		return (isIntegralType(t) && !isKind(t, LongKind)) || isStringType(t)
	}
	if !validSwitchType(et) {
		return ctx.makeSemanticError(ss, "Switch statement expects integer or string type, found type '%s'.", et.TypeName())
	}
	seen := map[string]bool{}
	for _, group := range ss.Groups {
		for _, label := range group.Labels {
			if label.IsDefault() {
				if seen["default"] {
					return ctx.makeSemanticError(label, "Duplicate default label.")
				}
				seen["default"] = true
				continue
			}
			lt, err := tc.visitExpr(label.Expr)
			if err != nil {
				return err
			}
			v, ok := constantValue(label.Expr)
			if !ok {
				return ctx.makeSemanticError(label, "Switch labels must be constants.")
			}
			if !validSwitchType(lt) {
				if isStringType(et) {
					return ctx.makeSemanticError(label, "Switch labels must be of type string.")
				}
				return ctx.makeSemanticError(label, "Switch labels must be of type int.")
			}
			if isStringType(lt) != isStringType(et) {
				return ctx.makeSemanticError(label, "Switch labels must match the type of the expression.")
			}
			key := v.ExactString()
			if v.Kind() == constant.String {
				key = "s:" + constant.StringVal(v)
			}
			if seen[key] {
				return ctx.makeSemanticError(label, "Duplicate case label.")
			}
			seen[key] = true
		}
		err = tc.visitStats(group.Stats)
		if err != nil {
			return err
		}
	}
	return nil
}

func (tc *typeChecker) visitArgs(args []Expression) ([]Type, error) {
	types := make([]Type, 0, len(args))
	for _, e := range args {
		t, err := tc.visitExpr(e)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// visitExpr returns the type of e and records it in e.
func (tc *typeChecker) visitExpr(e Expression) (Type, error) {
	if t := e.ExprType(); t != nil {
		// Names synthesized by the rewrite, like this in this.f, are typed already.
		if _, ok := e.(*This); ok {
			return t, nil
		}
	}
	t, err := tc.typeOf(e)
	if err != nil {
		return nil, err
	}
	e.setType(t)
	tc.ctx.tracef(e, "Expression has type: %s", t.TypeName())
	return t, nil
}

func (tc *typeChecker) typeOf(e Expression) (Type, error) {
	ctx, cd := tc.ctx, tc.currentClass
	switch e := e.(type) {
	case *Literal:
		if (e.Kind == IntLiteral || e.Kind == LongLiteral) && !integerLiteralInRange(e, tc.negated == e) {
			return nil, ctx.makeSemanticError(e, "Integer number too large: %s.", e.Text)
		}
		return literalType(e), nil
	case *NameExpr:
		switch decl := e.Decl.(type) {
		case *LocalDecl:
			return decl.Type, nil
		case *ParamDecl:
			return decl.Type, nil
		case *FieldDecl:
			return decl.Type, nil
		case *ClassDecl:
			return &ClassType{pos: e.pos, Name: decl.Name, Decl: decl}, nil
		}
		return nil, ctx.makeSemanticError(e, "Unknown name expression '%s'.", e.Name)
	case *This:
		return NewClassType(cd), nil
	case *Super:
		if cd.SuperClass == nil {
			return nil, ctx.makeSemanticError(e, "Class '%s' does not have a superclass.", cd.Name)
		}
		return cd.SuperClass, nil
	case *FieldRef:
		return tc.visitFieldRef(e)
	case *Invocation:
		return tc.visitInvocation(e)
	case *New:
		return tc.visitNew(e)
	case *ArrayAccessExpr:
		t, err := tc.visitExpr(e.Target)
		if err != nil {
			return nil, err
		}
		at, ok := t.(*ArrayType)
		if !ok {
			return nil, ctx.makeSemanticError(e, "Array type required, but found type '%s'.", t.TypeName())
		}
		it, err := tc.visitExpr(e.Index)
		if err != nil {
			return nil, err
		}
		if !isIntegralType(it) {
			return nil, ctx.makeSemanticError(e, "Array access index must be of integral type.")
		}
		return at.elementType(), nil
	case *NewArray:
		for _, d := range e.DimExprs {
			t, err := tc.visitExpr(d)
			if err != nil {
				return nil, err
			}
			if !isIntegralType(t) {
				return nil, ctx.makeSemanticError(d, "Array dimension must be of integral type.")
			}
		}
		at := &ArrayType{pos: e.pos, Base: e.Base, Depth: e.Dims}
		if e.Init != nil {
			err := tc.checkArrayLiteral(at, e.Init)
			if err != nil {
				return nil, ctx.makeSemanticError(e, "Array Initializer is not compatible with type '%s'.", at.TypeName())
			}
		}
		return at, nil
	case *ArrayLiteral:
		return nil, ctx.makeSemanticError(e, "Array literal must be preceeded by a 'new <type>'.")
	case *Assignment:
		return tc.visitAssignment(e)
	case *BinaryExpr:
		return tc.visitBinaryExpr(e)
	case *UnaryPreExpr:
		return tc.visitUnaryPreExpr(e)
	case *UnaryPostExpr:
		t, err := tc.visitExpr(e.Expr)
		if err != nil {
			return nil, err
		}
		if !isVariable(e.Expr) {
			return nil, ctx.makeSemanticError(e, "Variable expected, found value.")
		}
		if !isNumericType(t) {
			return nil, ctx.makeSemanticError(e, "Cannot apply operator '%s' to something of type %s.", e.Op, t.TypeName())
		}
		return t, nil
	case *CastExpr:
		return tc.visitCastExpr(e)
	case *Ternary:
		return tc.visitTernary(e)
	}
	return nil, ctx.makeSemanticError(e, "Unknown expression.")
}

var literalKinds = map[LiteralKind]PrimitiveKind{
	BooleanLiteral: BooleanKind,
	CharLiteral:    CharKind,
	IntLiteral:     IntKind,
	LongLiteral:    LongKind,
	FloatLiteral:   FloatKind,
	DoubleLiteral:  DoubleKind,
	StringLiteral:  StringKind,
}

func literalType(li *Literal) Type {
	if li.Kind == NullLiteral {
		return &NullType{pos: li.pos}
	}
	return &PrimitiveType{pos: li.pos, Kind: literalKinds[li.Kind]}
}

// isVariable reports whether e denotes a storage location.
func isVariable(e Expression) bool {
	switch e := e.(type) {
	case *NameExpr:
		return !isClassName(e)
	case *FieldRef, *ArrayAccessExpr:
		return true
	}
	return false
}

func (tc *typeChecker) visitFieldRef(fr *FieldRef) (Type, error) {
	ctx := tc.ctx
	t, err := tc.visitExpr(fr.Target)
	if err != nil {
		return nil, err
	}
	fr.TargetType = t
	if isArrayType(t) && fr.Name == "length" {
		return NewPrimitiveType(IntKind), nil
	}
	ct, ok := t.(*ClassType)
	if !ok {
		return nil, ctx.makeSemanticError(fr, "Attempt to access field '%s' in something not of class type.", fr.Name)
	}
	fd := getField(fr.Name, ct.Decl)
	if fd == nil {
		return nil, ctx.makeSemanticError(fr, "Field '%s' not found in class '%s'.", fr.Name, ct.Decl.Name)
	}
	fr.Decl = fd
	return fd.Type, nil
}

func (tc *typeChecker) visitInvocation(in *Invocation) (Type, error) {
	ctx := tc.ctx
	var cd *ClassDecl
	if in.Target == nil {
		cd = tc.currentClass
		in.TargetType = NewClassType(cd)
	} else {
		t, err := tc.visitExpr(in.Target)
		if err != nil {
			return nil, err
		}
		in.TargetType = t
		if isStringType(t) && in.Name == "length" && len(in.Args) == 0 {
			return NewPrimitiveType(IntKind), nil
		}
		if isStringType(t) && in.Name == "charAt" && len(in.Args) == 1 {
			at, err := tc.visitExpr(in.Args[0])
			if err != nil {
				return nil, err
			}
			if !isIntegralType(at) || isKind(at, LongKind) {
				return nil, ctx.makeSemanticError(in, "method charAt in class String cannot be applied to %s.", at.TypeName())
			}
			return NewPrimitiveType(CharKind), nil
		}
		ct, ok := t.(*ClassType)
		if !ok {
			return nil, ctx.makeSemanticError(in, "Attempt to invoke method '%s' in something not of class type.", in.Name)
		}
		cd = ct.Decl
	}
	actuals, err := tc.visitArgs(in.Args)
	if err != nil {
		return nil, err
	}
	candidates := methodCandidates(cd.AllMethods)
	method, _ := ctx.findMethod(candidates, in.Name, actuals).(*MethodDecl)
	if method == nil {
		return nil, ctx.makeSemanticErrorWithNotes(in, listCandidates(cd, candidates, in.Name),
			"No method %s(%s ) found. Candidates are:", in.Name, typeNames(actuals))
	}
	in.Method = method
	return method.ReturnType, nil
}

func (tc *typeChecker) visitNew(ne *New) (Type, error) {
	ctx := tc.ctx
	cd := ne.Class.Decl
	if cd.IsInterface {
		return nil, ctx.makeSemanticError(ne, "Cannot instantiate interface '%s'.", cd.Name)
	}
	actuals, err := tc.visitArgs(ne.Args)
	if err != nil {
		return nil, err
	}
	candidates := constructorCandidates(cd.Constructors)
	constructor, _ := ctx.findMethod(candidates, cd.Name, actuals).(*ConstructorDecl)
	if constructor == nil {
		return nil, ctx.makeSemanticErrorWithNotes(ne, listCandidates(cd, candidates, cd.Name),
			"No constructor %s(%s ) found. Candidates are:", cd.Name, typeNames(actuals))
	}
	ne.Constructor = constructor
	return ne.Class, nil
}

func (tc *typeChecker) visitAssignment(as *Assignment) (Type, error) {
	ctx := tc.ctx
	vt, err := tc.visitExpr(as.Left)
	if err != nil {
		return nil, err
	}
	et, err := tc.visitExpr(as.Right)
	if err != nil {
		return nil, err
	}
	if !isVariable(as.Left) {
		return nil, ctx.makeSemanticError(as, "Left-hand side of assignment not assignable.")
	}
	op := as.Op
	switch op {
	case Assign:
		if !narrowConstantAssignable(vt, as.Right) && !assignmentCompatible(vt, et) {
			return nil, ctx.makeSemanticError(as, "Cannot assign value of type %s to variable of type %s.",
				et.TypeName(), vt.TypeName())
		}
	case MultAssign, DivAssign, ModAssign, PlusAssign, MinusAssign:
		if op == PlusAssign && isStringType(vt) {
			break
		}
		if !assignmentCompatible(vt, et) {
			return nil, ctx.makeSemanticError(as, "Cannot assign value of type %s to variable of type %s.",
				et.TypeName(), vt.TypeName())
		}
		if !isNumericType(et) {
			return nil, ctx.makeSemanticError(as, "Right-hand side operand of operator '%s' must be of numeric type.", op)
		}
		if !isNumericType(vt) {
			return nil, ctx.makeSemanticError(as, "Left-hand side operand of operator '%s' must be of numeric type.", op)
		}
	case LShiftAssign, RShiftAssign, RRShiftAssign:
		if !isIntegralType(vt) {
			return nil, ctx.makeSemanticError(as, "Left-hand side operand of operator '%s' must be of integral type.", op)
		}
		if !isIntegralType(et) {
			return nil, ctx.makeSemanticError(as, "Right-hand side operand of operator '%s' must be of integral type.", op)
		}
	case AndAssign, OrAssign, XorAssign:
		if !identical(vt, et) || !(isIntegralType(vt) || isBooleanType(vt)) {
			return nil, ctx.makeSemanticError(as,
				"Both right and left-hand side operands of operator '%s' must be either of boolean or similar integral type.", op)
		}
	}
	return vt, nil
}

func (tc *typeChecker) visitBinaryExpr(be *BinaryExpr) (Type, error) {
	ctx := tc.ctx
	lt, err := tc.visitExpr(be.Left)
	if err != nil {
		return nil, err
	}
	if be.Op == InstanceOf {
		return tc.visitInstanceOf(be, lt)
	}
	rt, err := tc.visitExpr(be.Right)
	if err != nil {
		return nil, err
	}
	op := be.Op
	switch op {
	case Lt, Gt, Le, Ge:
		if !isNumericType(lt) || !isNumericType(rt) {
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires operands of numeric type.", op)
		}
		return NewPrimitiveType(BooleanKind), nil
	case Eq, Ne:
		for _, operand := range []Expression{be.Left, be.Right} {
			if isClassName(operand) {
				return nil, ctx.makeSemanticError(be, "Class name '%s' cannot appear as parameter to operator '%s'.",
					operand.(*NameExpr).Name, op)
			}
		}
		switch {
		case identical(lt, rt):
			if isVoidType(lt) {
				return nil, ctx.makeSemanticError(be, "Void type cannot be used here.")
			}
		case isNumericType(lt) && isNumericType(rt):
		case isNullType(lt) && isReferenceType(rt), isReferenceType(lt) && isNullType(rt):
		default:
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires operands of the same type.", op)
		}
		return NewPrimitiveType(BooleanKind), nil
	case AndAnd, OrOr:
		if !isBooleanType(lt) || !isBooleanType(rt) {
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires operands of boolean type.", op)
		}
		return NewPrimitiveType(BooleanKind), nil
	case And, Or, Xor:
		if isBooleanType(lt) && isBooleanType(rt) {
			return NewPrimitiveType(BooleanKind), nil
		}
		if isIntegralType(lt) && isIntegralType(rt) {
			return ceilingType(lt.(*PrimitiveType), rt.(*PrimitiveType)), nil
		}
		return nil, ctx.makeSemanticError(be, "Operator '%s' requires both operands of either integral or boolean type.", op)
	case Plus, Minus, Mult, Div, Mod:
		if op == Plus && (isStringType(lt) || isStringType(rt)) {
			return NewPrimitiveType(StringKind), nil
		}
		if !isNumericType(lt) || !isNumericType(rt) {
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires operands of numeric type.", op)
		}
		return ceilingType(lt.(*PrimitiveType), rt.(*PrimitiveType)), nil
	case LShift, RShift, RRShift:
		if !isIntegralType(lt) {
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires left operand of integral type.", op)
		}
		if !isIntegralType(rt) {
			return nil, ctx.makeSemanticError(be, "Operator '%s' requires right operand of integral type.", op)
		}
		return NewPrimitiveType(promote(lt.(*PrimitiveType).Kind)), nil
	}
	return nil, ctx.makeSemanticError(be, "Unknown operator '%s'.", op)
}

func (tc *typeChecker) visitInstanceOf(be *BinaryExpr, lt Type) (Type, error) {
	ctx := tc.ctx
	ne, ok := be.Right.(*NameExpr)
	if !ok || !isClassName(ne) {
		name := ""
		if ok {
			name = ne.Name
		}
		return nil, ctx.makeSemanticError(be, "'%s' is not a class name.", name)
	}
	_, err := tc.visitExpr(ne)
	if err != nil {
		return nil, err
	}
	if !isClassType(lt) {
		return nil, ctx.makeSemanticError(be, "Left-hand side of instanceof needs expression of class type.")
	}
	if isClassName(be.Left) {
		return nil, ctx.makeSemanticError(be, "Left-hand side of instanceof cannot be a class.")
	}
	return NewPrimitiveType(BooleanKind), nil
}

func (tc *typeChecker) visitUnaryPreExpr(up *UnaryPreExpr) (Type, error) {
	ctx := tc.ctx
	if li, isLiteral := up.Expr.(*Literal); isLiteral && up.Op == PreMinus {
		tc.negated = li
	}
	t, err := tc.visitExpr(up.Expr)
	tc.negated = nil
	if err != nil {
		return nil, err
	}
	var ok bool
	switch up.Op {
	case PrePlus, PreMinus:
		ok = isNumericType(t)
	case PreNot:
		ok = isBooleanType(t)
	case PreComp:
		ok = isIntegralType(t)
	case PrePlusPlus, PreMinusMinus:
		if !isVariable(up.Expr) {
			return nil, ctx.makeSemanticError(up, "Variable expected, found value.")
		}
		ok = isNumericType(t)
	}
	if !ok {
		return nil, ctx.makeSemanticError(up, "Cannot apply operator '%s' to something of type %s.", up.Op, t.TypeName())
	}
	if k, _ := primitiveKind(t); k != promote(k) {
		return NewPrimitiveType(promote(k)), nil
	}
	return t, nil
}

func (tc *typeChecker) visitCastExpr(ce *CastExpr) (Type, error) {
	ctx := tc.ctx
	et, err := tc.visitExpr(ce.Expr)
	if err != nil {
		return nil, err
	}
	ct := ce.CastType
	if isNumericType(et) && isNumericType(ct) {
		return ct, nil
	}
	if isClassName(ce.Expr) {
		return nil, ctx.makeSemanticError(ce, "Cannot use class name '%s'. Object name expected in cast.",
			ce.Expr.(*NameExpr).Name)
	}
	ect, eok := et.(*ClassType)
	cct, cok := ct.(*ClassType)
	if eok && cok && (isSuper(ect, cct) || isSuper(cct, ect)) {
		return ct, nil
	}
	if !identical(et, ct) {
		return nil, ctx.makeSemanticError(ce, "Illegal type cast. Cannot cast type '%s' to type '%s'.",
			et.TypeName(), ct.TypeName())
	}
	return ct, nil
}

func (tc *typeChecker) visitTernary(te *Ternary) (Type, error) {
	ctx := tc.ctx
	ct, err := tc.visitExpr(te.Cond)
	if err != nil {
		return nil, err
	}
	tt, err := tc.visitExpr(te.Then)
	if err != nil {
		return nil, err
	}
	ft, err := tc.visitExpr(te.Else)
	if err != nil {
		return nil, err
	}
	if !isBooleanType(ct) {
		return nil, ctx.makeSemanticError(te, "Non-Boolean Expression found as test in ternary expression.")
	}
	tp, tok := tt.(*PrimitiveType)
	fp, fok := ft.(*PrimitiveType)
	switch {
	case tok && fok:
		if !assignmentCompatible(ft, tt) && !assignmentCompatible(tt, ft) {
			break
		}
		return NewPrimitiveType(ceiling(tp.Kind, fp.Kind)), nil
	case isClassType(tt) && isClassType(ft):
		return ctx.intersectionType(tt.(*ClassType), ft.(*ClassType)), nil
	case isNullType(tt) && (isReferenceType(ft) || isNullType(ft)):
		return ft, nil
	case isReferenceType(tt) && isNullType(ft):
		return tt, nil
	case isArrayType(tt) && identical(tt, ft):
		return tt, nil
	}
	return nil, ctx.makeSemanticError(te, "Both branches of a ternary expression must be of assignment compatible types.")
}
