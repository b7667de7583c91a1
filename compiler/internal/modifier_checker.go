package internal

import "sort"

// modifierChecker enforces the access, finality and staticness rules and checks that concrete classes
// implement every abstract method they inherit.
type modifierChecker struct {
	ctx            *Context
	currentClass   *ClassDecl
	currentContext ClassBodyDecl
	// leftHandSide is set while visiting the target of an assignment or an increment.
	leftHandSide bool
}

func checkModifiers(ctx *Context) error {
	mc := &modifierChecker{ctx: ctx}
	for _, cd := range ctx.classes {
		err := mc.visitClass(cd)
		if err != nil {
			return err
		}
	}
	return nil
}

// abstractMethods collects into abstracts the signatures cd inherits without an implementation and into
// concretes the implemented ones. Interfaces are visited before the superclass.
func abstractMethods(abstracts, concretes map[string]bool, cd *ClassDecl) {
	if cd == nil {
		return
	}
	for _, ct := range cd.Interfaces {
		abstractMethods(abstracts, concretes, ct.Decl)
	}
	abstractMethods(abstracts, concretes, cd.superDecl())
	for s := range concretes {
		delete(abstracts, s)
	}
	for _, member := range cd.Body {
		md, ok := member.(*MethodDecl)
		if !ok {
			continue
		}
		s := methodHeader(md)
		if md.Body != nil {
			concretes[s] = true
			delete(abstracts, s)
		} else {
			abstracts[s] = true
			delete(concretes, s)
		}
	}
}

func (mc *modifierChecker) checkImplementationOfAbstractClasses(cd *ClassDecl) error {
	abstracts, concretes := map[string]bool{}, map[string]bool{}
	abstractMethods(abstracts, concretes, cd)
	if len(abstracts) == 0 {
		return nil
	}
	missing := make([]string, 0, len(abstracts))
	for s := range abstracts {
		missing = append(missing, " "+s)
	}
	sort.Strings(missing)
	return mc.ctx.makeSemanticErrorWithNotes(cd, missing,
		"Class '%s' is not abstract and does not override abstract methods:", cd.Name)
}

func (mc *modifierChecker) visitClass(cd *ClassDecl) error {
	ctx := mc.ctx
	ctx.tracef(cd, "Visiting a ClassDecl(%s)", cd.Name)
	mc.currentClass = cd
	if !cd.Modifiers.IsPublic() {
		cd.Modifiers.Set(PublicModifier)
	}
	if cd.IsInterface {
		cd.Modifiers.Set(AbstractModifier)
	}
	if super := cd.superDecl(); super != nil && super.Modifiers.IsFinal() {
		return ctx.makeSemanticError(cd, "Class '%s' cannot inherit from final class '%s'.", cd.Name, super.Name)
	}
	for _, member := range cd.Body {
		mc.currentContext = member
		var err error
		switch member := member.(type) {
		case *FieldDecl:
			err = mc.visitFieldDecl(member)
		case *MethodDecl:
			err = mc.visitMethodDecl(member)
		case *ConstructorDecl:
			err = mc.visitConstructorDecl(member)
		case *StaticInitDecl:
			err = mc.visitStat(member.Body)
		}
		if err != nil {
			return err
		}
	}
	mc.currentContext = nil
	if cd.IsClass() && !cd.Modifiers.IsAbstract() {
		return mc.checkImplementationOfAbstractClasses(cd)
	}
	return nil
}

func (mc *modifierChecker) visitFieldDecl(fd *FieldDecl) error {
	ctx, cd := mc.ctx, mc.currentClass
	if !fd.Modifiers.IsPrivate() && !fd.Modifiers.IsPublic() {
		fd.Modifiers.Set(PublicModifier)
	}
	if fd.Modifiers.IsFinal() && fd.Init == nil {
		kind := "class"
		if cd.IsInterface {
			kind = "interface"
		}
		return ctx.makeSemanticError(fd, "Field '%s' in %s '%s' must be initialized.", fd.Name, kind, cd.Name)
	}
	if fd.Modifiers.IsAbstract() {
		return ctx.makeSemanticError(fd, "Field '%s' cannot be declared abstract.", fd.Name)
	}
	if fd.InterfaceMember && fd.Modifiers.IsPrivate() {
		return ctx.makeSemanticError(fd, "Illegal use of 'private' modifier in interface.")
	}
	if fd.Init == nil {
		return nil
	}
	return mc.visitExpr(fd.Init)
}

func visibility(m Modifiers) (int, string) {
	switch {
	case m.IsPrivate():
		return 0, "private"
	case m.IsPublic():
		return 2, "public"
	}
	return 1, "default"
}

func (mc *modifierChecker) visitMethodDecl(md *MethodDecl) error {
	ctx, cd := mc.ctx, mc.currentClass
	mods := md.Modifiers
	if mods.IsAbstract() && md.Body != nil {
		return ctx.makeSemanticError(md, "Abstract method '%s' cannot have a body.", md.Name)
	}
	if mods.IsAbstract() && mods.IsPrivate() {
		return ctx.makeSemanticError(md, "Abstract method '%s' cannot be declared private.", md.Name)
	}
	if md.Body == nil {
		if cd.IsClass() && !cd.Modifiers.IsAbstract() {
			return ctx.makeSemanticError(md, "Method '%s' does not have a body, or class should be declared abstract.", md.Name)
		}
		if cd.IsClass() && !mods.IsAbstract() {
			return ctx.makeSemanticError(md, "Method '%s' does not have a body, or should be declared abstract.", md.Name)
		}
		if cd.IsInterface && mods.IsFinal() {
			return ctx.makeSemanticError(md, "Method '%s' cannot be declared final in an interface.", md.Name)
		}
		if mods.IsFinal() {
			return ctx.makeSemanticError(md, "Abstract method '%s' cannot be declared final.", md.Name)
		}
	}
	if super := cd.superDecl(); super != nil {
		err := mc.checkOverride(md, super)
		if err != nil {
			return err
		}
	}
	if md.InterfaceMember && mods.IsStatic() {
		return ctx.makeSemanticError(md, "Static method not allowed in interface")
	}
	if md.InterfaceMember {
		md.Modifiers.Set(AbstractModifier)
	}
	if md.Body == nil {
		return nil
	}
	return mc.visitStat(md.Body)
}

func (mc *modifierChecker) checkOverride(md *MethodDecl, super *ClassDecl) error {
	ctx := mc.ctx
	actuals := make([]Type, 0, len(md.Params))
	for _, pd := range md.Params {
		actuals = append(actuals, pd.Type)
	}
	overridden, _ := ctx.findMethod(methodCandidates(super.AllMethods), md.Name, actuals).(*MethodDecl)
	if overridden == nil || overridden.ParamSignature() != md.ParamSignature() {
		return nil
	}
	sm := overridden.Modifiers
	if sm.IsFinal() && !sm.IsPrivate() {
		return ctx.makeSemanticError(md, "Method '%s' was implemented as final in super class, cannot be reimplemented.", md.Name)
	}
	if sm.IsStatic() && !md.Modifiers.IsStatic() {
		return ctx.makeSemanticError(md, "Method '%s' declared static in superclass, cannot be reimplemented non-static.", md.Name)
	}
	if !sm.IsStatic() && md.Modifiers.IsStatic() {
		return ctx.makeSemanticError(md, "Method '%s' declared non-static in superclass, cannot be reimplemented static.", md.Name)
	}
	superRank, superName := visibility(sm)
	rank, name := visibility(md.Modifiers)
	if !sm.IsPrivate() && rank < superRank {
		return ctx.makeSemanticError(md, "Method '%s' declared %s in superclass, cannot be reimplemented as %s.",
			md.Name, superName, name)
	}
	return nil
}

func (mc *modifierChecker) visitConstructorDecl(cod *ConstructorDecl) error {
	ctx := mc.ctx
	if ci := cod.CInvocation; ci != nil {
		if ci.Super && ci.Constructor.Modifiers.IsPrivate() {
			return ctx.makeSemanticError(ci, "Constructor %s(%s ) was declared 'private' in class '%s'.",
				ci.TargetClass.Name, paramTypeNames(ci.Constructor.Params), ci.TargetClass.Name)
		}
		err := mc.visitExprs(ci.Args)
		if err != nil {
			return err
		}
	}
	return mc.visitStats(cod.Body)
}

func (mc *modifierChecker) inStaticContext() bool {
	return mc.currentContext != nil && mc.currentContext.isStatic()
}

func (mc *modifierChecker) visitStats(stats []Statement) error {
	for _, s := range stats {
		err := mc.visitStat(s)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mc *modifierChecker) visitStat(s Statement) error {
	switch s := s.(type) {
	case *Block:
		return mc.visitStats(s.Stats)
	case *LocalDecl:
		if s.Init != nil {
			return mc.visitExpr(s.Init)
		}
	case *ExprStat:
		return mc.visitExpr(s.Expr)
	case *IfStat:
		err := mc.visitExpr(s.Cond)
		if err != nil {
			return err
		}
		err = mc.visitStat(s.Then)
		if err != nil {
			return err
		}
		return mc.visitStat(s.Else)
	case *WhileStat:
		err := mc.visitExpr(s.Cond)
		if err != nil {
			return err
		}
		return mc.visitStat(s.Body)
	case *DoStat:
		err := mc.visitStat(s.Body)
		if err != nil {
			return err
		}
		return mc.visitExpr(s.Cond)
	case *ForStat:
		err := mc.visitStats(s.Init)
		if err != nil {
			return err
		}
		if s.Cond != nil {
			err = mc.visitExpr(s.Cond)
			if err != nil {
				return err
			}
		}
		err = mc.visitExprs(s.Incr)
		if err != nil {
			return err
		}
		return mc.visitStat(s.Body)
	case *ReturnStat:
		if s.Expr != nil {
			return mc.visitExpr(s.Expr)
		}
	case *SwitchStat:
		err := mc.visitExpr(s.Expr)
		if err != nil {
			return err
		}
		for _, group := range s.Groups {
			err = mc.visitStats(group.Stats)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (mc *modifierChecker) visitExprs(exprs []Expression) error {
	for _, e := range exprs {
		err := mc.visitExpr(e)
		if err != nil {
			return err
		}
	}
	return nil
}

// visitTarget visits e as the storage written by an assignment or an increment.
func (mc *modifierChecker) visitTarget(e Expression) error {
	old := mc.leftHandSide
	mc.leftHandSide = true
	err := mc.visitExpr(e)
	mc.leftHandSide = old
	return err
}

func isArrayLength(e Expression) bool {
	fr, ok := e.(*FieldRef)
	return ok && fr.Decl == nil && fr.Name == "length" && isArrayType(fr.TargetType)
}

func isFinalField(e Expression) (*FieldRef, bool) {
	fr, ok := e.(*FieldRef)
	if !ok || fr.Decl == nil {
		return nil, false
	}
	return fr, fr.Decl.Modifiers.IsFinal()
}

func (mc *modifierChecker) visitExpr(e Expression) error {
	ctx := mc.ctx
	switch e := e.(type) {
	case *FieldRef:
		return mc.visitFieldRef(e)
	case *Invocation:
		return mc.visitInvocation(e)
	case *New:
		cd, cod := e.Class.Decl, e.Constructor
		if cd.Modifiers.IsAbstract() {
			return ctx.makeSemanticError(e, "Cannot instantiate abstract class '%s'.", cd.Name)
		}
		if cod.Modifiers.IsPrivate() && mc.currentClass.Name != cd.Name {
			return ctx.makeSemanticError(e, "%s(%s ) has private access in '%s'.", cd.Name, paramTypeNames(cod.Params), cd.Name)
		}
		return mc.visitExprs(e.Args)
	case *This:
		if mc.inStaticContext() {
			return ctx.makeSemanticError(e, "non-static variable this cannot be referenced from a static context.")
		}
	case *Super:
		if mc.inStaticContext() {
			return ctx.makeSemanticError(e, "non-static variable super cannot be referenced from a static context.")
		}
	case *Assignment:
		if isArrayLength(e.Left) {
			return ctx.makeSemanticError(e.Left, "Cannot assign a value to final variable length.")
		}
		err := mc.visitTarget(e.Left)
		if err != nil {
			return err
		}
		return mc.visitExpr(e.Right)
	case *UnaryPostExpr:
		return mc.visitIncrement(e, e.Expr)
	case *UnaryPreExpr:
		if e.Op == PrePlusPlus || e.Op == PreMinusMinus {
			return mc.visitIncrement(e, e.Expr)
		}
		return mc.visitExpr(e.Expr)
	case *ArrayAccessExpr:
		old := mc.leftHandSide
		mc.leftHandSide = false
		err := mc.visitExpr(e.Target)
		if err == nil {
			err = mc.visitExpr(e.Index)
		}
		mc.leftHandSide = old
		return err
	case *NewArray:
		err := mc.visitExprs(e.DimExprs)
		if err != nil {
			return err
		}
		if e.Init != nil {
			return mc.visitExpr(e.Init)
		}
	case *ArrayLiteral:
		return mc.visitExprs(e.Elements)
	case *BinaryExpr:
		err := mc.visitExpr(e.Left)
		if err != nil {
			return err
		}
		return mc.visitExpr(e.Right)
	case *CastExpr:
		return mc.visitExpr(e.Expr)
	case *Ternary:
		err := mc.visitExpr(e.Cond)
		if err != nil {
			return err
		}
		err = mc.visitExpr(e.Then)
		if err != nil {
			return err
		}
		return mc.visitExpr(e.Else)
	}
	return nil
}

func (mc *modifierChecker) visitIncrement(n Node, target Expression) error {
	ctx := mc.ctx
	if isArrayLength(target) {
		return ctx.makeSemanticError(n, "cannot assign a value to final variable length.")
	}
	if fr, final := isFinalField(target); final {
		return ctx.makeSemanticError(n, "Cannot assign a value to final field '%s'.", fr.Name)
	}
	return mc.visitTarget(target)
}

func (mc *modifierChecker) visitFieldRef(fr *FieldRef) error {
	ctx, cd := mc.ctx, mc.currentClass
	fd := fr.Decl
	if fd == nil {
		// length of an array.
		return mc.visitExpr(fr.Target)
	}
	if fd.Modifiers.IsPrivate() && fd.Class() != cd {
		return ctx.makeSemanticError(fr, "field '%s' was declared 'private' and cannot be accessed outside its class.", fr.Name)
	}
	if _, ok := fr.Target.(*This); ok && fr.Rewritten && mc.inStaticContext() && !fd.Modifiers.IsStatic() {
		return ctx.makeSemanticError(fr, "non-static field '%s' cannot be referenced from a static context.", fr.Name)
	}
	if isClassName(fr.Target) && !fd.Modifiers.IsStatic() {
		return ctx.makeSemanticError(fr, "non-static field '%s' cannot be referenced in a static context.", fr.Name)
	}
	if mc.leftHandSide && fd.Modifiers.IsFinal() {
		switch mc.currentContext.(type) {
		case *ConstructorDecl, *StaticInitDecl:
			// A final field with a computed initializer may still be set while the object or class is built.
			if fd.Init != nil && isConstant(fd.Init) {
				return ctx.makeSemanticError(fr, "Cannot assign a value to final field '%s'.", fr.Name)
			}
		default:
			return ctx.makeSemanticError(fr, "Cannot assign a value to final field '%s'.", fr.Name)
		}
	}
	if fr.Rewritten {
		return nil
	}
	old := mc.leftHandSide
	mc.leftHandSide = false
	err := mc.visitExpr(fr.Target)
	mc.leftHandSide = old
	return err
}

func (mc *modifierChecker) visitInvocation(in *Invocation) error {
	ctx, cd := mc.ctx, mc.currentClass
	if in.Target != nil {
		old := mc.leftHandSide
		mc.leftHandSide = false
		err := mc.visitExpr(in.Target)
		mc.leftHandSide = old
		if err != nil {
			return err
		}
	}
	md := in.Method
	if md == nil {
		// length() and charAt() of strings.
		return mc.visitExprs(in.Args)
	}
	if in.Target == nil && mc.inStaticContext() && !md.Modifiers.IsStatic() {
		return ctx.makeSemanticError(in, "non-static method '%s' cannot be referenced from a static context.", in.Name)
	}
	if isClassName(in.Target) && !md.Modifiers.IsStatic() {
		return ctx.makeSemanticError(in, "non-static method '%s' cannot be referenced from a static context.", in.Name)
	}
	if md.Modifiers.IsPrivate() && md.Class() != cd {
		return ctx.makeSemanticError(in, "%s(%s ) has private access in '%s'.", in.Name, paramTypeNames(md.Params), md.Class().Name)
	}
	return mc.visitExprs(in.Args)
}
