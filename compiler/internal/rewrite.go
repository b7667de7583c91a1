package internal

// rewriteFieldNames replaces every plain name of cd that resolved to a field by an explicit field
// reference: ClassName.f for static fields and this.f otherwise.
func rewriteFieldNames(cd *ClassDecl) {
	r := &fieldRewriter{cd: cd}
	for _, member := range cd.Body {
		switch member := member.(type) {
		case *FieldDecl:
			member.Init = r.expr(member.Init)
		case *MethodDecl:
			if member.Body != nil {
				r.stat(member.Body)
			}
		case *ConstructorDecl:
			if member.CInvocation != nil {
				r.exprs(member.CInvocation.Args)
			}
			r.stats(member.Body)
		case *StaticInitDecl:
			r.stat(member.Body)
		}
	}
}

type fieldRewriter struct {
	cd *ClassDecl
}

func (r *fieldRewriter) fieldRef(ne *NameExpr, fd *FieldDecl) *FieldRef {
	var target Expression
	if fd.Modifiers.IsStatic() {
		target = &NameExpr{exprBase: exprBase{pos: ne.pos}, Name: r.cd.Name, Decl: r.cd}
	} else {
		th := &This{exprBase: exprBase{pos: ne.pos}}
		th.setType(&ClassType{pos: ne.pos, Name: r.cd.Name, Decl: r.cd})
		target = th
	}
	return &FieldRef{exprBase: exprBase{pos: ne.pos}, Target: target, Name: ne.Name, Decl: fd, Rewritten: true}
}

func (r *fieldRewriter) exprs(exprs []Expression) {
	for i, e := range exprs {
		exprs[i] = r.expr(e)
	}
}

// expr returns the node that replaces e in its parent.
func (r *fieldRewriter) expr(e Expression) Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *NameExpr:
		if fd, ok := e.Decl.(*FieldDecl); ok {
			return r.fieldRef(e, fd)
		}
	case *FieldRef:
		e.Target = r.expr(e.Target)
	case *Invocation:
		e.Target = r.expr(e.Target)
		r.exprs(e.Args)
	case *New:
		r.exprs(e.Args)
	case *ArrayAccessExpr:
		e.Target = r.expr(e.Target)
		e.Index = r.expr(e.Index)
	case *NewArray:
		r.exprs(e.DimExprs)
		if e.Init != nil {
			r.exprs(e.Init.Elements)
		}
	case *ArrayLiteral:
		r.exprs(e.Elements)
	case *Assignment:
		e.Left = r.expr(e.Left)
		e.Right = r.expr(e.Right)
	case *BinaryExpr:
		e.Left = r.expr(e.Left)
		e.Right = r.expr(e.Right)
	case *UnaryPreExpr:
		e.Expr = r.expr(e.Expr)
	case *UnaryPostExpr:
		e.Expr = r.expr(e.Expr)
	case *CastExpr:
		e.Expr = r.expr(e.Expr)
	case *Ternary:
		e.Cond = r.expr(e.Cond)
		e.Then = r.expr(e.Then)
		e.Else = r.expr(e.Else)
	}
	return e
}

func (r *fieldRewriter) stats(stats []Statement) {
	for _, s := range stats {
		r.stat(s)
	}
}

func (r *fieldRewriter) stat(s Statement) {
	switch s := s.(type) {
	case *Block:
		r.stats(s.Stats)
	case *LocalDecl:
		s.Init = r.expr(s.Init)
	case *ExprStat:
		s.Expr = r.expr(s.Expr)
	case *IfStat:
		s.Cond = r.expr(s.Cond)
		r.stat(s.Then)
		r.stat(s.Else)
	case *WhileStat:
		s.Cond = r.expr(s.Cond)
		r.stat(s.Body)
	case *DoStat:
		r.stat(s.Body)
		s.Cond = r.expr(s.Cond)
	case *ForStat:
		r.stats(s.Init)
		s.Cond = r.expr(s.Cond)
		r.exprs(s.Incr)
		r.stat(s.Body)
	case *ReturnStat:
		s.Expr = r.expr(s.Expr)
	case *SwitchStat:
		s.Expr = r.expr(s.Expr)
		for _, group := range s.Groups {
			for _, label := range group.Labels {
				label.Expr = r.expr(label.Expr)
			}
			r.stats(group.Stats)
		}
	}
}
