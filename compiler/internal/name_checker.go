package internal

import (
	"fmt"
)

// nameChecker binds every name of the tree to its declaration and validates the shape of the class hierarchy.
type nameChecker struct {
	ctx          *Context
	currentClass *ClassDecl
	// scope is the innermost scope, the outermost one is the field table of the current class.
	scope *SymbolTable
}

func checkNames(ctx *Context) error {
	nc := &nameChecker{ctx: ctx}
	// Headers of all classes are bound and the hierarchy is proven acyclic before any member is
	// resolved, hierarchy searches of member names depend on it.
	for _, cd := range ctx.classes {
		err := nc.bindClassHeader(cd)
		if err != nil {
			return err
		}
	}
	for _, cd := range ctx.classes {
		err := nc.checkClassHeader(cd)
		if err != nil {
			return err
		}
		_, err = nc.classHierarchyMethods(cd)
		if err != nil {
			return err
		}
	}
	for _, cd := range ctx.classes {
		err := nc.visitClass(cd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (nc *nameChecker) bindClassHeader(cd *ClassDecl) error {
	if cd.SuperClass != nil {
		err := nc.resolveType(cd.SuperClass)
		if err != nil {
			return err
		}
	}
	for _, ct := range cd.Interfaces {
		err := nc.resolveType(ct)
		if err != nil {
			return err
		}
	}
	return nil
}

func (nc *nameChecker) checkClassHeader(cd *ClassDecl) error {
	ctx := nc.ctx
	if cd.SuperClass != nil {
		super := cd.superDecl()
		if cd.IsInterface && super.Name != objectClassName {
			if super.IsClass() {
				return ctx.makeSemanticError(cd, "Interface '%s' cannot extend class '%s'.", cd.Name, super.Name)
			}
			return ctx.makeSemanticError(cd, "Interface '%s' cannot have superclass '%s'.", cd.Name, super.Name)
		}
		if cd.IsClass() && super.IsInterface {
			return ctx.makeSemanticError(cd, "Class '%s' cannot inherit from interface '%s'.", cd.Name, super.Name)
		}
		if cd.Name == cd.SuperClass.Name {
			return ctx.makeSemanticError(cd, "Class '%s' cannot extend itself.", cd.Name)
		}
		if cod := super.defaultConstructor(); cod != nil && cod.Modifiers.IsPrivate() {
			return ctx.makeSemanticError(cd, "Class '%s' cannot be extended because it has a private default constructor.",
				super.Name)
		}
	}
	for _, ct := range cd.Interfaces {
		if ct.Decl.IsClass() && cd.IsInterface {
			return ctx.makeSemanticError(cd, "Interface '%s' cannot extend class '%s'.", cd.Name, ct.Name)
		}
		if ct.Decl.IsClass() {
			return ctx.makeSemanticError(cd, "Class '%s' cannot implement class '%s'.", cd.Name, ct.Name)
		}
	}
	return nil
}

func (nc *nameChecker) resolveType(t Type) error {
	switch t := t.(type) {
	case *ClassType:
		nc.ctx.tracef(t, "Looking up class/interface '%s' in class table.", t.Name)
		cd := nc.ctx.Class(t.Name)
		if cd == nil {
			return nc.ctx.makeSemanticError(t, "Class '%s' not found.", t.Name)
		}
		t.Decl = cd
	case *ArrayType:
		return nc.resolveType(t.Base)
	}
	return nil
}

// getMethod returns the overload set called name, searching cd, then its superclass unless cd is an interface,
// then its interfaces in declaration order.
func getMethod(name string, cd *ClassDecl) *SymbolTable {
	if cd == nil {
		return nil
	}
	if cd.methodTable != nil {
		if st, ok := cd.methodTable.GetLocal(name).(*SymbolTable); ok {
			return st
		}
	}
	if cd.IsClass() {
		if st := getMethod(name, cd.superDecl()); st != nil {
			return st
		}
	}
	for _, ct := range cd.Interfaces {
		if st := getMethod(name, ct.Decl); st != nil {
			return st
		}
	}
	return nil
}

// getField searches the hierarchy of cd the same way getMethod does.
func getField(name string, cd *ClassDecl) *FieldDecl {
	if cd == nil {
		return nil
	}
	if cd.fieldTable != nil {
		if fd, ok := cd.fieldTable.GetLocal(name).(*FieldDecl); ok {
			return fd
		}
	}
	if cd.IsClass() {
		if fd := getField(name, cd.superDecl()); fd != nil {
			return fd
		}
	}
	for _, ct := range cd.Interfaces {
		if fd := getField(name, ct.Decl); fd != nil {
			return fd
		}
	}
	return nil
}

// classHierarchyMethods collects the methods of cd, its superclasses and its interfaces, own methods first.
func (nc *nameChecker) classHierarchyMethods(cd *ClassDecl) ([]*MethodDecl, error) {
	var methods []*MethodDecl
	if cyclic := collectHierarchyMethods(cd, &methods, map[string]bool{}); cyclic != nil {
		return nil, nc.ctx.makeSemanticError(cyclic, "Cyclic inheritance involving %s", cyclic.Name)
	}
	return methods, nil
}

// collectHierarchyMethods returns the class that closes a cycle, seen holds the classes of the current path.
func collectHierarchyMethods(cd *ClassDecl, methods *[]*MethodDecl, seen map[string]bool) *ClassDecl {
	if cd == nil || cd.Name == objectClassName {
		return nil
	}
	if seen[cd.Name] {
		return cd
	}
	seen[cd.Name] = true
	for _, member := range cd.Body {
		if md, ok := member.(*MethodDecl); ok {
			*methods = append(*methods, md)
		}
	}
	if cyclic := collectHierarchyMethods(cd.superDecl(), methods, seen); cyclic != nil {
		return cyclic
	}
	for _, ct := range cd.Interfaces {
		if cyclic := collectHierarchyMethods(ct.Decl, methods, seen); cyclic != nil {
			return cyclic
		}
	}
	delete(seen, cd.Name)
	return nil
}

func methodHeader(md *MethodDecl) string {
	return fmt.Sprintf("%s %s(%s )", md.ReturnType.TypeName(), md.Name, paramTypeNames(md.Params))
}

func (nc *nameChecker) checkReturnTypes(methods []*MethodDecl) error {
	seen := map[string]*MethodDecl{}
	for _, md := range methods {
		key := md.Name + "/(" + md.ParamSignature() + ")"
		if md2, ok := seen[key]; ok && md2.ReturnType.Signature() != md.ReturnType.Signature() {
			return nc.ctx.makeSemanticErrorWithNotes(md, []string{
				fmt.Sprintf("%s:%d: %s", nc.ctx.FileName, md.Line(), methodHeader(md)),
				fmt.Sprintf("%s:%d: %s", nc.ctx.FileName, md2.Line(), methodHeader(md2)),
			}, "Method '%s' has been declared with two different return types:", md.Name)
		}
		seen[key] = md
	}
	return nil
}

func (nc *nameChecker) checkUniqueFields(fields map[string]bool, cd *ClassDecl, seen map[string]bool) error {
	if cd == nil || seen[cd.Name] {
		return nil
	}
	seen[cd.Name] = true
	for _, member := range cd.Body {
		fd, ok := member.(*FieldDecl)
		if !ok {
			continue
		}
		if fields[fd.Name] {
			return nc.ctx.makeSemanticError(fd, "Field '%s' already defined.", fd.Name)
		}
		fields[fd.Name] = true
	}
	err := nc.checkUniqueFields(fields, cd.superDecl(), seen)
	if err != nil {
		return err
	}
	for _, ct := range cd.Interfaces {
		err = nc.checkUniqueFields(fields, ct.Decl, seen)
		if err != nil {
			return err
		}
	}
	return nil
}

func (nc *nameChecker) visitClass(cd *ClassDecl) error {
	ctx := nc.ctx
	ctx.tracef(cd, "Visiting class '%s'.", cd.Name)
	nc.currentClass = cd
	nc.scope = cd.fieldTable
	for _, member := range cd.Body {
		var err error
		switch member := member.(type) {
		case *FieldDecl:
			err = nc.visitFieldDecl(member)
		case *MethodDecl:
			err = nc.visitMethodDecl(member)
		case *ConstructorDecl:
			err = nc.visitConstructorDecl(member)
		case *StaticInitDecl:
			err = nc.visitBlock(member.Body)
		}
		if err != nil {
			return err
		}
	}
	nc.scope = nil

	methods, err := nc.classHierarchyMethods(cd)
	if err != nil {
		return err
	}
	err = nc.checkReturnTypes(methods)
	if err != nil {
		return err
	}
	err = nc.checkUniqueFields(map[string]bool{}, cd, map[string]bool{})
	if err != nil {
		return err
	}
	cd.AllMethods = methods
	cd.Constructors = nil
	for _, member := range cd.Body {
		if cod, ok := member.(*ConstructorDecl); ok {
			cd.Constructors = append(cd.Constructors, cod)
		}
	}
	ctx.tracef(cd, "Performing tree Rewrite on '%s'.", cd.Name)
	rewriteFieldNames(cd)
	return nil
}

func (nc *nameChecker) visitFieldDecl(fd *FieldDecl) error {
	nc.ctx.tracef(fd, "Visiting field '%s'.", fd.Name)
	err := nc.resolveType(fd.Type)
	if err != nil {
		return err
	}
	if fd.Init == nil {
		return nil
	}
	return nc.visitExpr(fd.Init)
}

func (nc *nameChecker) declareParams(params []*ParamDecl) error {
	for _, pd := range params {
		err := nc.resolveType(pd.Type)
		if err != nil {
			return err
		}
		nc.ctx.tracef(pd, "Declaring parameter '%s'.", pd.Name)
		err = nc.scope.Put(pd.Name, pd)
		if err != nil {
			return nc.ctx.redefinitionError(pd, err)
		}
	}
	return nil
}

func (nc *nameChecker) visitMethodDecl(md *MethodDecl) error {
	nc.ctx.tracef(md, "Visiting method '%s'.", md.Name)
	err := nc.resolveType(md.ReturnType)
	if err != nil {
		return err
	}
	nc.scope = nc.scope.NewScope()
	defer func() { nc.scope = nc.scope.CloseScope() }()
	err = nc.declareParams(md.Params)
	if err != nil {
		return err
	}
	if md.Body == nil {
		return nil
	}
	return nc.visitBlock(md.Body)
}

func (nc *nameChecker) visitConstructorDecl(cod *ConstructorDecl) error {
	cd := nc.currentClass
	nc.ctx.tracef(cod, "Visiting constructor '%s'.", cod.Name)
	nc.scope = nc.scope.NewScope()
	err := nc.declareParams(cod.Params)
	if err != nil {
		nc.scope = nc.scope.CloseScope()
		return err
	}
	if cod.CInvocation == nil && cd.SuperClass != nil && cd.superDecl().IsClass() {
		nc.ctx.tracef(cod, "Inserting default super() call in constructor of '%s'.", cd.Name)
		cod.CInvocation = &CInvocation{pos: cod.pos, Super: true}
	}
	nc.scope = nc.scope.NewScope()
	err = nc.visitConstructorBody(cod)
	nc.scope = nc.scope.CloseScope().CloseScope()
	return err
}

func (nc *nameChecker) visitConstructorBody(cod *ConstructorDecl) error {
	if cod.CInvocation != nil {
		err := nc.visitExprs(cod.CInvocation.Args)
		if err != nil {
			return err
		}
	}
	return nc.visitStats(cod.Body)
}

func (nc *nameChecker) visitBlock(b *Block) error {
	nc.scope = nc.scope.NewScope()
	defer func() { nc.scope = nc.scope.CloseScope() }()
	return nc.visitStats(b.Stats)
}

func (nc *nameChecker) visitStats(stats []Statement) error {
	for _, s := range stats {
		err := nc.visitStat(s)
		if err != nil {
			return err
		}
	}
	return nil
}

func (nc *nameChecker) visitStat(s Statement) error {
	if s == nil {
		return nil
	}
	switch s := s.(type) {
	case *Block:
		return nc.visitBlock(s)
	case *LocalDecl:
		err := nc.resolveType(s.Type)
		if err != nil {
			return err
		}
		if s.Init != nil {
			err = nc.visitExpr(s.Init)
			if err != nil {
				return err
			}
		}
		nc.ctx.tracef(s, "Declaring local symbol '%s'.", s.Name)
		err = nc.scope.Put(s.Name, s)
		if err != nil {
			return nc.ctx.redefinitionError(s, err)
		}
	case *ExprStat:
		return nc.visitExpr(s.Expr)
	case *IfStat:
		err := nc.visitExpr(s.Cond)
		if err != nil {
			return err
		}
		err = nc.visitStat(s.Then)
		if err != nil {
			return err
		}
		return nc.visitStat(s.Else)
	case *WhileStat:
		err := nc.visitExpr(s.Cond)
		if err != nil {
			return err
		}
		return nc.visitStat(s.Body)
	case *DoStat:
		err := nc.visitStat(s.Body)
		if err != nil {
			return err
		}
		return nc.visitExpr(s.Cond)
	case *ForStat:
		nc.scope = nc.scope.NewScope()
		defer func() { nc.scope = nc.scope.CloseScope() }()
		err := nc.visitStats(s.Init)
		if err != nil {
			return err
		}
		if s.Cond != nil {
			err = nc.visitExpr(s.Cond)
			if err != nil {
				return err
			}
		}
		err = nc.visitExprs(s.Incr)
		if err != nil {
			return err
		}
		return nc.visitStat(s.Body)
	case *ReturnStat:
		if s.Expr != nil {
			return nc.visitExpr(s.Expr)
		}
	case *SwitchStat:
		nc.scope = nc.scope.NewScope()
		defer func() { nc.scope = nc.scope.CloseScope() }()
		err := nc.visitExpr(s.Expr)
		if err != nil {
			return err
		}
		for _, group := range s.Groups {
			for _, label := range group.Labels {
				if label.Expr == nil {
					continue
				}
				err = nc.visitExpr(label.Expr)
				if err != nil {
					return err
				}
			}
			err = nc.visitStats(group.Stats)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (nc *nameChecker) visitExprs(exprs []Expression) error {
	for _, e := range exprs {
		err := nc.visitExpr(e)
		if err != nil {
			return err
		}
	}
	return nil
}

func (nc *nameChecker) visitExpr(e Expression) error {
	ctx, cd := nc.ctx, nc.currentClass
	switch e := e.(type) {
	case *NameExpr:
		return nc.visitNameExpr(e)
	case *FieldRef:
		if _, ok := e.Target.(*This); ok && getField(e.Name, cd) == nil {
			return ctx.makeSemanticError(e, "Field '%s' not found.", e.Name)
		}
		return nc.visitExpr(e.Target)
	case *Invocation:
		switch e.Target.(type) {
		case nil, *This:
			if getMethod(e.Name, cd) == nil {
				return ctx.makeSemanticError(e, "Method '%s' not found.", e.Name)
			}
		case *Super:
			if cd.SuperClass == nil {
				return ctx.makeSemanticError(e, "No super class.")
			}
			if getMethod(e.Name, cd.superDecl()) == nil {
				return ctx.makeSemanticError(e, "Method '%s' not found.", e.Name)
			}
		}
		if e.Target != nil {
			err := nc.visitExpr(e.Target)
			if err != nil {
				return err
			}
		}
		return nc.visitExprs(e.Args)
	case *New:
		err := nc.resolveType(e.Class)
		if err != nil {
			return err
		}
		return nc.visitExprs(e.Args)
	case *ArrayAccessExpr:
		err := nc.visitExpr(e.Target)
		if err != nil {
			return err
		}
		return nc.visitExpr(e.Index)
	case *NewArray:
		err := nc.resolveType(e.Base)
		if err != nil {
			return err
		}
		err = nc.visitExprs(e.DimExprs)
		if err != nil {
			return err
		}
		if e.Init != nil {
			return nc.visitExpr(e.Init)
		}
	case *ArrayLiteral:
		return nc.visitExprs(e.Elements)
	case *Assignment:
		err := nc.visitExpr(e.Left)
		if err != nil {
			return err
		}
		return nc.visitExpr(e.Right)
	case *BinaryExpr:
		err := nc.visitExpr(e.Left)
		if err != nil {
			return err
		}
		return nc.visitExpr(e.Right)
	case *UnaryPreExpr:
		return nc.visitExpr(e.Expr)
	case *UnaryPostExpr:
		return nc.visitExpr(e.Expr)
	case *CastExpr:
		err := nc.resolveType(e.CastType)
		if err != nil {
			return err
		}
		return nc.visitExpr(e.Expr)
	case *Ternary:
		err := nc.visitExpr(e.Cond)
		if err != nil {
			return err
		}
		err = nc.visitExpr(e.Then)
		if err != nil {
			return err
		}
		return nc.visitExpr(e.Else)
	case *This:
		e.setType(NewClassType(cd))
	}
	return nil
}

// visitNameExpr looks a name up in the scope chain, then in the field hierarchy and finally in the class table.
func (nc *nameChecker) visitNameExpr(ne *NameExpr) error {
	ctx := nc.ctx
	ctx.tracef(ne, "Looking up symbol '%s'.", ne.Name)
	var decl Node
	if n, ok := nc.scope.Get(ne.Name).(Node); ok {
		decl = n
	} else if fd := getField(ne.Name, nc.currentClass); fd != nil {
		decl = fd
	} else if cd := ctx.Class(ne.Name); cd != nil {
		decl = cd
	} else {
		return ctx.makeSemanticError(ne, "Symbol '%s' not declared.", ne.Name)
	}
	ne.Decl = decl
	return nil
}
