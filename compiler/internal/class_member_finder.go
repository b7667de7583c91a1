package internal

const (
	objectClassName = "Object"
	constructorKey  = "<init>"
	staticInitKey   = "<clinit>"
)

// newObjectClass builds the root of every class hierarchy.
func newObjectClass() *ClassDecl {
	return &ClassDecl{
		Modifiers: PublicModifier,
		Name:      objectClassName,
		Body: []ClassBodyDecl{
			&ConstructorDecl{Modifiers: PublicModifier, Name: objectClassName},
		},
	}
}

// classMemberFinder fills the class table and the method and field tables of every class.
type classMemberFinder struct {
	ctx          *Context
	currentClass *ClassDecl
}

func collectDeclarations(ctx *Context, comp *Compilation) error {
	finder := &classMemberFinder{ctx: ctx}
	classes := append([]*ClassDecl{newObjectClass()}, comp.Classes...)
	for _, cd := range classes {
		ctx.tracef(cd, "Inserting class '%s' into the class table.", cd.Name)
		err := ctx.classTable.Put(cd.Name, cd)
		if err != nil {
			return ctx.redefinitionError(cd, err)
		}
		ctx.classes = append(ctx.classes, cd)
	}
	for _, cd := range ctx.classes {
		err := finder.visitClass(cd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (finder *classMemberFinder) visitClass(cd *ClassDecl) error {
	ctx := finder.ctx
	ctx.tracef(cd, "Visiting class '%s'.", cd.Name)
	finder.currentClass = cd
	cd.methodTable = NewSymbolTable()
	cd.fieldTable = NewSymbolTable()
	if cd.SuperClass == nil && cd.Name != objectClassName {
		cd.SuperClass = &ClassType{pos: cd.pos, Name: objectClassName}
	}
	hasConstructor := false
	for _, member := range cd.Body {
		var err error
		switch member := member.(type) {
		case *MethodDecl:
			err = finder.addMethod(member)
		case *ConstructorDecl:
			hasConstructor = true
			err = finder.addConstructor(member)
		case *FieldDecl:
			err = finder.addField(member)
		case *StaticInitDecl:
			err = finder.addStaticInit(member)
		}
		if err != nil {
			return err
		}
	}
	if hasConstructor || cd.IsInterface {
		return nil
	}
	ctx.tracef(cd, "Generating default constructor for class '%s'.", cd.Name)
	constructor := &ConstructorDecl{pos: cd.pos, Modifiers: PublicModifier, Name: cd.Name}
	cd.Body = append(cd.Body, constructor)
	return finder.addConstructor(constructor)
}

func (finder *classMemberFinder) addMethod(md *MethodDecl) error {
	cd, ctx := finder.currentClass, finder.ctx
	md.class = cd
	md.InterfaceMember = cd.IsInterface
	ctx.tracef(md, "Inserting method '%s' with signature '%s' into method table for class '%s'.",
		md.Name, md.ParamSignature(), cd.Name)
	overloads, ok := cd.methodTable.GetLocal(md.Name).(*SymbolTable)
	if !ok {
		overloads = NewSymbolTable()
		// Method names never collide with the reserved constructor and initializer keys.
		_ = cd.methodTable.Put(md.Name, overloads)
	}
	if overloads.GetLocal(md.ParamSignature()) != nil {
		return ctx.makeSemanticError(md, "Method %s(%s ) already defined.", md.Name, paramTypeNames(md.Params))
	}
	return overloads.Put(md.ParamSignature(), md)
}

func (finder *classMemberFinder) addConstructor(cod *ConstructorDecl) error {
	cd, ctx := finder.currentClass, finder.ctx
	cod.class = cd
	if cod.Name != cd.Name {
		return ctx.makeSemanticError(cod, "Constructor must be named the same as the class.")
	}
	ctx.tracef(cod, "Inserting constructor '%s' with signature '%s' into method table for class '%s'.",
		cod.Name, cod.ParamSignature(), cd.Name)
	constructors, ok := cd.methodTable.GetLocal(constructorKey).(*SymbolTable)
	if !ok {
		constructors = NewSymbolTable()
		_ = cd.methodTable.Put(constructorKey, constructors)
	}
	if constructors.GetLocal(cod.ParamSignature()) != nil {
		return ctx.makeSemanticError(cod, "Constructor %s(%s ) already defined.", cod.Name, paramTypeNames(cod.Params))
	}
	return constructors.Put(cod.ParamSignature(), cod)
}

func (finder *classMemberFinder) addField(fd *FieldDecl) error {
	cd, ctx := finder.currentClass, finder.ctx
	fd.class = cd
	fd.InterfaceMember = cd.IsInterface
	ctx.tracef(fd, "Inserting field '%s' into field table of class '%s'.", fd.Name, cd.Name)
	err := cd.fieldTable.Put(fd.Name, fd)
	if err != nil {
		return ctx.redefinitionError(fd, err)
	}
	return nil
}

func (finder *classMemberFinder) addStaticInit(si *StaticInitDecl) error {
	cd, ctx := finder.currentClass, finder.ctx
	ctx.tracef(si, "Inserting static initializer into method table of class '%s'.", cd.Name)
	if cd.methodTable.GetLocal(staticInitKey) != nil {
		return ctx.makeSemanticError(si, "Only one static initializer allowed in class '%s'.", cd.Name)
	}
	return cd.methodTable.Put(staticInitKey, si)
}

// constructorTable returns the overloads of the constructors of cd keyed by parameter signature.
func (cd *ClassDecl) constructorTable() *SymbolTable {
	if cd.methodTable == nil {
		return nil
	}
	st, _ := cd.methodTable.GetLocal(constructorKey).(*SymbolTable)
	return st
}

// defaultConstructor returns the no-argument constructor of cd, or nil.
func (cd *ClassDecl) defaultConstructor() *ConstructorDecl {
	st := cd.constructorTable()
	if st == nil {
		return nil
	}
	cod, _ := st.GetLocal("").(*ConstructorDecl)
	return cod
}
