package internal

// In this file, we defined the declaration and statement nodes of espresso programs. An external parser
// produces the tree, every pass of this package walks the same tree and commits its results into it.
// Expression nodes live in expression.go, type nodes in types.go.

// Node is implemented by every tree node. Line is the source line used in diagnostics, 0 means unknown.
type Node interface {
	Line() int
}

type pos struct {
	line int
}

func (p pos) Line() int {
	return p.line
}

func at(line int) pos {
	return pos{line: line}
}

type Compilation struct {
	FileName string
	Classes  []*ClassDecl
}

type Modifiers uint8

const (
	PublicModifier Modifiers = 1 << iota
	PrivateModifier
	StaticModifier
	FinalModifier
	AbstractModifier
)

func (m Modifiers) IsPublic() bool   { return m&PublicModifier != 0 }
func (m Modifiers) IsPrivate() bool  { return m&PrivateModifier != 0 }
func (m Modifiers) IsStatic() bool   { return m&StaticModifier != 0 }
func (m Modifiers) IsFinal() bool    { return m&FinalModifier != 0 }
func (m Modifiers) IsAbstract() bool { return m&AbstractModifier != 0 }

func (m *Modifiers) Set(flag Modifiers) {
	*m |= flag
}

// ClassDecl is a class or an interface declaration.
type ClassDecl struct {
	pos
	Modifiers   Modifiers
	Name        string
	SuperClass  *ClassType // nil only for the root class once declarations are collected.
	Interfaces  []*ClassType
	Body        []ClassBodyDecl
	IsInterface bool
	// Intersection is set for classes synthesized while typing ternary expressions.
	Intersection bool

	// Filled by the declaration collector.
	methodTable *SymbolTable // name -> *SymbolTable of signature -> decl
	fieldTable  *SymbolTable // name -> *FieldDecl

	// Filled by the name checker once the hierarchy is proven acyclic.
	AllMethods   []*MethodDecl
	Constructors []*ConstructorDecl
}

func (cd *ClassDecl) IsClass() bool {
	return !cd.IsInterface
}

func (cd *ClassDecl) superDecl() *ClassDecl {
	if cd.SuperClass == nil {
		return nil
	}
	return cd.SuperClass.Decl
}

// ClassBodyDecl is one of *MethodDecl, *ConstructorDecl, *FieldDecl or *StaticInitDecl.
type ClassBodyDecl interface {
	Node
	declName() string
	isStatic() bool
}

type ParamDecl struct {
	pos
	Type Type
	Name string
}

type MethodDecl struct {
	pos
	Modifiers  Modifiers
	ReturnType Type
	Name       string
	Params     []*ParamDecl
	// Body is nil for abstract and interface methods.
	Body            *Block
	InterfaceMember bool

	class *ClassDecl // We set the declaring class here.
}

func (md *MethodDecl) declName() string { return md.Name }
func (md *MethodDecl) isStatic() bool   { return md.Modifiers.IsStatic() }

func (md *MethodDecl) Class() *ClassDecl {
	return md.class
}

func (md *MethodDecl) ParamSignature() string {
	return paramSignature(md.Params)
}

// CInvocation is an explicit constructor invocation: this(...) or super(...).
type CInvocation struct {
	pos
	Super bool
	Args  []Expression

	// Filled by the type checker.
	TargetClass *ClassDecl
	Constructor *ConstructorDecl
}

type ConstructorDecl struct {
	pos
	Modifiers   Modifiers
	Name        string
	Params      []*ParamDecl
	CInvocation *CInvocation
	Body        []Statement

	class *ClassDecl
}

func (cd *ConstructorDecl) declName() string { return cd.Name }
func (cd *ConstructorDecl) isStatic() bool   { return false }

func (cd *ConstructorDecl) Class() *ClassDecl {
	return cd.class
}

func (cd *ConstructorDecl) ParamSignature() string {
	return paramSignature(cd.Params)
}

type FieldDecl struct {
	pos
	Modifiers       Modifiers
	Type            Type
	Name            string
	Init            Expression
	InterfaceMember bool

	class *ClassDecl
}

func (fd *FieldDecl) declName() string { return fd.Name }
func (fd *FieldDecl) isStatic() bool   { return fd.Modifiers.IsStatic() }

func (fd *FieldDecl) Class() *ClassDecl {
	return fd.class
}

type StaticInitDecl struct {
	pos
	Body *Block
}

func (si *StaticInitDecl) declName() string { return staticInitKey }
func (si *StaticInitDecl) isStatic() bool   { return true }

// Statement is implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

type Block struct {
	pos
	Stats []Statement
}

type LocalDecl struct {
	pos
	Type Type
	Name string
	Init Expression
}

type ExprStat struct {
	pos
	Expr Expression
}

type IfStat struct {
	pos
	Cond Expression
	Then Statement
	Else Statement
}

type WhileStat struct {
	pos
	Cond Expression
	Body Statement
}

type DoStat struct {
	pos
	Body Statement
	Cond Expression
}

type ForStat struct {
	pos
	Init []Statement
	Cond Expression // may be nil
	Incr []Expression
	Body Statement
}

type ReturnStat struct {
	pos
	Expr Expression // nil for a bare return.

	// Type is the return type of the enclosing method, set by the type checker.
	Type Type
}

type BreakStat struct {
	pos
}

type ContinueStat struct {
	pos
}

type SwitchLabel struct {
	pos
	Expr Expression // nil for default.
}

func (sl *SwitchLabel) IsDefault() bool {
	return sl.Expr == nil
}

type SwitchGroup struct {
	pos
	Labels []*SwitchLabel
	Stats  []Statement
}

type SwitchStat struct {
	pos
	Expr   Expression
	Groups []*SwitchGroup
}

func (*Block) statementNode()        {}
func (*LocalDecl) statementNode()    {}
func (*ExprStat) statementNode()     {}
func (*IfStat) statementNode()       {}
func (*WhileStat) statementNode()    {}
func (*DoStat) statementNode()       {}
func (*ForStat) statementNode()      {}
func (*ReturnStat) statementNode()   {}
func (*BreakStat) statementNode()    {}
func (*ContinueStat) statementNode() {}
func (*SwitchStat) statementNode()   {}

func paramSignature(params []*ParamDecl) string {
	s := ""
	for _, p := range params {
		s += p.Type.Signature()
	}
	return s
}
