package internal

import (
	"fmt"
)

// classHierarchyList collects cd and all its ancestors depth first, superclass before interfaces.
func classHierarchyList(classes []*ClassDecl, seen map[string]bool, cd *ClassDecl) []*ClassDecl {
	if cd == nil || seen[cd.Name] {
		return classes
	}
	classes = append(classes, cd)
	seen[cd.Name] = true
	classes = classHierarchyList(classes, seen, cd.superDecl())
	for _, ct := range cd.Interfaces {
		classes = classHierarchyList(classes, seen, ct.Decl)
	}
	return classes
}

// intersectionType synthesizes the type of a ternary whose branches have the class types a and b. The
// synthesized class extends the most specific common superclass and implements the most specific common
// interfaces of both.
func (ctx *Context) intersectionType(a, b *ClassType) *ClassType {
	aHierarchy := classHierarchyList(nil, map[string]bool{}, a.Decl)
	bSeen := map[string]bool{}
	classHierarchyList(nil, bSeen, b.Decl)

	var common []*ClassDecl
	for _, cd := range aHierarchy {
		if bSeen[cd.Name] {
			common = append(common, cd)
		}
	}
	// Drop every candidate that is an ancestor of another one.
	for i := range common {
		if common[i] == nil {
			continue
		}
		for j := i + 1; j < len(common); j++ {
			if common[i] == nil {
				break
			}
			if common[j] == nil {
				continue
			}
			if isSuperDecl(common[i], common[j]) {
				common[i] = nil
			} else if isSuperDecl(common[j], common[i]) {
				common[j] = nil
			}
		}
	}

	cd := &ClassDecl{
		pos:          a.pos,
		Modifiers:    PublicModifier,
		Name:         fmt.Sprintf("INT#%d", ctx.intersectionCount),
		Intersection: true,
	}
	ctx.intersectionCount++
	for _, s := range common {
		if s == nil {
			continue
		}
		ct := &ClassType{pos: a.pos, Name: s.Name, Decl: s}
		if s.IsInterface {
			cd.Interfaces = append(cd.Interfaces, ct)
		} else {
			cd.SuperClass = ct
		}
	}
	if cd.SuperClass == nil {
		cd.SuperClass = &ClassType{pos: a.pos, Name: objectClassName, Decl: ctx.Class(objectClassName)}
	}
	collectHierarchyMethods(cd, &cd.AllMethods, map[string]bool{})
	return NewClassType(cd)
}
