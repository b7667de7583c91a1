package internal

import (
	"fmt"
)

// invocable is a *MethodDecl or a *ConstructorDecl.
type invocable interface {
	ClassBodyDecl
	params() []*ParamDecl
}

func (md *MethodDecl) params() []*ParamDecl       { return md.Params }
func (cod *ConstructorDecl) params() []*ParamDecl { return cod.Params }

func methodCandidates(methods []*MethodDecl) []invocable {
	candidates := make([]invocable, 0, len(methods))
	for _, md := range methods {
		candidates = append(candidates, md)
	}
	return candidates
}

func constructorCandidates(constructors []*ConstructorDecl) []invocable {
	candidates := make([]invocable, 0, len(constructors))
	for _, cod := range constructors {
		candidates = append(candidates, cod)
	}
	return candidates
}

// findMethod picks the most specific candidate called name that accepts arguments of the types actuals.
// It returns nil when nothing matches or when more than one candidate is left after a single
// elimination pass over all pairs.
func (ctx *Context) findMethod(candidates []invocable, name string, actuals []Type) invocable {
	cds := make([]invocable, 0, len(candidates))
	for _, cbd := range candidates {
		if cbd.declName() != name || len(cbd.params()) != len(actuals) {
			continue
		}
		compatible := true
		for i, pd := range cbd.params() {
			if !assignmentCompatible(pd.Type, actuals[i]) {
				compatible = false
				break
			}
		}
		if compatible {
			ctx.tracef(cbd, "%s(%s ) kept as candidate.", name, paramTypeNames(cbd.params()))
			cds = append(cds, cbd)
		}
	}
	switch len(cds) {
	case 0:
		return nil
	case 1:
		return cds[0]
	}
	left := len(cds)
	for i := range cds {
		x := cds[i]
		if x == nil {
			continue
		}
		cds[i] = nil
		for j, y := range cds {
			if y == nil || !moreSpecific(x, y) {
				continue
			}
			ctx.tracef(y, "%s(%s ) is less specialized than %s(%s ).", name, paramTypeNames(y.params()),
				name, paramTypeNames(x.params()))
			cds[j] = nil
			left--
		}
		cds[i] = x
	}
	if left != 1 {
		return nil
	}
	for _, cbd := range cds {
		if cbd != nil {
			return cbd
		}
	}
	return nil
}

// moreSpecific reports whether every parameter of y accepts the corresponding parameter of x.
func moreSpecific(x, y invocable) bool {
	xParams, yParams := x.params(), y.params()
	for k := range xParams {
		if !assignmentCompatible(yParams[k].Type, xParams[k].Type) {
			return false
		}
	}
	return true
}

// listCandidates renders the candidates called name, one per line.
func listCandidates(cd *ClassDecl, candidates []invocable, name string) []string {
	var lines []string
	for _, cbd := range candidates {
		if cbd.declName() != name {
			continue
		}
		shown := name
		if _, ok := cbd.(*ConstructorDecl); ok {
			shown = cd.Name
		}
		lines = append(lines, fmt.Sprintf("  %s(%s )", shown, paramTypeNames(cbd.params())))
	}
	return lines
}
