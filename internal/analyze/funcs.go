package analyze

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/packages"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
)

// processFuncs attaches every //element:factory function of pkg to the
// model it produces.
//
// A function whose first result is a model (pointer or not) is that
// model's constructor. Any other function is a static factory of the model
// named by the directive argument, or else of the model found as the
// second type argument of its result (element.Factory[Data, *Model]).
// Methods are attached to their receiver as instance members.
func (a *Analyzer) processFuncs(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok {
				continue
			}

			fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func)
			if !ok {
				continue
			}

			where := pkg.PkgPath + "." + fn.Name()

			tags := a.directives(fd.Doc, where)

			factory, ok := tags.Lookup("factory")
			if !ok {
				continue
			}

			member, err := a.member(fn, tags)
			if err != nil {
				a.warn(diagnostic.CodeInvalidDirective, err.Error(), where)
				continue
			}

			owner := a.owner(pkg, fn, factory, member)
			if owner == nil {
				a.warn(diagnostic.CodeInvalidDirective,
					fmt.Sprintf("cannot tell which model factory %s produces", fn.Name()), where)

				continue
			}

			owner.Members = append(owner.Members, member)
		}
	}
}

// member converts a function signature, applying the child and data
// directives to the parameters they name.
func (a *Analyzer) member(fn *types.Func, tags universe.Tags) (*universe.Member, error) {
	sig := fn.Type().(*types.Signature)

	m := &universe.Member{
		Name: fn.Name(),
		Kind: universe.MemberMethod,
		Tags: tags,
	}

	byName := make(map[string]*universe.Param)

	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		p := &universe.Param{Name: v.Name(), Type: a.convert(v.Type())}
		m.Params = append(m.Params, p)

		if v.Name() != "" && v.Name() != "_" {
			byName[v.Name()] = p
		}
	}

	if sig.Results().Len() > 0 {
		m.Result = a.convert(sig.Results().At(0).Type())
	}

	for _, t := range tags {
		if t.Name != "child" && t.Name != "data" {
			continue
		}

		if len(t.Args) == 0 {
			return nil, fmt.Errorf("%s directive needs a parameter name", t.Name)
		}

		p, ok := byName[t.Args[0]]
		if !ok {
			return nil, fmt.Errorf("%s directive names unknown parameter %q", t.Name, t.Args[0])
		}

		switch t.Name {
		case "child":
			key := ""
			if len(t.Args) > 1 {
				key = t.Args[1]
			}

			p.Tags = append(p.Tags, universe.Tag{Name: "child", Value: key})
		case "data":
			p.Tags = append(p.Tags, universe.Tag{Name: "data"})
		}
	}

	return m, nil
}

// owner finds the declaration a factory function belongs to and sets the
// member's kind accordingly.
func (a *Analyzer) owner(pkg *packages.Package, fn *types.Func, factory universe.Tag, m *universe.Member) *universe.Declaration {
	sig := fn.Type().(*types.Signature)

	if recv := sig.Recv(); recv != nil {
		if d, ok := a.convert(recv.Type()).(*universe.Declared); ok {
			return d.Decl
		}

		return nil
	}

	var explicit *universe.Declaration

	if factory.Value != "" {
		obj, ok := pkg.Types.Scope().Lookup(factory.Value).(*types.TypeName)
		if !ok {
			return nil
		}

		explicit = a.decls[obj]
	}

	result, _ := m.Result.(*universe.Declared)

	if result != nil && result.Decl != nil &&
		(result.Decl == explicit || (explicit == nil && result.Decl.Tags.Has("model"))) {
		m.Kind = universe.MemberConstructor
		return result.Decl
	}

	m.Static = true

	if explicit != nil {
		return explicit
	}

	if result != nil && len(result.Args) == 2 {
		if d, ok := result.Args[1].(*universe.Declared); ok {
			return d.Decl
		}
	}

	return nil
}
