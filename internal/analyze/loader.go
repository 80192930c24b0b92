package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory packages are loaded from.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithContext sets the context used while loading packages.
func WithContext(ctx context.Context) Option {
	return func(a *Analyzer) { a.ctx = ctx }
}

// WithDiagnostics reports misplaced or malformed directives into d.
func WithDiagnostics(d *diagnostic.Diagnostics) Option {
	return func(a *Analyzer) { a.diags = d }
}

// Analyzer loads Go packages and builds a type universe from them.
type Analyzer struct {
	dir   string
	ctx   context.Context
	diags *diagnostic.Diagnostics

	graph    *universe.Graph
	builtins universe.Builtins
	decls    map[*types.TypeName]*universe.Declaration
	tparams  map[*types.TypeParam]*universe.TypeVar
	docs     map[token.Pos]*ast.Field // struct field docs of loaded packages
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{ctx: context.Background()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// typeSpec is a package-level type declaration of a loaded package.
type typeSpec struct {
	pkg  *packages.Package
	obj  *types.TypeName
	doc  *ast.CommentGroup
	decl *universe.Declaration
}

// LoadPackages loads the specified packages and builds the universe.
// Patterns are standard Go package patterns (e.g., "./examples/...").
// Any failure is a type universe failure.
func (a *Analyzer) LoadPackages(patterns ...string) (*universe.Graph, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no package patterns", diagnostic.ErrTypeUniverseFailure)
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: a.ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load packages: %w", diagnostic.ErrTypeUniverseFailure, err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: package errors: %w", diagnostic.ErrTypeUniverseFailure, errors.Join(errs...))
	}

	if err := a.reset(); err != nil {
		return nil, err
	}

	var specs []*typeSpec

	for _, pkg := range pkgs {
		specs = append(specs, a.declarePackage(pkg)...)
	}

	for _, s := range specs {
		a.fill(s)
	}

	for _, pkg := range pkgs {
		a.processFuncs(pkg)
	}

	for _, s := range specs {
		a.nest(s)
	}

	return a.graph, nil
}

func (a *Analyzer) reset() error {
	a.graph = universe.NewGraph()
	a.decls = make(map[*types.TypeName]*universe.Declaration)
	a.tparams = make(map[*types.TypeParam]*universe.TypeVar)
	a.docs = make(map[token.Pos]*ast.Field)

	b, err := universe.InstallBuiltins(a.graph)
	if err != nil {
		return fmt.Errorf("%w: %w", diagnostic.ErrTypeUniverseFailure, err)
	}

	a.builtins = b

	return nil
}

// declarePackage registers every package-level named type of pkg, in
// source order, with its directive tags.
func (a *Analyzer) declarePackage(pkg *packages.Package) []*typeSpec {
	scope := a.graph.Scope(pkg.PkgPath, pkg.Name)

	var specs []*typeSpec

	for _, file := range pkg.Syntax {
		if tags := a.directives(file.Doc, pkg.PkgPath); len(tags) > 0 {
			scope.Tags = append(scope.Tags, tags...)
		}

		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				a.indexFieldDocs(ts.Type)

				decl, err := a.graph.Declare(scope, obj.Name(), declKind(obj.Type()))
				if err != nil {
					a.warn(diagnostic.CodeInvalidDirective, err.Error(), pkg.PkgPath+"."+obj.Name())
					continue
				}

				decl.Tags = a.directives(doc, decl.String())
				if !decl.Tags.Has("description") {
					if text := docText(doc); text != "" {
						decl.Tags = append(decl.Tags, universe.Tag{Name: "description", Value: text})
					}
				}

				a.decls[obj] = decl
				specs = append(specs, &typeSpec{pkg: pkg, obj: obj, doc: doc, decl: decl})
			}
		}
	}

	return specs
}

// indexFieldDocs records the AST of every struct field under expr so
// field docs can be found from go/types positions.
func (a *Analyzer) indexFieldDocs(expr ast.Expr) {
	ast.Inspect(expr, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok || st.Fields == nil {
			return true
		}

		for _, f := range st.Fields.List {
			if len(f.Names) == 0 {
				if id := embeddedIdent(f.Type); id != nil {
					a.docs[id.Pos()] = f
				}

				continue
			}

			for _, name := range f.Names {
				a.docs[name.Pos()] = f
			}
		}

		return true
	})
}

// embeddedIdent returns the identifier an embedded field is named after.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	default:
		return nil
	}
}

// fill completes a declaration: type parameters, supertypes and fields.
func (a *Analyzer) fill(s *typeSpec) {
	named, ok := s.obj.Type().(*types.Named)
	if !ok {
		return
	}

	s.decl.TypeParams = a.typeParams(named.TypeParams())
	s.decl.Supertypes = a.supertypes(named.Underlying())

	if st, ok := named.Underlying().(*types.Struct); ok {
		s.decl.Fields = a.structFields(st, s.decl.String(), map[*types.Struct]bool{})
	}
}

// nest places a type tagged `data Owner` inside Owner.
func (a *Analyzer) nest(s *typeSpec) {
	tag, ok := s.decl.Tags.Lookup("data")
	if !ok || len(tag.Args) == 0 {
		return
	}

	ownerName := tag.Args[0]

	obj, ok := s.pkg.Types.Scope().Lookup(ownerName).(*types.TypeName)
	owner := a.decls[obj]

	if !ok || owner == nil {
		a.warn(diagnostic.CodeInvalidDirective,
			fmt.Sprintf("data owner %s is not a type of package %s", ownerName, s.pkg.PkgPath), s.decl.String())

		return
	}

	if err := a.graph.Nest(owner, s.decl); err != nil {
		a.warn(diagnostic.CodeInvalidDirective, err.Error(), s.decl.String())
	}
}

// directives parses a comment group, reporting malformed lines.
func (a *Analyzer) directives(cg *ast.CommentGroup, where string) universe.Tags {
	tags, err := parseDirectives(cg)
	if err != nil {
		a.warn(diagnostic.CodeInvalidDirective, err.Error(), where)
		return nil
	}

	return tags
}

func (a *Analyzer) warn(code, msg, where string) {
	if a.diags != nil {
		a.diags.AddWarning(code, msg, where, "")
	}
}

func declKind(t types.Type) universe.DeclKind {
	switch t.Underlying().(type) {
	case *types.Struct:
		return universe.DeclRecord
	case *types.Interface:
		return universe.DeclInterface
	default:
		return universe.DeclClass
	}
}
