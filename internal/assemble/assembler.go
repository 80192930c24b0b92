package assemble

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"element-autodoc/internal/collect"
	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/document"
	"element-autodoc/internal/factory"
	"element-autodoc/internal/key"
	"element-autodoc/internal/params"
	"element-autodoc/internal/typename"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

// Config configures an Assembler.
type Config struct {
	Settings   document.Settings
	Keys       *key.Format      // nil selects key.Default()
	Vocabulary vocab.Names      // zero selects vocab.DefaultNames()
	Workers    int              // <= 0 selects GOMAXPROCS
	Now        func() time.Time // nil selects time.Now
	Logger     *log.Logger      // progress at debug level; nil discards
}

// Assembler builds document sets.
type Assembler struct {
	cfg   Config
	diags *diagnostic.Diagnostics
}

// New creates a new Assembler reporting into diags.
func New(cfg Config, diags *diagnostic.Diagnostics) *Assembler {
	if cfg.Keys == nil {
		cfg.Keys = key.Default()
	}

	if cfg.Vocabulary.IsZero() {
		cfg.Vocabulary = vocab.DefaultNames()
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	if diags == nil {
		diags = &diagnostic.Diagnostics{}
	}

	return &Assembler{cfg: cfg, diags: diags}
}

// Diagnostics returns the log the assembler reports into.
func (a *Assembler) Diagnostics() *diagnostic.Diagnostics {
	return a.diags
}

// Assemble documents every model of u. The returned error is non-nil only
// for run-fatal conditions: an unusable universe or a cancelled context.
func (a *Assembler) Assemble(ctx context.Context, u universe.Universe) (*document.DocumentSet, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: no universe", diagnostic.ErrTypeUniverseFailure)
	}

	v, err := vocab.New(u, a.cfg.Vocabulary)
	if err != nil {
		a.diags.AddError(diagnostic.CodeTypeUniverseFailure, err.Error(), "", "")
		return nil, fmt.Errorf("building vocabulary: %w", err)
	}

	var captured int64
	if a.cfg.Settings.RecordTime {
		captured = a.cfg.Now().UnixMilli()
	}

	candidates := collect.NewCollector(a.cfg.Keys, a.diags).Collect(u)
	a.cfg.Logger.Debug("collected models", "count", len(candidates))

	w := &worker{
		factories: factory.NewResolver(a.diags),
		params:    params.NewExtractor(typename.New(v, a.diags), a.diags),
		captured:  captured,
	}

	results := make([]*document.Element, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			el, err := w.document(c)
			if err != nil {
				a.cfg.Logger.Debug("model excluded", "model", c.Decl.String(), "err", err)
				a.diags.AddFailure(c.Decl.String(), err)

				return nil
			}

			a.cfg.Logger.Debug("model documented", "model", c.Decl.String(), "key", c.Key, "parameters", len(el.Parameters))
			results[i] = el

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assembling documents: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assembling documents: %w", err)
	}

	set := &document.DocumentSet{
		Elements: a.sorted(results),
		Settings: a.cfg.Settings,
	}
	set.Normalize()

	return set, nil
}

// sorted drops failed slots and sorts by key. The sort is stable so models
// sharing a key keep universe order.
func (a *Assembler) sorted(results []*document.Element) []document.Element {
	out := make([]document.Element, 0, len(results))

	for _, el := range results {
		if el != nil {
			out = append(out, *el)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type < out[j].Type
	})

	for i := 1; i < len(out); i++ {
		if out[i].Type == out[i-1].Type {
			a.diags.AddWarning(diagnostic.CodeDuplicateModelKey,
				fmt.Sprintf("models %q and %q share key %q", out[i-1].Name, out[i].Name, out[i].Type), "", "")
		}
	}

	return out
}

// worker holds the per-run resolvers shared by all goroutines. None of
// them carries mutable state besides the diagnostics log.
type worker struct {
	factories *factory.Resolver
	params    *params.Extractor
	captured  int64
}

func (w *worker) document(c collect.Candidate) (*document.Element, error) {
	desc, err := w.factories.Resolve(c.Decl)
	if err != nil {
		return nil, err
	}

	return &document.Element{
		Type:        c.Key,
		Name:        c.Name,
		Group:       c.Group,
		Description: c.Description,
		Parameters:  w.params.Extract(c.Decl, desc),
		LastUpdated: w.captured,
	}, nil
}
