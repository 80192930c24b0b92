package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"element-autodoc/internal/analyze"
	"element-autodoc/internal/assemble"
	"element-autodoc/internal/config"
	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/document"
	"element-autodoc/internal/manifest"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

// errNoSource is returned when neither packages nor a manifest is set.
var errNoSource = errors.New("nothing to document: set --pkg or --manifest")

// run builds the universe described by cfg and documents it. Diagnostics
// are replayed through logger before returning.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger) (*document.DocumentSet, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}
	defer diagnostic.Log(logger, diags)

	u, names, err := loadUniverse(ctx, cfg, diags)
	if err != nil {
		diags.AddError(diagnostic.CodeTypeUniverseFailure, err.Error(), "", "")
		return nil, diags, err
	}

	keys, err := cfg.Keys()
	if err != nil {
		return nil, diags, err
	}

	a := assemble.New(assemble.Config{
		Settings:   cfg.Settings,
		Keys:       keys,
		Vocabulary: names,
		Workers:    cfg.Workers,
		Logger:     logger,
	}, diags)

	set, err := a.Assemble(ctx, u)
	if err != nil {
		return nil, diags, err
	}

	logger.Info("documented models",
		"elements", len(set.Elements),
		"errors", len(diags.Errors),
		"warnings", len(diags.Warnings))

	return set, diags, nil
}

func loadUniverse(ctx context.Context, cfg *config.Config, diags *diagnostic.Diagnostics) (universe.Universe, vocab.Names, error) {
	switch {
	case cfg.Manifest != "":
		g, names, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, vocab.Names{}, fmt.Errorf("loading manifest: %w", err)
		}

		return g, names, nil
	case len(cfg.Packages) > 0:
		g, err := analyze.NewAnalyzer(
			analyze.WithContext(ctx),
			analyze.WithDiagnostics(diags),
		).LoadPackages(cfg.Packages...)
		if err != nil {
			return nil, vocab.Names{}, fmt.Errorf("loading packages: %w", err)
		}

		return g, vocab.DefaultNames(), nil
	default:
		return nil, vocab.Names{}, errNoSource
	}
}
