// Package main provides the CLI entrypoint for autodoc.
//
// autodoc documents element models:
//   - Loads Go packages (AST + go/types) or a YAML universe manifest
//   - Finds every model, its factory and its data carrier
//   - Reduces parameter types to a small descriptive vocabulary
//   - Writes a JSON or YAML document set
package main

import (
	"context"
	"os"
	"os/signal"

	"element-autodoc/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
