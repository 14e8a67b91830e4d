package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/gigachat-go/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose(os.Args[1:])}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		// The failed panel has already been printed.
		if !errors.Is(err, cli.ErrRequestFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isVerbose is resolved before cobra parses flags because the container, and
// with it the logger, is built first.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--verbose" || arg == "--verbose=true" {
			return true
		}
	}
	debug := os.Getenv("GIGACHAT_DEBUG")
	return strings.EqualFold(debug, "1") || strings.EqualFold(debug, "true")
}
