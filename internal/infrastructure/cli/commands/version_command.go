package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/gigachat-go/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build metadata and the API User-Agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayVersionInformation(cmd.OutOrStdout())
		},
	}
}

// displayVersionInformation prints the ldflags build metadata and the
// User-Agent header the API client sends.
func displayVersionInformation(out io.Writer) error {
	fmt.Fprintf(out, "gigachat version %s\n", version.Version)

	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}

	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}

	fmt.Fprintf(out, "User-Agent: %s\n", version.UserAgent())
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())

	return nil
}
