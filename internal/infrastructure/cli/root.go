package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/gigachat-go/internal/app"
	"github.com/doeshing/gigachat-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "gigachat [question]",
		Short: "gigachat - terminal client for the GigaChat question API",
		Long:  "gigachat sends questions to a GigaChat API server and reports its health.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return askCmd.RunE(cmd, args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("verbose", opts.Verbose, "Enable debug logging (also GIGACHAT_DEBUG=1)")
	root.PersistentFlags().Bool("no-spinner", false, "Do not animate while waiting for the API")

	root.AddCommand(askCmd)
	root.AddCommand(newHealthCommand(container))
	root.AddCommand(newSessionCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
