package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/gigachat-go/internal/app"
	"github.com/doeshing/gigachat-go/internal/application/state"
)

// ErrRequestFailed is returned by one-shot commands whose task ended in the
// Error state. The message itself has already been rendered.
var ErrRequestFailed = errors.New("request failed")

func newAskCommand(container *app.Container) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Send a question to the API and print the answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := container.NewController()
			if baseURL != "" {
				ctrl.BaseURL.Set(baseURL)
			}

			task := ctrl.SubmitQuestion(cmd.Context(), strings.Join(args, " "))
			awaitWithSpinner(cmd, ctrl.Ask, state.AskState.IsLoading, task, "Отправка...")

			result := ctrl.Ask.Get()
			RenderAsk(cmd.OutOrStdout(), result)
			if result.Phase() == state.PhaseError {
				return ErrRequestFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Use this base URL instead of the saved one")
	return cmd
}

func newHealthCommand(container *app.Container) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check API availability and mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := container.NewController()
			if baseURL != "" {
				ctrl.BaseURL.Set(baseURL)
			}

			task := ctrl.RefreshHealth(cmd.Context())
			awaitWithSpinner(cmd, ctrl.Health, func(v state.HealthView) bool { return v.State.IsLoading() }, task, "Проверяем...")

			view := ctrl.Health.Get()
			RenderHealth(cmd.OutOrStdout(), view)
			if view.State.Phase() == state.PhaseError {
				return ErrRequestFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Use this base URL instead of the saved one")
	return cmd
}

// awaitWithSpinner blocks until task finishes, spinning on stderr while cell
// reports Loading. A spinner started after the terminal write is stopped again
// once the task is done.
func awaitWithSpinner[T any](cmd *cobra.Command, cell *state.Cell[T], loading func(T) bool, task *state.Task, label string) {
	if noSpinner, _ := cmd.Flags().GetBool("no-spinner"); noSpinner {
		task.Wait()
		return
	}

	spinner := NewSpinner(cmd.ErrOrStderr(), label)
	unsubscribe := cell.Subscribe(func(v T) {
		if loading(v) {
			spinner.Start()
		} else {
			spinner.Stop()
		}
	})
	defer unsubscribe()
	// The task has already written Loading before we subscribed.
	if loading(cell.Get()) {
		spinner.Start()
	}

	task.Wait()
	spinner.Stop()
}
