package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/doeshing/gigachat-go/internal/app"
	"github.com/doeshing/gigachat-go/internal/application/settings"
	"github.com/doeshing/gigachat-go/internal/application/state"
)

const sessionHelp = `Введите вопрос и нажмите Enter. Команды:
  :health        проверить API
  :url           показать базовый URL
  :url <адрес>   сохранить базовый URL
  :reset         сбросить базовый URL
  :quit          выйти`

// syncWriter serializes panel output from concurrent tasks.
type syncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

func newSessionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive session: ask questions and watch API status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, container)
		},
	}
}

func runSession(cmd *cobra.Command, container *app.Container) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	out := &syncWriter{out: cmd.OutOrStdout()}
	prompter := NewPrompter(cmd.InOrStdin(), out)
	ctrl := container.NewController()

	defer ctrl.Ask.Subscribe(func(s state.AskState) {
		var b strings.Builder
		RenderAsk(&b, s)
		fmt.Fprintf(out, "\n[ответ]\n%s", b.String())
	})()
	defer ctrl.Health.Subscribe(func(v state.HealthView) {
		var b strings.Builder
		RenderHealth(&b, v)
		fmt.Fprintf(out, "\n[статус API]\n%s", b.String())
	})()

	fmt.Fprintf(out, "Клиент к API %s\n%s\n", ctrl.BaseURL.Get(), sessionHelp)

	defer ctrl.Wait()

	if container.Config.Session.HealthOnStart {
		ctrl.RefreshHealth(ctx)
	}
	if container.Config.Session.WatchSettings {
		if err := container.WatchSettings(ctx, ctrl); err != nil {
			container.Logger.Warn("settings watch disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	for {
		line, err := prompter.ReadLine("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch command {
		case ":quit", ":q":
			return nil
		case ":help":
			fmt.Fprintln(out, sessionHelp)
		case ":health":
			ctrl.RefreshHealth(ctx)
		case ":url":
			arg = strings.TrimSpace(arg)
			if arg == "" {
				fmt.Fprintln(out, ctrl.BaseURL.Get())
				continue
			}
			u, err := container.Settings.Save(arg)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", errorHeading, err)
				continue
			}
			fmt.Fprintln(out, settings.NoticeSaved)
			ctrl.ChangeBaseURL(ctx, u.String())
		case ":reset":
			u, err := container.Settings.Reset()
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", errorHeading, err)
				continue
			}
			fmt.Fprintln(out, settings.NoticeReset)
			ctrl.ChangeBaseURL(ctx, u.String())
		default:
			if !ctrl.CanSubmit(line) {
				if strings.TrimSpace(line) == "" {
					fmt.Fprintln(out, "Пустые вопросы не отправляются.")
				} else {
					fmt.Fprintln(out, "Отправка... дождитесь ответа.")
				}
				continue
			}
			ctrl.SubmitQuestion(ctx, line)
		}
	}
}
