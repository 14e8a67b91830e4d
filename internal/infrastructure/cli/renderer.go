package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/gigachat-go/internal/application/state"
	"github.com/doeshing/gigachat-go/internal/domain"
)

// Panel texts.
const (
	askIdleText    = "Ответ появится здесь."
	askLoadingText = "Ожидание ответа от сервера..."
	healthIdleText = "Статус еще не запрошен."
	healthLoading  = "Проверяем..."
	errorHeading   = "Ошибка"
	checkedTimeFmt = "15:04:05"
)

// RenderAsk prints the ask panel for s.
func RenderAsk(out io.Writer, s state.AskState) {
	switch s.Phase() {
	case state.PhaseIdle:
		fmt.Fprintln(out, askIdleText)
	case state.PhaseLoading:
		fmt.Fprintln(out, askLoadingText)
	case state.PhaseReady:
		result, _ := s.Value()
		fmt.Fprintln(out, result.Answer)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Источник: %s\n", result.Source)
		fmt.Fprintf(out, "Системный промпт применен: %s\n", yesNo(result.SystemPromptApplied))
	case state.PhaseError:
		fmt.Fprintf(out, "%s: %s\n", errorHeading, s.Message())
	}
}

// RenderHealth prints the API status panel for v. The status is upper-cased
// when it reads "ok" so that a healthy service stands out.
func RenderHealth(out io.Writer, v state.HealthView) {
	switch v.State.Phase() {
	case state.PhaseIdle:
		fmt.Fprintln(out, healthIdleText)
	case state.PhaseLoading:
		fmt.Fprintln(out, healthLoading)
	case state.PhaseReady:
		status, _ := v.State.Value()
		fmt.Fprintf(out, "[%s] Версия: %s\n", statusLabel(status), status.Version)
		fmt.Fprintf(out, "Режим: %s\n", status.ModeLabel())
	case state.PhaseError:
		fmt.Fprintf(out, "%s: %s\n", errorHeading, v.State.Message())
	}
	if v.LastChecked != nil {
		fmt.Fprintf(out, "Последняя проверка: %s\n", v.LastChecked.Format(checkedTimeFmt))
	}
}

func statusLabel(status domain.HealthStatus) string {
	if status.IsOK() {
		return strings.ToUpper(status.Status)
	}
	return status.Status
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
