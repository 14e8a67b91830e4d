package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/gigachat-go/internal/application/usecase"
	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// TaskResult describes one finished action.
type TaskResult struct {
	ID       string
	Kind     domain.RequestKind
	BaseURL  string
	Question string
	Outcome  domain.Outcome
	Detail   string
	Source   string
	Started  time.Time
	Finished time.Time
}

// TaskObserver is told about every task that reached a terminal state.
type TaskObserver interface {
	TaskFinished(TaskResult)
}

// Task is a handle to one spawned action.
type Task struct {
	ID   string
	done chan struct{}
}

// Done is closed once the task has written its terminal state.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finishes.
func (t *Task) Wait() { <-t.done }

// Options configures a Controller.
type Options struct {
	Gateways ports.GatewayFactory
	BaseURL  string
	Clock    ports.Clock
	Logger   ports.Logger
	Observer TaskObserver
}

// Controller turns user actions into load-state transitions. Every action runs
// in its own goroutine and writes its terminal state into a shared cell. Tasks
// are never cancelled or ordered against each other: whichever finishes last
// wins, even if it started first.
type Controller struct {
	gateways ports.GatewayFactory
	clock    ports.Clock
	log      ports.Logger
	observer TaskObserver

	mu      sync.Mutex
	pending map[string]*Task

	BaseURL *Cell[string]
	Ask     *Cell[AskState]
	Health  *Cell[HealthView]
}

// NewController builds a controller with both panels Idle.
func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Controller{
		gateways: opts.Gateways,
		clock:    opts.Clock,
		log:      opts.Logger,
		observer: opts.Observer,
		pending:  map[string]*Task{},
		BaseURL:  NewCell(opts.BaseURL),
		Ask:      NewCell(Idle[domain.AskResult]()),
		Health:   NewCell(HealthView{State: Idle[domain.HealthStatus]()}),
	}
}

// CanSubmit mirrors the submit button: disabled for blank input or while an
// ask is in flight. The use case enforces the blank rule on its own.
func (c *Controller) CanSubmit(raw string) bool {
	if c.Ask.Get().IsLoading() {
		return false
	}
	_, err := domain.NewQuestion(raw)
	return err == nil
}

// SubmitQuestion switches the ask panel to Loading before it returns, then
// spawns a task against the current base URL that writes the terminal state.
func (c *Controller) SubmitQuestion(ctx context.Context, raw string) *Task {
	task := c.newTask()
	baseURL := c.BaseURL.Get()
	started := c.clock.Now()
	c.Ask.Set(Loading[domain.AskResult]())

	go func() {
		defer close(task.done)

		result := TaskResult{ID: task.ID, Kind: domain.RequestAsk, BaseURL: baseURL, Question: raw, Started: started}
		fields := map[string]interface{}{"request_id": task.ID, "base_url": baseURL}

		base, err := domain.NewAPIBaseURL(baseURL)
		if err != nil {
			c.Ask.Set(Failed[domain.AskResult](err.Error()))
			c.finish(result, domain.OutcomeError, err.Error(), "", fields)
			return
		}

		uc := usecase.NewAskQuestion(c.gateways.ForBaseURL(base), c.log)
		answer, err := uc.Execute(ctx, raw)
		if err != nil {
			c.Ask.Set(Failed[domain.AskResult](err.Error()))
			c.finish(result, domain.OutcomeError, err.Error(), "", fields)
			return
		}

		c.Ask.Set(Ready(answer))
		c.finish(result, domain.OutcomeReady, answer.Answer, answer.Source, fields)
	}()

	return task
}

// RefreshHealth switches the status panel to Loading, clearing the last check
// time, before it returns. The spawned task writes the terminal state.
func (c *Controller) RefreshHealth(ctx context.Context) *Task {
	task := c.newTask()
	baseURL := c.BaseURL.Get()
	started := c.clock.Now()
	c.Health.Set(HealthView{State: Loading[domain.HealthStatus]()})

	go func() {
		defer close(task.done)

		result := TaskResult{ID: task.ID, Kind: domain.RequestHealth, BaseURL: baseURL, Started: started}
		fields := map[string]interface{}{"request_id": task.ID, "base_url": baseURL}

		base, err := domain.NewAPIBaseURL(baseURL)
		if err != nil {
			// The probe never ran, so there is no check time to show.
			c.Health.Set(HealthView{State: Failed[domain.HealthStatus](err.Error())})
			c.finish(result, domain.OutcomeError, err.Error(), "", fields)
			return
		}

		uc := usecase.NewCheckHealth(c.gateways.ForBaseURL(base), c.log)
		status, err := uc.Execute(ctx)
		checked := c.clock.Now()
		if err != nil {
			c.Health.Set(HealthView{State: Failed[domain.HealthStatus](err.Error()), LastChecked: &checked})
			c.finish(result, domain.OutcomeError, err.Error(), "", fields)
			return
		}

		c.Health.Set(HealthView{State: Ready(status), LastChecked: &checked})
		c.finish(result, domain.OutcomeReady, status.Status, status.Version, fields)
	}()

	return task
}

func (c *Controller) newTask() *Task {
	task := &Task{ID: uuid.NewString(), done: make(chan struct{})}
	c.mu.Lock()
	c.pending[task.ID] = task
	c.mu.Unlock()
	go func() {
		<-task.done
		c.mu.Lock()
		delete(c.pending, task.ID)
		c.mu.Unlock()
	}()
	return task
}

// Wait blocks until no task is in flight, including tasks spawned while waiting.
func (c *Controller) Wait() {
	for {
		var next *Task
		c.mu.Lock()
		for _, t := range c.pending {
			next = t
			break
		}
		c.mu.Unlock()
		if next == nil {
			return
		}
		next.Wait()
		c.mu.Lock()
		delete(c.pending, next.ID)
		c.mu.Unlock()
	}
}

func (c *Controller) finish(result TaskResult, outcome domain.Outcome, detail, source string, fields map[string]interface{}) {
	result.Outcome = outcome
	result.Detail = detail
	result.Source = source
	result.Finished = c.clock.Now()

	fields["kind"] = string(result.Kind)
	fields["outcome"] = string(outcome)
	fields["duration_ms"] = result.Finished.Sub(result.Started).Milliseconds()
	c.log.Debug("task finished", fields)

	if c.observer != nil {
		c.observer.TaskFinished(result)
	}
}

// ChangeBaseURL points the controller at raw and re-runs the health check, the
// way the status panel refreshes whenever the configured URL changes. It
// returns nil when raw equals the current base URL.
func (c *Controller) ChangeBaseURL(ctx context.Context, raw string) *Task {
	if c.BaseURL.Get() == raw {
		return nil
	}
	c.BaseURL.Set(raw)
	return c.RefreshHealth(ctx)
}
