package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/ports"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}

func TestLoadStateAccessors(t *testing.T) {
	var zero LoadState[int]
	assert.Equal(t, PhaseIdle, zero.Phase())

	ready := Ready(7)
	v, ok := ready.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.True(t, ready.IsTerminal())

	failed := Failed[int]("boom")
	_, ok = failed.Value()
	assert.False(t, ok)
	assert.Equal(t, "boom", failed.Message())
	assert.True(t, failed.IsTerminal())

	assert.True(t, Loading[int]().IsLoading())
	assert.False(t, Loading[int]().IsTerminal())
	assert.Equal(t, "loading", PhaseLoading.String())
}

func TestCellNotifiesInWriteOrder(t *testing.T) {
	cell := NewCell(0)
	var seen []int
	unsubscribe := cell.Subscribe(func(v int) { seen = append(seen, v) })

	cell.Set(1)
	cell.Set(2)
	unsubscribe()
	cell.Set(3)

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 3, cell.Get())
}

func TestSubmitQuestionTransitions(t *testing.T) {
	gw := newStubGateway()
	gw.answers["hi"] = domain.AskResult{Answer: "hello", Source: "mock"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test", Clock: fixedClock()})
	phases := recordAskPhases(c)

	assert.Equal(t, PhaseIdle, c.Ask.Get().Phase())
	c.SubmitQuestion(context.Background(), "hi").Wait()

	assert.Equal(t, []Phase{PhaseLoading, PhaseReady}, phases())
	got, ok := c.Ask.Get().Value()
	require.True(t, ok)
	assert.Equal(t, "hello", got.Answer)
	assert.Equal(t, []string{"http://api.test"}, gw.baseURLs())
}

func TestSubmitQuestionFromReadyGoesThroughLoading(t *testing.T) {
	gw := newStubGateway()
	gw.answers["one"] = domain.AskResult{Answer: "1"}
	gw.answers["two"] = domain.AskResult{Answer: "2"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	c.SubmitQuestion(context.Background(), "one").Wait()
	phases := recordAskPhases(c)
	c.SubmitQuestion(context.Background(), "two").Wait()

	assert.Equal(t, []Phase{PhaseLoading, PhaseReady}, phases())
	got, _ := c.Ask.Get().Value()
	assert.Equal(t, "2", got.Answer)
}

func TestSubmitQuestionIsLoadingBeforeReturning(t *testing.T) {
	gw := newStubGateway()
	gw.answers["one"] = domain.AskResult{Answer: "1"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})
	c.SubmitQuestion(context.Background(), "one").Wait()
	require.Equal(t, PhaseReady, c.Ask.Get().Phase())

	gate := gw.block("two")
	task := c.SubmitQuestion(context.Background(), "two")

	assert.True(t, c.Ask.Get().IsLoading(), "ask panel must leave Ready synchronously")
	assert.False(t, c.CanSubmit("three"), "submit is refused while an ask is pending")

	close(gate)
	task.Wait()
	assert.True(t, c.CanSubmit("three"))
}

func TestRefreshHealthIsLoadingBeforeReturning(t *testing.T) {
	gw := newStubGateway()
	gw.health = domain.HealthStatus{Status: "ok"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test", Clock: fixedClock()})
	c.RefreshHealth(context.Background()).Wait()
	require.NotNil(t, c.Health.Get().LastChecked)

	gate := make(chan struct{})
	gw.mu.Lock()
	gw.healthGate = gate
	gw.mu.Unlock()

	task := c.RefreshHealth(context.Background())
	view := c.Health.Get()
	close(gate)
	task.Wait()

	assert.Equal(t, PhaseLoading, view.State.Phase())
	assert.Nil(t, view.LastChecked)
	assert.Equal(t, PhaseReady, c.Health.Get().State.Phase())
}

func TestSubmitBlankQuestionRendersDomainError(t *testing.T) {
	gw := newStubGateway()
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	c.SubmitQuestion(context.Background(), "   ").Wait()

	st := c.Ask.Get()
	assert.Equal(t, PhaseError, st.Phase())
	assert.Equal(t, "Ошибка домена: Вопрос не должен быть пустым", st.Message())
	assert.Equal(t, 0, gw.askCalls())
}

func TestSubmitWithBlankBaseURLNeverBuildsGateway(t *testing.T) {
	gw := newStubGateway()
	c := NewController(Options{Gateways: gw, BaseURL: "  "})

	c.SubmitQuestion(context.Background(), "hi").Wait()

	assert.Equal(t, "Базовый URL API не задан", c.Ask.Get().Message())
	assert.Empty(t, gw.baseURLs())
}

func TestSubmitGatewayFailureRendersMessage(t *testing.T) {
	gw := newStubGateway()
	gw.askErr = ports.APIError("rate limited (код: 429)")
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	c.SubmitQuestion(context.Background(), "hi").Wait()

	assert.Equal(t, "Ошибка шлюза: Ошибка API: rate limited (код: 429)", c.Ask.Get().Message())
}

func TestRefreshHealthRecordsLastCheckedOnTerminalStatesOnly(t *testing.T) {
	gw := newStubGateway()
	gw.health = domain.HealthStatus{Status: "ok", Version: "0.1.0"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test", Clock: fixedClock()})

	var views []HealthView
	var mu sync.Mutex
	c.Health.Subscribe(func(v HealthView) {
		mu.Lock()
		views = append(views, v)
		mu.Unlock()
	})

	c.RefreshHealth(context.Background()).Wait()
	gw.setHealthErr(ports.NetworkError("refused"))
	c.RefreshHealth(context.Background()).Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, views, 4)

	assert.Equal(t, PhaseLoading, views[0].State.Phase())
	assert.Nil(t, views[0].LastChecked)

	assert.Equal(t, PhaseReady, views[1].State.Phase())
	require.NotNil(t, views[1].LastChecked)
	assert.Equal(t, fixedNow, *views[1].LastChecked)

	assert.Equal(t, PhaseLoading, views[2].State.Phase())
	assert.Nil(t, views[2].LastChecked)

	assert.Equal(t, PhaseError, views[3].State.Phase())
	assert.Equal(t, "Ошибка шлюза: Сетевая ошибка: refused", views[3].State.Message())
	require.NotNil(t, views[3].LastChecked)
}

func TestRefreshHealthWithBlankBaseURLLeavesLastCheckedUnset(t *testing.T) {
	c := NewController(Options{Gateways: newStubGateway(), BaseURL: ""})

	c.RefreshHealth(context.Background()).Wait()

	view := c.Health.Get()
	assert.Equal(t, "Базовый URL API не задан", view.State.Message())
	assert.Nil(t, view.LastChecked)
}

func TestCanSubmit(t *testing.T) {
	gw := newStubGateway()
	release := gw.block("slow")
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	assert.False(t, c.CanSubmit("  "))
	assert.True(t, c.CanSubmit("hello"))

	task := c.SubmitQuestion(context.Background(), "slow")
	require.Eventually(t, func() bool { return c.Ask.Get().IsLoading() }, time.Second, time.Millisecond)
	assert.False(t, c.CanSubmit("hello"))

	close(release)
	task.Wait()
	assert.True(t, c.CanSubmit("hello"))
}

// Two asks race: the older one finishes last and overwrites the newer answer.
// Tasks are neither cancelled nor ordered, so completion order decides.
func TestConcurrentTasksLastCompletionWins(t *testing.T) {
	gw := newStubGateway()
	gw.answers["old"] = domain.AskResult{Answer: "old answer"}
	gw.answers["new"] = domain.AskResult{Answer: "new answer"}
	releaseOld := gw.block("old")
	releaseNew := gw.block("new")
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	oldTask := c.SubmitQuestion(context.Background(), "old")
	gw.waitStarted(t, "old")
	newTask := c.SubmitQuestion(context.Background(), "new")
	gw.waitStarted(t, "new")

	close(releaseNew)
	newTask.Wait()
	got, _ := c.Ask.Get().Value()
	assert.Equal(t, "new answer", got.Answer)

	close(releaseOld)
	oldTask.Wait()
	got, _ = c.Ask.Get().Value()
	assert.Equal(t, "old answer", got.Answer)
}

func TestAskAndHealthRunIndependently(t *testing.T) {
	gw := newStubGateway()
	gw.health = domain.HealthStatus{Status: "ok"}
	release := gw.block("pending")
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	askTask := c.SubmitQuestion(context.Background(), "pending")
	gw.waitStarted(t, "pending")

	c.RefreshHealth(context.Background()).Wait()
	assert.Equal(t, PhaseReady, c.Health.Get().State.Phase())
	assert.True(t, c.Ask.Get().IsLoading())

	close(release)
	askTask.Wait()
	assert.Equal(t, PhaseReady, c.Ask.Get().Phase())
}

func TestObserverReceivesResults(t *testing.T) {
	gw := newStubGateway()
	gw.answers["hi"] = domain.AskResult{Answer: "hello", Source: "mock"}
	obs := &recordingObserver{}
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test", Clock: fixedClock(), Observer: obs})

	task := c.SubmitQuestion(context.Background(), "hi")
	task.Wait()
	c.SubmitQuestion(context.Background(), "").Wait()

	results := obs.all()
	require.Len(t, results, 2)
	assert.Equal(t, task.ID, results[0].ID)
	assert.Equal(t, domain.RequestAsk, results[0].Kind)
	assert.Equal(t, domain.OutcomeReady, results[0].Outcome)
	assert.Equal(t, "hello", results[0].Detail)
	assert.Equal(t, "mock", results[0].Source)
	assert.Equal(t, domain.OutcomeError, results[1].Outcome)
	assert.NotEqual(t, results[0].ID, results[1].ID)
}

func TestHistoryObserverSavesRecord(t *testing.T) {
	repo := &stubHistory{}
	obs := NewHistoryObserver(repo, nil)

	obs.TaskFinished(TaskResult{
		ID:       "id-1",
		Kind:     domain.RequestHealth,
		BaseURL:  "http://api.test",
		Outcome:  domain.OutcomeReady,
		Detail:   "ok",
		Source:   "0.1.0",
		Started:  fixedNow,
		Finished: fixedNow.Add(250 * time.Millisecond),
	})

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, fixedNow.Add(250*time.Millisecond), rec.Timestamp)
	assert.Equal(t, int64(250), rec.DurationMS)
	assert.Equal(t, domain.RequestHealth, rec.Kind)
}

func TestChangeBaseURLRechecksHealthOnlyOnChange(t *testing.T) {
	gw := newStubGateway()
	gw.health = domain.HealthStatus{Status: "ok"}
	c := NewController(Options{Gateways: gw, BaseURL: "http://old.test", Clock: fixedClock()})

	assert.Nil(t, c.ChangeBaseURL(context.Background(), "http://old.test"))

	task := c.ChangeBaseURL(context.Background(), "http://new.test")
	require.NotNil(t, task)
	task.Wait()

	assert.Equal(t, "http://new.test", c.BaseURL.Get())
	assert.Equal(t, []string{"http://new.test"}, gw.baseURLs())
	assert.Equal(t, PhaseReady, c.Health.Get().State.Phase())
}

func TestControllerWaitDrainsInFlightTasks(t *testing.T) {
	gw := newStubGateway()
	gate := gw.block("slow")
	c := NewController(Options{Gateways: gw, BaseURL: "http://api.test"})

	c.SubmitQuestion(context.Background(), "slow")
	gw.waitStarted(t, "slow")

	waited := make(chan struct{})
	go func() {
		c.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned while a task was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the task finished")
	}
	assert.Equal(t, PhaseReady, c.Ask.Get().Phase())
}

func recordAskPhases(c *Controller) func() []Phase {
	var mu sync.Mutex
	var phases []Phase
	c.Ask.Subscribe(func(s AskState) {
		mu.Lock()
		phases = append(phases, s.Phase())
		mu.Unlock()
	})
	return func() []Phase {
		mu.Lock()
		defer mu.Unlock()
		return append([]Phase(nil), phases...)
	}
}

type stubGateway struct {
	mu         sync.Mutex
	answers    map[string]domain.AskResult
	askErr     error
	health     domain.HealthStatus
	healthErr  error
	healthGate chan struct{}
	gates      map[string]chan struct{}
	started    map[string]chan struct{}
	urls       []string
	asks       int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		answers: make(map[string]domain.AskResult),
		gates:   make(map[string]chan struct{}),
		started: make(map[string]chan struct{}),
	}
}

// block makes Ask for question wait until the returned channel is closed.
func (s *stubGateway) block(question string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	gate := make(chan struct{})
	s.gates[question] = gate
	s.started[question] = make(chan struct{})
	return gate
}

func (s *stubGateway) waitStarted(t *testing.T, question string) {
	t.Helper()
	s.mu.Lock()
	ch := s.started[question]
	s.mu.Unlock()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("ask %q never started", question)
	}
}

func (s *stubGateway) setHealthErr(err error) {
	s.mu.Lock()
	s.healthErr = err
	s.mu.Unlock()
}

func (s *stubGateway) askCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asks
}

func (s *stubGateway) baseURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

func (s *stubGateway) ForBaseURL(u domain.APIBaseURL) ports.Gateway {
	s.mu.Lock()
	s.urls = append(s.urls, u.String())
	s.mu.Unlock()
	return s
}

func (s *stubGateway) Ask(_ context.Context, q domain.Question) (domain.AskResult, error) {
	s.mu.Lock()
	s.asks++
	gate := s.gates[q.String()]
	started := s.started[q.String()]
	result, err := s.answers[q.String()], s.askErr
	s.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	return result, err
}

func (s *stubGateway) Health(context.Context) (domain.HealthStatus, error) {
	s.mu.Lock()
	gate := s.healthGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health, s.healthErr
}

type recordingObserver struct {
	mu      sync.Mutex
	results []TaskResult
}

func (o *recordingObserver) TaskFinished(r TaskResult) {
	o.mu.Lock()
	o.results = append(o.results, r)
	o.mu.Unlock()
}

func (o *recordingObserver) all() []TaskResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]TaskResult(nil), o.results...)
}

type stubHistory struct {
	saved []domain.HistoryRecord
}

func (s *stubHistory) Save(r domain.HistoryRecord) error {
	s.saved = append(s.saved, r)
	return nil
}
func (s *stubHistory) Records(int, string) ([]domain.HistoryRecord, error) { return s.saved, nil }
func (s *stubHistory) Clear() error                                        { return nil }
func (s *stubHistory) ExportJSON(string) error                             { return nil }
func (s *stubHistory) Path() string                                        { return "" }
