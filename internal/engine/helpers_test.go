package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type memStore struct {
	mu    sync.Mutex
	state *State
	saves int
	err   error
}

func (m *memStore) LoadSnapshot(ctx context.Context, userID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), nil
}

func (m *memStore) SaveSnapshot(ctx context.Context, userID string, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.state = s
	m.saves++
	return nil
}

type fakeGenerator struct {
	content *GeneratedContent
	err     error
	// block makes the call wait until its context is done.
	block bool
	calls int
}

func (g *fakeGenerator) GenerateQuestContent(ctx context.Context, req ContentRequest) (*GeneratedContent, error) {
	g.calls++
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

var errGenerator = errors.New("generator down")

// day1 is the first day of every engine test, 09:00 UTC.
var day1 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts Options) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: day1}
	opts.Clock = clock
	opts.Location = time.UTC
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	e := New(opts, nil)
	return e, clock
}

// reconcile runs the daily reconciliation and fails the test on error.
func reconcile(t *testing.T, e *Engine) *RolloverResult {
	t.Helper()
	res, err := e.RunDailyReconciliation(context.Background())
	if err != nil {
		t.Fatalf("RunDailyReconciliation: %v", err)
	}
	return res
}

func questsOfType(e *Engine, qt QuestType) []Quest {
	var out []Quest
	for _, q := range e.Quests() {
		if q.Type == qt {
			out = append(out, q)
		}
	}
	return out
}

func dailyByTemplate(t *testing.T, e *Engine, templateID string) Quest {
	t.Helper()
	for _, q := range questsOfType(e, QuestDaily) {
		if q.TemplateID == templateID {
			return q
		}
	}
	t.Fatalf("no daily quest for template %s", templateID)
	return Quest{}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
