package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultGeneratorTimeout bounds a single content generator call.
const DefaultGeneratorTimeout = 8 * time.Second

// Persistence loads and stores the full state snapshot for a user.
// LoadSnapshot returns (nil, nil) when nothing is stored yet.
type Persistence interface {
	LoadSnapshot(ctx context.Context, userID string) (*State, error)
	SaveSnapshot(ctx context.Context, userID string, s *State) error
}

// ContentGenerator produces flavor text and rewards for quests and bosses.
// It may fail or time out; the engine then uses a local template.
type ContentGenerator interface {
	GenerateQuestContent(ctx context.Context, req ContentRequest) (*GeneratedContent, error)
}

type ContentKind string

const (
	ContentPenalty ContentKind = "penalty"
	ContentBoss    ContentKind = "boss"
)

type ContentRequest struct {
	Kind        ContentKind
	PlayerLevel int
	PlayerRank  Rank
	Difficulty  Rank
	// Context is free text describing why the content is needed.
	Context string
}

type GeneratedContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xpReward"`
	GoldReward  int    `json:"goldReward"`
	Difficulty  Rank   `json:"difficulty"`
}

type Options struct {
	UserID           string
	Clock            Clock
	Location         *time.Location
	Rand             *rand.Rand
	Generator        ContentGenerator
	Persistence      Persistence
	Logger           *zap.Logger
	GeneratorTimeout time.Duration
}

// Engine owns one user's progression state. Every exported method is a
// synchronous transaction against that state.
type Engine struct {
	mu sync.Mutex

	userID     string
	clock      Clock
	loc        *time.Location
	rng        *rand.Rand
	gen        ContentGenerator
	store      Persistence
	log        *zap.Logger
	genTimeout time.Duration

	state  *State
	events []Event
}

// New builds an engine around the given state. A nil state starts a fresh
// player with the built-in collections.
func New(opts Options, s *State) *Engine {
	e := &Engine{
		userID:     opts.UserID,
		clock:      opts.Clock,
		loc:        opts.Location,
		rng:        opts.Rand,
		gen:        opts.Generator,
		store:      opts.Persistence,
		log:        opts.Logger,
		genTimeout: opts.GeneratorTimeout,
	}
	if e.userID == "" {
		e.userID = "local"
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.genTimeout <= 0 {
		e.genTimeout = DefaultGeneratorTimeout
	}
	if s == nil {
		e.state = e.freshState()
		e.refreshBossLocks()
		return e
	}
	e.state = s
	e.repair()
	return e
}

func (e *Engine) freshState() *State {
	return &State{
		Player:     NewPlayer(),
		Quests:     e.dailyQuestsFor(e.today()),
		Bosses:     builtinBosses(),
		ShopItems:  builtinShopItems(),
		SkillNodes: builtinSkillNodes(),
	}
}

// Open loads the user's snapshot, repairs it and runs the daily reconciliation.
func Open(ctx context.Context, opts Options) (*Engine, error) {
	var loaded *State
	if opts.Persistence != nil {
		s, err := opts.Persistence.LoadSnapshot(ctx, opts.UserID)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		loaded = s
	}
	e := New(opts, loaded)
	if _, err := e.RunDailyReconciliation(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) now() time.Time { return e.clock.Now() }

func (e *Engine) today() string { return DateKey(e.now(), e.loc) }

func (e *Engine) newID() string { return uuid.NewString() }

// Player returns a copy of the player.
func (e *Engine) Player() Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Player.clone()
}

// Quests returns a copy of the quest list.
func (e *Engine) Quests() []Quest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Quest, len(e.state.Quests))
	for i := range e.state.Quests {
		out[i] = e.state.Quests[i].clone()
	}
	return out
}

// Buffs returns a copy of the buff ledger.
func (e *Engine) Buffs() []Buff {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Buff, len(e.state.Player.ActiveBuffs))
	for i := range e.state.Player.ActiveBuffs {
		out[i] = e.state.Player.ActiveBuffs[i].clone()
	}
	return out
}

func (e *Engine) Tasks() []ScheduledTask {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone().Tasks
}

func (e *Engine) Bosses() []Boss {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Boss(nil), e.state.Bosses...)
}

func (e *Engine) ShopItems() []ShopItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone().ShopItems
}

func (e *Engine) SkillNodes() []SkillNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]SkillNode(nil), e.state.SkillNodes...)
}

// Snapshot returns a deep copy of the full state.
func (e *Engine) Snapshot() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// DrainEvents returns the events emitted since the last call and clears them.
func (e *Engine) DrainEvents() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.events
	e.events = nil
	return out
}

// save hands a copy of the state to persistence. Failures are logged and do
// not undo the local mutation.
func (e *Engine) save(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSnapshot(ctx, e.userID, e.state.Clone()); err != nil {
		e.log.Error("save snapshot failed", zap.String("user", e.userID), zap.Error(err))
	}
}

func (e *Engine) findQuest(id string) (int, *Quest) {
	for i := range e.state.Quests {
		if e.state.Quests[i].ID == id {
			return i, &e.state.Quests[i]
		}
	}
	return -1, nil
}

func (e *Engine) removeQuest(id string) {
	out := e.state.Quests[:0]
	for _, q := range e.state.Quests {
		if q.ID != id {
			out = append(out, q)
		}
	}
	e.state.Quests = out
}

func (e *Engine) findBoss(id string) *Boss {
	for i := range e.state.Bosses {
		if e.state.Bosses[i].ID == id {
			return &e.state.Bosses[i]
		}
	}
	return nil
}

func (e *Engine) findTask(id string) *ScheduledTask {
	for i := range e.state.Tasks {
		if e.state.Tasks[i].ID == id {
			return &e.state.Tasks[i]
		}
	}
	return nil
}

func (e *Engine) taskForQuest(questID string) *ScheduledTask {
	for i := range e.state.Tasks {
		if e.state.Tasks[i].LinkedQuestID == questID {
			return &e.state.Tasks[i]
		}
	}
	return nil
}

// generate calls the content generator under the configured timeout.
// A nil generator counts as a failure.
func (e *Engine) generate(ctx context.Context, req ContentRequest) (*GeneratedContent, error) {
	if e.gen == nil {
		return nil, errors.New("no content generator configured")
	}
	ctx, cancel := context.WithTimeout(ctx, e.genTimeout)
	defer cancel()

	type result struct {
		content *GeneratedContent
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := e.gen.GenerateQuestContent(ctx, req)
		ch <- result{content: c, err: err}
	}()

	var c *GeneratedContent
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		c = r.content
	case <-ctx.Done():
		return nil, fmt.Errorf("content generator: %w", ctx.Err())
	}
	if c == nil || strings.TrimSpace(c.Title) == "" {
		return nil, errors.New("generator returned empty content")
	}
	return c, nil
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", warnf(WarnInvalidInput, "title is required")
	}
	return t, nil
}

func zapWarning(w Warning) []zap.Field {
	return []zap.Field{zap.String("code", string(w.Code)), zap.String("message", w.Message)}
}
