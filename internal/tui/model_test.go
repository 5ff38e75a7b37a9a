package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"systemos/internal/engine"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestBoard(t *testing.T) (boardModel, *engine.Engine, *[]engine.Event) {
	t.Helper()
	eng := engine.New(engine.Options{
		UserID:   "hunter",
		Clock:    fixedClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		Location: time.UTC,
		Rand:     rand.New(rand.NewSource(7)),
	}, nil)
	var logged []engine.Event
	sink := func(ctx context.Context, events []engine.Event) error {
		logged = append(logged, events...)
		return nil
	}
	m := newBoardModel(context.Background(), eng, sink)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = step(t, m, m.loadCmd()())
	return m, eng, &logged
}

func step(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(boardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestBoardLoadsOpenQuests(t *testing.T) {
	m, eng, _ := newTestBoard(t)
	if m.loading {
		t.Fatalf("board still loading")
	}
	if got, want := len(m.quests.Items()), len(eng.Quests()); got != want {
		t.Fatalf("items=%d, want %d", got, want)
	}
	view := m.View()
	if !strings.Contains(view, "SYSTEM.OS") || !strings.Contains(view, "Quest Log") {
		t.Fatalf("view missing header or quest log:\n%s", view)
	}
}

func TestBoardCompleteSelectedQuest(t *testing.T) {
	m, eng, logged := newTestBoard(t)
	q, ok := m.selected()
	if !ok {
		t.Fatalf("no quest selected")
	}

	_, cmd := m.Update(keyPress("c"))
	if cmd == nil {
		t.Fatalf("complete key returned no command")
	}
	msg, ok := cmd().(actionMsg)
	if !ok {
		t.Fatalf("complete command returned %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("complete: %v", msg.err)
	}
	m = step(t, m, msg)
	if !strings.Contains(m.lastLog, q.Title) {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
	if eng.Player().XP == 0 {
		t.Fatalf("no XP awarded")
	}
	if len(*logged) == 0 {
		t.Fatalf("events were not handed to the sink")
	}
}

func TestBoardCheckInTwiceWarns(t *testing.T) {
	m, _, _ := newTestBoard(t)
	first := m.checkInCmd()().(actionMsg)
	if first.err != nil {
		t.Fatalf("check in: %v", first.err)
	}
	second := m.checkInCmd()().(actionMsg)
	if second.err == nil {
		t.Fatalf("second check in should warn")
	}
	m = step(t, m, second)
	if !strings.Contains(m.lastLog, "already checked in") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestOpenQuestsPutsPenaltiesFirst(t *testing.T) {
	quests := []engine.Quest{
		{ID: "1", Type: engine.QuestOptional, Title: "Read"},
		{ID: "2", Type: engine.QuestDaily, Title: "Run", IsCompleted: true},
		{ID: "3", Type: engine.QuestPenalty, Title: "Cold shower"},
		{ID: "4", Type: engine.QuestDaily, Title: "Push-ups"},
	}
	got := openQuests(quests)
	if len(got) != 3 || got[0].ID != "3" || got[1].ID != "4" || got[2].ID != "1" {
		t.Fatalf("order=%+v", got)
	}
}
