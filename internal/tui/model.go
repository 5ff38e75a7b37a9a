package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

const feedSize = 5

type keyMap struct {
	Complete key.Binding
	Abandon  key.Binding
	CheckIn  key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Complete: key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c/space", "complete")),
		Abandon:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "abandon")),
		CheckIn:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "check in")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Complete, k.Abandon, k.CheckIn, k.Refresh, k.Quit}
}

// questItem wraps a quest for the list display
type questItem struct {
	q engine.Quest
}

func (i questItem) Title() string { return ui.QuestIcon(i.q.Type) + " " + i.q.Title }
func (i questItem) Description() string {
	if i.q.Type == engine.QuestPenalty {
		return fmt.Sprintf("penalty · complete before midnight · issued %s", i.q.ScopeDate)
	}
	return fmt.Sprintf("%s · rank %s · %d XP · %d gold", strings.ToLower(string(i.q.Type)), i.q.Difficulty, i.q.XPReward, i.q.GoldReward)
}
func (i questItem) FilterValue() string { return i.q.Title }

type boardModel struct {
	ctx  context.Context
	eng  *engine.Engine
	sink EventSink
	keys keyMap

	width  int
	height int

	player engine.Player
	quests list.Model

	feed    []string
	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player engine.Player
	quests []engine.Quest
	events []engine.Event
	err    error
}

type actionMsg struct {
	summary string
	events  []engine.Event
	err     error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, eng *engine.Engine, sink EventSink) boardModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	quests := list.New([]list.Item{}, delegate, 0, 0)
	quests.Title = "Quest Log"
	quests.SetShowStatusBar(false)
	quests.SetFilteringEnabled(false)
	quests.SetShowHelp(false)

	return boardModel{
		ctx:     ctx,
		eng:     eng,
		sink:    sink,
		keys:    defaultKeyMap(),
		quests:  quests,
		loading: true,
		lastLog: "System online.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(CleanupInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// loadCmd runs the periodic cleanup and reads a fresh view of the state.
func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.eng.RunCleanup(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		events, err := m.drain()
		return loadedMsg{
			player: m.eng.Player(),
			quests: openQuests(m.eng.Quests()),
			events: events,
			err:    err,
		}
	}
}

func (m boardModel) actionCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		summary, err := fn()
		events, sinkErr := m.drain()
		if err == nil {
			err = sinkErr
		}
		return actionMsg{summary: summary, events: events, err: err}
	}
}

func (m boardModel) drain() ([]engine.Event, error) {
	events := m.eng.DrainEvents()
	if m.sink == nil || len(events) == 0 {
		return events, nil
	}
	if err := m.sink(m.ctx, events); err != nil {
		return events, fmt.Errorf("append event log: %w", err)
	}
	return events, nil
}

func (m boardModel) completeCmd(q engine.Quest) tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.eng.CompleteQuest(m.ctx, q.ID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Completed %q: +%d XP, +%d gold", q.Title, res.XPAwarded, res.GoldAwarded), nil
	})
}

func (m boardModel) abandonCmd(q engine.Quest) tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.eng.AbandonQuest(m.ctx, q.ID)
		if err != nil {
			return "", err
		}
		if res.Immune {
			return fmt.Sprintf("Abandoned %q. Immunity absorbed the penalty.", q.Title), nil
		}
		return fmt.Sprintf("Abandoned %q. Penalty issued: %s", q.Title, res.Penalty.Title), nil
	})
}

func (m boardModel) checkInCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		res, err := m.eng.CheckIn(m.ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Checked in. Streak %d, ego death %d.", res.Streak, res.EgoDeathStreak), nil
	})
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.quests.SetSize(m.mainWidth(), m.listHeight())
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tick())
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		items := make([]list.Item, len(msg.quests))
		for i, q := range msg.quests {
			items[i] = questItem{q: q}
		}
		cmd := m.quests.SetItems(items)
		m.pushEvents(msg.events)
		return m, cmd
	case actionMsg:
		m.pushEvents(msg.events)
		if msg.err != nil {
			m.lastLog = ui.Warn.Render(msg.err.Error())
		} else {
			m.lastLog = msg.summary
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.CheckIn):
			return m, m.checkInCmd()
		case key.Matches(msg, m.keys.Complete):
			q, ok := m.selected()
			if !ok {
				m.lastLog = "Select a quest first."
				return m, nil
			}
			return m, m.completeCmd(q)
		case key.Matches(msg, m.keys.Abandon):
			q, ok := m.selected()
			if !ok {
				m.lastLog = "Select a quest first."
				return m, nil
			}
			return m, m.abandonCmd(q)
		}
	}
	var cmd tea.Cmd
	m.quests, cmd = m.quests.Update(msg)
	return m, cmd
}

func (m boardModel) selected() (engine.Quest, bool) {
	item, ok := m.quests.SelectedItem().(questItem)
	if !ok {
		return engine.Quest{}, false
	}
	return item.q, true
}

func (m *boardModel) pushEvents(events []engine.Event) {
	for _, ev := range events {
		m.feed = append(m.feed, ui.EventLine(ev))
	}
	if len(m.feed) > feedSize {
		m.feed = m.feed[len(m.feed)-feedSize:]
	}
}

// openQuests keeps incomplete quests, penalties first and then by type.
func openQuests(all []engine.Quest) []engine.Quest {
	var out []engine.Quest
	for _, q := range all {
		if !q.IsCompleted {
			out = append(out, q)
		}
	}
	order := map[engine.QuestType]int{
		engine.QuestPenalty:        0,
		engine.QuestBoss:           1,
		engine.QuestDaily:          2,
		engine.QuestSkillChallenge: 3,
		engine.QuestOptional:       4,
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order[out[i].Type] != order[out[j].Type] {
			return order[out[i].Type] < order[out[j].Type]
		}
		return out[i].Title < out[j].Title
	})
	return out
}

const sidebarWidth = 30

func (m boardModel) mainWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m boardModel) listHeight() int {
	h := m.height - feedSize - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, sidebarWidth))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return ui.Heading(ui.IconSystem, "SYSTEM.OS — loading…")
	}
	p := m.player
	bar := ui.ProgressBar(p.XP, p.XPToNextLevel, 30)
	return fmt.Sprintf("%s | Level %d | Rank %s | XP %d/%d %s | %s %d",
		ui.Heading(ui.IconSystem, "SYSTEM.OS"), p.Level, ui.RankText(p.Rank), p.XP, p.XPToNextLevel, bar, ui.IconGold, p.Gold)
}

func (m boardModel) renderSidebar() string {
	if m.loading {
		return "Stats\n\nLoading…"
	}
	p := m.player
	lines := []string{ui.H2.Render("Stats")}
	for _, s := range engine.AllStats {
		lines = append(lines, fmt.Sprintf("- %s %3d %s", s, p.Stats[s], ui.ProgressBar(p.StatProgress[s], 100, 10)))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Streak: %d", p.Streak))
	lines = append(lines, fmt.Sprintf("Ego death: %d", p.EgoDeathStreak))
	now := time.Now()
	active := 0
	for _, b := range p.ActiveBuffs {
		if b.IsActive(now) {
			active++
		}
	}
	lines = append(lines, fmt.Sprintf("Buffs: %d active, %d held", active, len(p.ActiveBuffs)))
	lines = append(lines, "")
	lines = append(lines, ui.H2.Render("Keys"))
	lines = append(lines, "- ↑/↓ or j/k: move")
	for _, b := range m.keys.bindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.quests.Items()) == 0 {
		return "Quest Log\n(no open quests)"
	}
	return m.quests.View()
}

func (m boardModel) renderFooter() string {
	return "\n" + strings.Join(m.feed, "\n") + "\n" + m.lastLog
}

// padRight pads by printable width so styled cells line up.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
