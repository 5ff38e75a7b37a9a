package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"systemos/internal/engine"
)

// CleanupInterval is how often the open board settles buffs and checks for
// midnight.
const CleanupInterval = time.Minute

// EventSink receives the events drained after every board action.
type EventSink func(ctx context.Context, events []engine.Event) error

func RunBoard(ctx context.Context, eng *engine.Engine, sink EventSink, out io.Writer) error {
	m := newBoardModel(ctx, eng, sink)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
