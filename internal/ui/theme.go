package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"systemos/internal/engine"
)

// SYSTEM.OS theme (CLI + TUI).

const (
	IconSystem  = "◈"
	IconQuest   = "📜"
	IconDaily   = "🔁"
	IconPenalty = "☠"
	IconBoss    = "🚪"
	IconSkill   = "🎯"
	IconDone    = "✅"
	IconLevel   = "⬆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconGold    = "🪙"
	IconShield  = "🛡"
	IconClock   = "⏳"
)

var (
	cPrimary = lipgloss.Color("39")  // system blue
	cAccent  = lipgloss.Color("45")  // cyan
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cPurple  = lipgloss.Color("135")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Epic  = lipgloss.NewStyle().Bold(true).Foreground(cPurple)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPrimary).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(lipgloss.Color("17"))

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeRankUp  = lipgloss.NewStyle().Bold(true).Foreground(cPurple).Render("RANK UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankText colors a rank letter by tier.
func RankText(r engine.Rank) string {
	switch r {
	case engine.RankS:
		return Gold.Render(string(r))
	case engine.RankA, engine.RankB:
		return Epic.Render(string(r))
	case engine.RankC, engine.RankD:
		return H2.Render(string(r))
	default:
		return Muted.Render(string(r))
	}
}

func QuestIcon(t engine.QuestType) string {
	switch t {
	case engine.QuestDaily:
		return IconDaily
	case engine.QuestPenalty:
		return IconPenalty
	case engine.QuestBoss:
		return IconBoss
	case engine.QuestSkillChallenge:
		return IconSkill
	default:
		return IconQuest
	}
}

// QuestStatus renders a quest's completion state.
func QuestStatus(q engine.Quest) string {
	switch {
	case q.IsCompleted:
		return Good.Render("done")
	case q.Type == engine.QuestPenalty:
		return Bad.Render("penalty")
	default:
		return Warn.Render("open")
	}
}

func BossStatus(s engine.BossStatus) string {
	switch s {
	case engine.BossAvailable:
		return Good.Render("available")
	case engine.BossActive:
		return Epic.Render("active")
	case engine.BossDefeated:
		return Gold.Render("defeated")
	default:
		return Muted.Render("locked")
	}
}

func TaskStatus(s engine.TaskStatus) string {
	switch s {
	case engine.TaskCompleted:
		return Good.Render("completed")
	case engine.TaskInProgress:
		return H2.Render("in progress")
	case engine.TaskMissed:
		return Bad.Render("missed")
	default:
		return Warn.Render("scheduled")
	}
}

// EventLine renders one engine event for the notification feed.
func EventLine(ev engine.Event) string {
	msg := ev.Message
	switch ev.Kind {
	case engine.EventLevelUp:
		return BadgeLevelUp + " " + msg
	case engine.EventRankUp:
		return BadgeRankUp + " " + msg
	case engine.EventPenaltyIssued, engine.EventPenaltyExpired, engine.EventTaskMissed:
		return Bad.Render(IconPenalty+" ") + msg
	case engine.EventWarning:
		return Warn.Render(IconWarn+" ") + msg
	case engine.EventImmunityUsed:
		return Good.Render(IconShield+" ") + msg
	case engine.EventBossDefeated, engine.EventBossUnlocked:
		return Gold.Render(IconBoss+" ") + msg
	case engine.EventMysteryBox:
		return Epic.Render(IconBox+" ") + msg
	case engine.EventSystemRepair:
		return Muted.Render(IconInfo + " " + msg)
	default:
		return Key.Render(IconSystem+" ") + msg
	}
}

// ProgressBar draws value/total as a fixed-width ASCII bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
