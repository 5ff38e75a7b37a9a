package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"systemos/internal/engine"
)

const systemPrompt = `You are the System, a terse game master that turns a person's real-life habits into quests.
Reply with one JSON object and nothing else:
{"title": string, "description": string, "xpReward": integer, "goldReward": integer, "difficulty": "E"|"D"|"C"|"B"|"A"|"S"}
Titles are at most 60 characters. Descriptions are one or two sentences describing a concrete physical or mental task.`

func userPrompt(req engine.ContentRequest) string {
	var b strings.Builder
	switch req.Kind {
	case engine.ContentPenalty:
		b.WriteString("Create a PENALTY quest: a short, unpleasant but safe task the player must finish today.\n")
	case engine.ContentBoss:
		b.WriteString("Create a BOSS for a gate: a named adversary standing for a long-term challenge.\n")
	default:
		fmt.Fprintf(&b, "Create content of kind %q.\n", req.Kind)
	}
	fmt.Fprintf(&b, "Player level: %d, rank: %s. Difficulty: %s.\n", req.PlayerLevel, req.PlayerRank, req.Difficulty)
	if req.Context != "" {
		fmt.Fprintf(&b, "Context: %s\n", req.Context)
	}
	return b.String()
}

// Parse decodes a model reply into content. Replies wrapped in code fences or
// surrounded by prose are accepted as long as they hold one JSON object.
func Parse(raw string, req engine.ContentRequest) (*engine.GeneratedContent, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("reply holds no JSON object: %q", truncate(raw, 80))
	}

	var c engine.GeneratedContent
	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if c.Title == "" {
		return nil, errors.New("reply has no title")
	}
	if len([]rune(c.Title)) > 80 {
		c.Title = truncate(c.Title, 80)
	}
	c.Difficulty = engine.Rank(strings.ToUpper(string(c.Difficulty)))
	if !c.Difficulty.IsValid() {
		c.Difficulty = req.Difficulty
	}
	if c.XPReward < 0 {
		c.XPReward = 0
	}
	if c.GoldReward < 0 {
		c.GoldReward = 0
	}
	return &c, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
