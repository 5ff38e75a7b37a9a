package engine

import (
	"fmt"
	"strings"
)

// ParseStat parses user input to a Stat.
// Supported: str, agi, int, vit, per and their long names.
func ParseStat(input string) (Stat, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "str", "strength":
		return StatSTR, nil
	case "agi", "agility":
		return StatAGI, nil
	case "int", "intelligence":
		return StatINT, nil
	case "vit", "vitality":
		return StatVIT, nil
	case "per", "perception":
		return StatPER, nil
	default:
		return "", fmt.Errorf("unknown stat %q", input)
	}
}

// ParseStats parses a comma separated stat list. Empty input yields nil.
func ParseStats(input string) ([]Stat, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	var out []Stat
	for _, part := range strings.Split(input, ",") {
		s, err := ParseStat(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseRank parses a rank letter. Empty input is rank E.
func ParseRank(input string) (Rank, error) {
	s := strings.TrimSpace(strings.ToUpper(input))
	if s == "" {
		return RankE, nil
	}
	r := Rank(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown rank %q (use E, D, C, B, A or S)", input)
	}
	return r, nil
}

// ParseTaskGroup parses a task group; empty input is OPTIONAL.
func ParseTaskGroup(input string) (TaskGroup, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "optional", "opt":
		return TaskGroupOptional, nil
	case "skill", "skill_protocol", "skill-protocol", "protocol":
		return TaskGroupSkillProtocol, nil
	default:
		return "", fmt.Errorf("unknown task group %q", input)
	}
}
