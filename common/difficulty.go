package common

import (
	"fmt"
	"strings"
)

// Difficulty is one of the four session tiers.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	Insane
)

// DifficultyTiers is the number of tiers every per-tier table must carry.
const DifficultyTiers = 4

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	case Insane:
		return "insane"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Index clamps d into the table range.
func (d Difficulty) Index() int {
	if d < Easy {
		return int(Easy)
	}
	if d > Insane {
		return int(Insane)
	}
	return int(d)
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "", "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	case "insane":
		return Insane, nil
	default:
		return Normal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// TierValue picks d's entry from a per-tier table, falling back to def when
// the table is short.
func TierValue(table []float64, d Difficulty, def float64) float64 {
	i := d.Index()
	if i >= len(table) {
		return def
	}
	return table[i]
}
