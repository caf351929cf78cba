package survival

import (
	"time"

	"github.com/milk9111/survival/common"
	"github.com/oklog/ulid/v2"
)

// Session is the context of one run from StartSession until the scene
// transition. Guard flags live here so a new session starts clean.
type Session struct {
	ID         ulid.ULID
	Difficulty common.Difficulty
	StartedAt  time.Time

	elapsed  float64
	gameOver bool
	victory  bool
}

func newSession(tier common.Difficulty) *Session {
	return &Session{
		ID:         ulid.Make(),
		Difficulty: tier,
		StartedAt:  time.Now(),
	}
}

// Elapsed is the simulated match time in seconds.
func (s *Session) Elapsed() float64 {
	if s == nil {
		return 0
	}
	return s.elapsed
}

func (s *Session) GameOver() bool {
	return s != nil && s.gameOver
}

func (s *Session) Victory() bool {
	return s != nil && s.victory
}

// Ended reports whether play has stopped for good.
func (s *Session) Ended() bool {
	return s.GameOver() || s.Victory()
}
