package survival

import (
	"math"
	"strconv"
)

// AddCoins credits amount, flooring the balance at zero for negative amounts.
func (c *Controller) AddCoins(amount int) {
	next := max(0, c.coins+amount)
	if next == c.coins {
		return
	}
	c.coins = next
	c.notify(ChangeCoins, strconv.Itoa(c.coins), float64(c.coins))
}

// TrySpendCoins deducts amount only if the balance covers it.
func (c *Controller) TrySpendCoins(amount int) bool {
	if amount < 0 || c.coins < amount {
		return false
	}
	if amount == 0 {
		return true
	}
	c.coins -= amount
	c.notify(ChangeCoins, strconv.Itoa(c.coins), float64(c.coins))
	return true
}

// AwardHitCoins pays a random bonus in [HitCoinMin, HitCoinMax] for a landed hit.
func (c *Controller) AwardHitCoins() int {
	lo, hi := c.rules.HitCoinMin, c.rules.HitCoinMax
	if hi <= 0 {
		return 0
	}
	amount := lo + c.rng.Intn(hi-lo+1)
	c.AddCoins(amount)
	return amount
}

// DamagePlayer applies damage from any source. Once health reaches zero the
// game-over latch holds and further damage is ignored.
func (c *Controller) DamagePlayer(amount float64) {
	if amount <= 0 || c.session == nil || c.session.gameOver {
		return
	}
	c.health = math.Max(0, c.health-amount)
	c.notify(ChangeHealth, "", c.HealthFraction())
	c.notify(ChangeFeedback, "", amount)

	if c.health <= 0 {
		c.gameOver()
	}
}

func (c *Controller) gameOver() {
	c.session.gameOver = true
	c.phase = PhaseGameOver
	c.showObjective(objectiveGameOver)
	c.beginTransition(c.rules.GameOverScene, c.rules.GameOverDelay)
	c.logger.Info("survival: player died",
		"session", c.session.ID,
		"wave", c.waveIndex+1,
		"elapsed", c.session.elapsed,
	)
}

// HealMissingHealth buys back all missing health at costPerPoint per point,
// rounding partial points up. It reports the coins spent; on insufficient
// funds nothing changes.
func (c *Controller) HealMissingHealth(costPerPoint int) (int, bool) {
	if c.session.Ended() {
		return 0, false
	}
	missing := int(math.Ceil(c.maxHealth - c.health))
	if missing <= 0 {
		return 0, false
	}
	cost := missing * max(1, costPerPoint)
	if !c.TrySpendCoins(cost) {
		return 0, false
	}
	c.health = c.maxHealth
	c.notify(ChangeHealth, "", 1)
	return cost, true
}
