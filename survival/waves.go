package survival

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/entity"
	"github.com/milk9111/survival/prefabs"
)

// StartSession resets the economy and loadout, builds a fresh world and
// starts the first wave.
func (c *Controller) StartSession() {
	c.buildWorld()
	c.session = newSession(c.tier)

	c.phase = PhaseIdle
	c.waveIndex = -1
	c.alive = 0
	c.coins = 0
	c.maxHealth = c.rules.MaxHealth
	c.health = c.maxHealth
	c.intermissionRemaining = 0
	c.crate = 0
	c.shopOpen = false
	c.objective = ""
	c.objectiveRemaining = 0
	c.transitionScene = ""
	c.transitionRemaining = 0
	c.transitionReady = false

	c.owned = c.owned[:0]
	for _, name := range c.rules.StarterWeapons {
		if !c.owns(name) {
			c.owned = append(c.owned, name)
		}
	}
	c.equipped = ""
	if !c.EquipWeapon(c.rules.DefaultWeapon) {
		c.logger.Warn("survival: default weapon unavailable", "weapon", c.rules.DefaultWeapon)
	}

	c.logger.Info("survival: session started",
		"session", c.session.ID,
		"difficulty", c.session.Difficulty,
		"waves", len(c.content.Waves),
	)
	c.notify(ChangeCoins, "0", 0)
	c.notify(ChangeHealth, "", 1)
	c.StartNextWave()
}

// StartNextWave spawns the next authored wave. It returns false when no wave
// remains or the session has ended.
func (c *Controller) StartNextWave() bool {
	if c.world == nil || c.session.Ended() {
		return false
	}
	if c.waveIndex+1 >= len(c.content.Waves) {
		return false
	}

	c.endIntermission()
	c.waveIndex++
	wave := c.content.Waves[c.waveIndex]

	c.phase = PhaseWave
	c.alive = 0

	c.notify(ChangeWave, c.WaveLabel(), float64(c.waveIndex+1))
	c.showObjective(fmt.Sprintf(objectiveWaveStarted, c.waveIndex+1))

	for _, group := range wave.Spawns {
		c.spawnGroup(group)
	}
	if wave.BossWave && wave.Boss != "" {
		c.spawnEnemy(wave.Boss, wave.BossKillReward)
	}

	c.logger.Info("survival: wave started",
		"wave", c.waveIndex+1,
		"label", wave.Label,
		"alive", c.alive,
	)
	if c.alive == 0 {
		c.logger.Warn("survival: wave spawned no enemies", "wave", c.waveIndex+1, "label", wave.Label)
		c.completeWave()
	}
	return true
}

func (c *Controller) spawnGroup(group prefabs.EnemySpawnSpec) {
	for n := max(0, group.Count); n > 0; n-- {
		if !c.spawnEnemy(group.Archetype, group.KillReward) {
			return
		}
	}
}

// spawnEnemy adds one enemy at a random spawn point. The alive count only
// grows for enemies that were actually built.
func (c *Controller) spawnEnemy(archetype string, reward int) bool {
	arch, ok := c.content.Archetype(archetype)
	if !ok {
		c.logger.Warn("survival: unknown archetype", "archetype", archetype, "wave", c.waveIndex+1)
		return false
	}
	points := c.rules.SpawnPoints
	if len(points) == 0 {
		c.logger.Warn("survival: no enemy spawn points", "archetype", archetype, "wave", c.waveIndex+1)
		return false
	}

	point := points[c.rng.Intn(len(points))]
	jx, jy := common.RandomInCircle(c.rng, spawnJitter)
	_, err := entity.NewEnemy(c.world, entity.EnemyParams{
		Archetype:  arch,
		Difficulty: c.content.Difficulty,
		Tier:       c.session.Difficulty,
		Position:   cp.Vector{X: point.X + jx, Y: point.Y + jy},
		KillReward: reward,
		Now:        c.world.Now(),
	})
	if err != nil {
		c.logger.Error("survival: spawn enemy", "archetype", archetype, "err", err)
		return false
	}
	c.alive++
	return true
}

// OnEnemyDestroyed is the tracker callback. It is ignored outside a wave.
func (c *Controller) OnEnemyDestroyed(reward int) {
	if c.phase != PhaseWave {
		return
	}
	c.alive = max(0, c.alive-1)
	if reward > 0 {
		c.AddCoins(reward)
	}
	if c.alive == 0 {
		c.completeWave()
	}
}

func (c *Controller) completeWave() {
	c.logger.Info("survival: wave complete", "wave", c.waveIndex+1)
	if c.waveIndex >= len(c.content.Waves)-1 {
		c.victory()
		return
	}
	c.startIntermission()
}

func (c *Controller) victory() {
	if c.session.Ended() {
		return
	}
	c.session.victory = true
	c.phase = PhaseVictory
	c.showObjective(objectiveVictory)
	c.beginTransition(c.rules.VictoryScene, c.rules.VictoryDelay)
	c.logger.Info("survival: victory", "session", c.session.ID, "elapsed", c.session.elapsed)
}

func (c *Controller) startIntermission() {
	c.phase = PhaseIntermission
	c.intermissionRemaining = c.rules.IntermissionDuration
	c.spawnCrate()
	c.showObjective(objectiveIntermission)
	c.notify(ChangeIntermission, c.IntermissionText(), c.intermissionRemaining)
}

func (c *Controller) spawnCrate() {
	points := c.rules.CrateSpawnPoints
	if len(points) == 0 {
		c.logger.Warn("survival: no supply crate spawn points")
		return
	}
	point := points[c.rng.Intn(len(points))]
	crate, err := entity.NewSupplyCrate(c.world, c.rules.Crate, cp.Vector{X: point.X, Y: point.Y})
	if err != nil {
		c.logger.Error("survival: spawn supply crate", "err", err)
		return
	}
	c.crate = crate
}

func (c *Controller) advanceIntermission(dt float64) {
	if c.phase != PhaseIntermission {
		return
	}
	before := math.Ceil(c.intermissionRemaining)
	c.intermissionRemaining -= dt
	if c.intermissionRemaining <= 0 {
		c.intermissionRemaining = 0
		c.StartNextWave()
		return
	}
	if math.Ceil(c.intermissionRemaining) != before {
		c.notify(ChangeIntermission, c.IntermissionText(), c.intermissionRemaining)
	}
}

// endIntermission closes the shop and removes the crate before a wave starts.
func (c *Controller) endIntermission() {
	if c.shopOpen {
		c.shopOpen = false
		c.notify(ChangeShop, "", 0)
	}
	if c.crate != 0 {
		ecs.DestroyEntity(c.world, c.crate)
		c.crate = 0
		c.notify(ChangePrompt, "", 0)
	}
	if c.phase == PhaseIntermission {
		c.intermissionRemaining = 0
		c.notify(ChangeIntermission, "", 0)
	}
}
