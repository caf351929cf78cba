package survival

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/ecs/entity"
	"github.com/milk9111/survival/ecs/system"
	"github.com/milk9111/survival/prefabs"
)

// Phase is the controller's top-level state. A wave and an intermission are
// never active together.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWave
	PhaseIntermission
	PhaseVictory
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWave:
		return "wave"
	case PhaseIntermission:
		return "intermission"
	case PhaseVictory:
		return "victory"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

const (
	defaultIntermission   = 45.0
	defaultMaxHealth      = 100.0
	defaultObjectiveTime  = 3.0
	defaultVictoryDelay   = 10.0
	defaultGameOverDelay  = 2.5
	defaultScene          = "MainMenu"
	defaultStarterWeapon  = "R-19"
	defaultSellValue      = 50
	spawnJitter           = 0.75
	objectiveWaveStarted  = "Wave %d started."
	objectiveIntermission = "Intermission started. Find the supply crate."
	objectiveCrateOpened  = "Supply crate opened."
	objectiveVictory      = "Boss defeated!"
	objectiveGameOver     = "You died!"
)

// Controller runs a survival session: it owns the world, sequences waves and
// intermissions, and is the single writer of coins, health and the alive
// count. Systems report through the world event queue, which Tick drains.
type Controller struct {
	logger *slog.Logger
	rng    *rand.Rand

	content *prefabs.Content
	rules   prefabs.SurvivalSpec
	tier    common.Difficulty

	world     *ecs.World
	scheduler *ecs.Scheduler
	weapons   *system.WeaponSystem
	ai        *system.EnemyAISystem
	player    ecs.Entity

	session *Session
	phase   Phase

	waveIndex int
	alive     int

	coins     int
	health    float64
	maxHealth float64
	owned     []string
	equipped  string

	intermissionRemaining float64
	crate                 ecs.Entity
	shopOpen              bool

	objective          string
	objectiveRemaining float64

	transitionScene     string
	transitionRemaining float64
	transitionReady     bool

	subscribers []func(Change)
}

func NewController(content *prefabs.Content, rng *rand.Rand, logger *slog.Logger) *Controller {
	if content == nil {
		content = &prefabs.Content{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:    logger,
		rng:       rng,
		content:   content,
		rules:     withDefaults(content.Survival),
		tier:      common.Normal,
		waveIndex: -1,
	}
}

func withDefaults(s prefabs.SurvivalSpec) prefabs.SurvivalSpec {
	if s.IntermissionDuration <= 0 {
		s.IntermissionDuration = defaultIntermission
	}
	if s.MaxHealth <= 0 {
		s.MaxHealth = defaultMaxHealth
	}
	if s.ObjectiveDuration <= 0 {
		s.ObjectiveDuration = defaultObjectiveTime
	}
	if s.VictoryDelay <= 0 {
		s.VictoryDelay = defaultVictoryDelay
	}
	if s.GameOverDelay <= 0 {
		s.GameOverDelay = defaultGameOverDelay
	}
	if s.VictoryScene == "" {
		s.VictoryScene = defaultScene
	}
	if s.GameOverScene == "" {
		s.GameOverScene = defaultScene
	}
	if s.HitCoinMax < s.HitCoinMin {
		s.HitCoinMin, s.HitCoinMax = s.HitCoinMax, s.HitCoinMin
	}
	if len(s.StarterWeapons) == 0 {
		s.StarterWeapons = []string{defaultStarterWeapon}
	}
	if s.DefaultWeapon == "" {
		s.DefaultWeapon = s.StarterWeapons[0]
	}
	if s.DefaultSellValue <= 0 {
		s.DefaultSellValue = defaultSellValue
	}
	return s
}

// SetDifficulty selects the tier used by the next StartSession.
func (c *Controller) SetDifficulty(tier common.Difficulty) {
	c.tier = tier
}

// ReloadContent swaps the authored tables. Enemies already alive keep their
// stats; later spawns, equips and purchases use the new tables.
func (c *Controller) ReloadContent(content *prefabs.Content) {
	if content == nil {
		return
	}
	c.content = content
	c.rules = withDefaults(content.Survival)
	if c.ai != nil {
		c.ai.SetProjectiles(content.Projectiles)
	}
	c.logger.Info("survival: content reloaded",
		"waves", len(content.Waves),
		"archetypes", len(content.Archetypes),
		"weapons", len(content.Weapons),
	)
}

// buildWorld replaces the world and every system that keeps per-world state,
// so nothing from a previous session survives.
func (c *Controller) buildWorld() {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	system.RegisterTracker(w)

	c.weapons = system.NewWeaponSystem(c.logger)
	c.ai = system.NewEnemyAISystem(c.rng, c.logger)
	c.ai.SetProjectiles(c.content.Projectiles)

	c.scheduler = ecs.NewScheduler(
		system.NewPlayerMoveSystem(),
		c.ai,
		system.NewNavSystem(),
		system.NewPhysicsSystem(),
		c.weapons,
		system.NewProjectileSystem(),
		system.NewSupplyCrateSystem(),
		system.NewTTLSystem(),
	)
	c.world = w
	c.player = 0

	player, err := entity.NewPlayer(w, c.rules.Player)
	if err != nil {
		c.logger.Error("survival: spawn player", "err", err)
		return
	}
	c.player = player
}

// Tick advances the session by dt seconds: systems first, then the event
// drain, then the controller's own timers.
func (c *Controller) Tick(dt float64) {
	if c.world == nil || dt <= 0 {
		return
	}

	if !c.session.Ended() {
		c.session.elapsed += dt
		c.world.Advance(dt)
		c.scheduler.Update(c.world)
		c.drainEvents()
		c.advanceIntermission(dt)
	}
	c.advanceObjective(dt)
	c.advanceTransition(dt)
}

func (c *Controller) drainEvents() {
	for _, evt := range c.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.PlayerDamaged:
			c.DamagePlayer(data.Amount)
		case ecs.EnemyHit:
			c.AwardHitCoins()
		case ecs.EnemyDestroyed:
			c.OnEnemyDestroyed(data.Reward)
		case ecs.CrateOpened:
			c.OpenShop(data.Crate)
		case ecs.CratePrompt:
			text := ""
			if data.Visible {
				text = data.Text
			}
			c.notify(ChangePrompt, text, 0)
		case ecs.AmmoChanged:
			if data.Weapon == c.equipped {
				c.notify(ChangeAmmo, c.AmmoText(), 0)
			}
		default:
			c.logger.Debug("survival: unhandled event", "type", evt.Type)
		}
	}
}

func (c *Controller) showObjective(message string) {
	c.objective = message
	c.objectiveRemaining = c.rules.ObjectiveDuration
	c.notify(ChangeObjective, message, 0)
}

func (c *Controller) advanceObjective(dt float64) {
	if c.objective == "" {
		return
	}
	c.objectiveRemaining -= dt
	if c.objectiveRemaining <= 0 {
		c.objective = ""
		c.objectiveRemaining = 0
		c.notify(ChangeObjective, "", 0)
	}
}

func (c *Controller) beginTransition(scene string, delay float64) {
	c.transitionScene = scene
	c.transitionRemaining = delay
	c.transitionReady = false
}

func (c *Controller) advanceTransition(dt float64) {
	if c.transitionScene == "" || c.transitionReady {
		return
	}
	c.transitionRemaining -= dt
	if c.transitionRemaining <= 0 {
		c.transitionRemaining = 0
		c.transitionReady = true
		c.logger.Info("survival: scene transition", "scene", c.transitionScene, "session", c.session.ID)
		c.notify(ChangeTransition, c.transitionScene, 0)
	}
}

// SetInput hands the player's input for the next tick to the world.
func (c *Controller) SetInput(in component.Input) {
	input, ok := ecs.Get(c.world, c.player, component.InputComponent.Kind())
	if !ok {
		return
	}
	*input = in
}

func (c *Controller) playerWeapon() (*component.Weapon, bool) {
	return ecs.Get(c.world, c.player, component.WeaponComponent.Kind())
}

func (c *Controller) World() *ecs.World              { return c.world }
func (c *Controller) Player() ecs.Entity             { return c.player }
func (c *Controller) Session() *Session              { return c.session }
func (c *Controller) Phase() Phase                   { return c.phase }
func (c *Controller) Coins() int                     { return c.coins }
func (c *Controller) Health() float64                { return c.health }
func (c *Controller) MaxHealth() float64             { return c.maxHealth }
func (c *Controller) AliveEnemies() int              { return c.alive }
func (c *Controller) ShopOpen() bool                 { return c.shopOpen }
func (c *Controller) Crate() ecs.Entity              { return c.crate }
func (c *Controller) Objective() string              { return c.objective }
func (c *Controller) EquippedWeapon() string         { return c.equipped }
func (c *Controller) IntermissionRemaining() float64 { return c.intermissionRemaining }
func (c *Controller) LastHit() system.HitResult {
	if c.weapons == nil {
		return system.HitResult{}
	}
	return c.weapons.LastHit
}

func (c *Controller) HealthFraction() float64 {
	if c.maxHealth <= 0 {
		return 0
	}
	return c.health / c.maxHealth
}

func (c *Controller) OwnedWeapons() []string {
	return slices.Clone(c.owned)
}

// WaveLabel renders e.g. "Robot Spiders (Wave 3/10)".
func (c *Controller) WaveLabel() string {
	label := "Wave"
	if c.waveIndex >= 0 && c.waveIndex < len(c.content.Waves) && c.content.Waves[c.waveIndex].Label != "" {
		label = c.content.Waves[c.waveIndex].Label
	}
	return fmt.Sprintf("%s (Wave %d/%d)", label, c.waveIndex+1, len(c.content.Waves))
}

// IntermissionText is the countdown line, empty outside intermissions.
func (c *Controller) IntermissionText() string {
	if c.phase != PhaseIntermission {
		return ""
	}
	return fmt.Sprintf("Next wave in %ds", int(math.Ceil(c.intermissionRemaining)))
}

func (c *Controller) AmmoText() string {
	wpn, ok := c.playerWeapon()
	if !ok {
		return "-/-"
	}
	return system.AmmoText(wpn)
}

// CratePrompt returns the shop gate's prompt, empty when hidden.
func (c *Controller) CratePrompt() string {
	crate, ok := ecs.Get(c.world, c.crate, component.SupplyCrateComponent.Kind())
	if !ok {
		return ""
	}
	return crate.Prompt
}

// Transition reports the scene to load once the end-of-session delay is over.
func (c *Controller) Transition() (string, bool) {
	return c.transitionScene, c.transitionReady
}
