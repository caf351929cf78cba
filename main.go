package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/prefabs"
	"github.com/milk9111/survival/survival"
)

func main() {
	difficulty := flag.String("difficulty", "normal", "difficulty tier: easy, normal, hard, insane")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload prefabs/ when content files change")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tier, err := common.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal(err)
	}

	content, err := prefabs.LoadContent()
	if err != nil {
		log.Fatalf("load content: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	controller := survival.NewController(content, rand.New(rand.NewSource(*seed)), logger)
	controller.SetDifficulty(tier)

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn("content watcher disabled", "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("survival")

	game := NewGame(controller, content, watcher, logger, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
