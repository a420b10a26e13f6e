package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dice-duel/audio"
	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/core"
	"github.com/lixenwraith/dice-duel/fight"
	"github.com/lixenwraith/dice-duel/match"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/platform"
	"github.com/lixenwraith/dice-duel/status"
	"github.com/lixenwraith/dice-duel/tui"
)

var (
	p1Flag    string
	p2Flag    string
	stageFlag string
)

var fightCmd = &cobra.Command{
	Use:   "fight",
	Short: "Play a match in the terminal",
	Long: `Play a match in the terminal.

Keys:
  space   roll both dice
  r       rematch after a match ends
  h d c   cycle max hp, damage, crit damage
  m s     cycle music and sfx volume
  0       reset fight settings to defaults
  q esc   quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFighterFlags(cmd)
		return runFight(cmd.Context())
	},
}

func init() {
	fightCmd.Flags().StringVar(&p1Flag, "p1", "", "left fighter (default from DICE_DUEL_P1)")
	fightCmd.Flags().StringVar(&p2Flag, "p2", "", "right fighter (default from DICE_DUEL_P2)")
	fightCmd.Flags().StringVar(&stageFlag, "stage", "", "stage name, empty for a bare arena")
	rootCmd.AddCommand(fightCmd)
}

func applyFighterFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("p1") {
		cfg.Player1 = p1Flag
	}
	if cmd.Flags().Changed("p2") {
		cfg.Player2 = p2Flag
	}
	if cmd.Flags().Changed("stage") {
		cfg.Stage = stageFlag
	}
}

func runFight(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	osFs := afero.NewOsFs()
	store, err := loadOptions(osFs)
	if err != nil {
		return err
	}

	reg := status.NewRegistry()
	logger := slog.Default()

	var sounds platform.SoundPlayer = platform.NopSound{}
	var music match.MusicPlayer
	if cfg.Audio {
		player := audio.NewPlayer(reg, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer player.Cleanup()
			sounds = player
			music = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterTerminal(screen)
	defer func() {
		core.RegisterTerminal(nil)
		screen.Fini()
	}()
	screen.Clear()

	clk := clock.NewReal()
	roll1, roll2 := fight.NewRollers(cfg.Seed)
	scene := tui.NewScene()

	m, err := match.New(match.Setup{
		Catalog:      cat,
		Player1:      cfg.Player1,
		Player2:      cfg.Player2,
		Stage:        cfg.Stage,
		Options:      store,
		Clock:        clk,
		UI:           scene,
		Sounds:       sounds,
		Music:        music,
		Roll1:        roll1,
		Roll2:        roll2,
		Status:       reg,
		Logger:       logger,
		StallTimeout: cfg.StallTimeout,
		DeathRule:    cfg.Rule(),
	})
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Engine.Start(); err != nil {
		return err
	}

	core.Go(func() {
		if err := options.Watch(ctx, store, osFs, cfg.OptionsFile, logger); err != nil {
			logger.Warn("options watch disabled", "error", err)
		}
	})

	app := tui.New(tui.Config{
		Screen:        screen,
		Match:         m,
		Scene:         scene,
		Options:       store,
		Sounds:        sounds,
		Clock:         clk,
		FrameInterval: cfg.FrameInterval,
		Logger:        logger,
	})
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
