package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dice-duel/clock"
	"github.com/lixenwraith/dice-duel/event"
	"github.com/lixenwraith/dice-duel/fight"
	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/match"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/status"
)

var (
	simMatches int
	simSpeed   float64
	simSeed    uint64
	simStats   bool
)

// simulateCmd plays matches without a terminal, printing the event feed
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run matches headless and print the fight log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFighterFlags(cmd)
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		store, err := loadOptions(afero.NewOsFs())
		if err != nil {
			return err
		}
		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed = simSeed
		}
		return runSimulation(cmd.Context(), cmd.OutOrStdout(), simulation{
			Catalog: cat,
			Options: store,
			Player1: cfg.Player1,
			Player2: cfg.Player2,
			Stage:   cfg.Stage,
			Matches: simMatches,
			Speed:   simSpeed,
			Seed:    seed,
			Stats:   simStats,
		})
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simMatches, "matches", 1, "number of matches to play")
	simulateCmd.Flags().Float64Var(&simSpeed, "speed", parameter.SimulationSpeed, "clock speed multiplier")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "dice seed (default from DICE_DUEL_SEED)")
	simulateCmd.Flags().BoolVar(&simStats, "stats", false, "print counters after the last match")
	simulateCmd.Flags().StringVar(&p1Flag, "p1", "", "left fighter (default from DICE_DUEL_P1)")
	simulateCmd.Flags().StringVar(&p2Flag, "p2", "", "right fighter (default from DICE_DUEL_P2)")
	simulateCmd.Flags().StringVar(&stageFlag, "stage", "", "stage name, empty for a bare arena")
	rootCmd.AddCommand(simulateCmd)
}

type simulation struct {
	Catalog          *manifest.Catalog
	Options          *options.Store
	Player1, Player2 string
	Stage            string
	Matches          int
	Speed            float64
	Seed             uint64
	Stats            bool
}

// headlessUI satisfies fight.UI with no display
type headlessUI struct{}

func (headlessUI) ShowRoundTrigger(bool) {}
func (headlessUI) ShowPostMatch(string)  {}

type feed struct {
	w     io.Writer
	match *match.Match
}

func runSimulation(ctx context.Context, w io.Writer, sim simulation) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if sim.Matches < 1 {
		return errors.New("simulate: matches must be at least 1")
	}
	if sim.Speed <= 0 {
		sim.Speed = parameter.SimulationSpeed
	}

	reg := status.NewRegistry()
	roll1, roll2 := fight.NewRollers(sim.Seed)
	m, err := match.New(match.Setup{
		Catalog:      sim.Catalog,
		Player1:      sim.Player1,
		Player2:      sim.Player2,
		Stage:        sim.Stage,
		Options:      sim.Options,
		Clock:        clock.NewScaled(clock.NewReal(), sim.Speed),
		UI:           headlessUI{},
		Roll1:        roll1,
		Roll2:        roll2,
		Status:       reg,
		Logger:       slog.Default(),
		StallTimeout: cfg.StallTimeout,
		DeathRule:    cfg.Rule(),
	})
	if err != nil {
		return err
	}
	defer m.Close()

	router := event.NewRouter[*feed](m.Events)
	router.Register(event.HandlerFunc[*feed]{
		Types: []event.EventType{
			event.EventDiceRevealed,
			event.EventOutcomeApplied,
			event.EventMatchEnded,
			event.EventRoundStalled,
		},
		Fn: printEvent,
	})
	out := &feed{w: w, match: m}

	if err := m.Engine.Start(); err != nil {
		return err
	}
	for n := 1; n <= sim.Matches; n++ {
		if n > 1 {
			if err := m.Engine.Rematch(ctx); err != nil {
				return err
			}
			router.DispatchAll(out)
		}
		fmt.Fprintf(w, "match %d: %s vs %s\n", n, m.DisplayName(match.P1), m.DisplayName(match.P2))
		for m.Engine.Phase() != fight.Ended {
			if m.Engine.Round() >= parameter.SimulationMaxRounds {
				fmt.Fprintf(w, "  no winner after %d rounds\n", m.Engine.Round())
				break
			}
			_, err := m.Engine.TriggerRound(ctx)
			router.DispatchAll(out)
			if err != nil && !errors.Is(err, fight.ErrStalled) {
				return err
			}
		}
	}

	if sim.Stats {
		snap := reg.Snapshot()
		keys := make([]string, 0, len(snap))
		for k := range snap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s=%s\n", k, snap[k])
		}
	}
	return nil
}

func printEvent(f *feed, ev event.FightEvent) {
	switch p := ev.Payload.(type) {
	case *event.RoundPayload:
		if ev.Type == event.EventDiceRevealed {
			fmt.Fprintf(f.w, "  round %d: %d vs %d\n", ev.Round, p.Roll1, p.Roll2)
			return
		}
		crit := ""
		if p.Crit {
			crit = " (crit)"
		}
		fmt.Fprintf(f.w, "  round %d: %s%s hp %d/%d\n", ev.Round, p.Outcome, crit, p.HP1, p.HP2)
	case *event.MatchPayload:
		fmt.Fprintf(f.w, "  %s wins in %d rounds\n", f.match.DisplayName(p.WinnerID), p.Rounds)
	case *event.StallPayload:
		fmt.Fprintf(f.w, "  round %d stalled in %s\n", ev.Round, p.Phase)
	}
}
