package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/kudo/config"
	"github.com/pthm-cable/kudo/game"
)

// Tick caps for one scenario.
const (
	settleTicks = 600
	flightTicks = 1200
)

var errNeverLanded = errors.New("player never landed")

// Scenario is one scripted jump.
type Scenario struct {
	Name  string
	Right bool // hold right during the jump
}

// Scenarios are the jumps every evaluation measures.
var Scenarios = []Scenario{
	{Name: "standing"},
	{Name: "running", Right: true},
}

// Jump is what one scenario measured.
type Jump struct {
	Apex    float64 // pixels above the take-off position
	Airtime int     // ticks from take-off to landing
}

// tuneLayout is a wide flat field with two rows of ground.
func tuneLayout() []string {
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = strings.Repeat(".", 60)
	}
	rows[8] = strings.Repeat("g", 60)
	rows[9] = strings.Repeat("g", 60)
	return rows
}

// prepare returns a copy of base set up for jump scenarios.
func prepare(base *config.Config) *config.Config {
	cfg := *base
	cfg.Boss.Enabled = false
	cfg.Level.Goal = false
	cfg.Level.Layout = tuneLayout()
	return &cfg
}

// RunScenario builds a private game, lets the player settle, jumps once and
// measures the flight.
func RunScenario(cfg *config.Config, s Scenario) (Jump, error) {
	g, err := game.NewGame(game.Options{
		Seed:   1,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return Jump{}, err
	}
	defer g.Unload()

	for i := 0; i < settleTicks && !g.Grounded(); i++ {
		g.Step(game.Intent{})
	}
	// Grounded is sampled at the start of a step, so one more idle step
	// makes sure the player is resting.
	g.Step(game.Intent{})
	if !g.Grounded() {
		return Jump{}, fmt.Errorf("%s: %w before jumping", s.Name, errNeverLanded)
	}
	start, _ := g.PlayerPosition()

	g.Step(game.Intent{Up: true, Right: s.Right})
	var jump Jump
	left := false
	for i := 0; i < flightTicks; i++ {
		pos, ok := g.PlayerPosition()
		if !ok {
			return Jump{}, fmt.Errorf("%s: player gone", s.Name)
		}
		jump.Apex = max(jump.Apex, start.Y-pos.Y)
		jump.Airtime++

		g.Step(game.Intent{Right: s.Right})
		if !g.Grounded() {
			left = true
		} else if left {
			return jump, nil
		}
	}
	if !left {
		// Never took off.
		return Jump{}, nil
	}
	return Jump{}, fmt.Errorf("%s: %w after jumping", s.Name, errNeverLanded)
}

// RunAll measures every scenario in parallel, each on its own game.
func RunAll(ctx context.Context, cfg *config.Config) ([]Jump, error) {
	jumps := make([]Jump, len(Scenarios))
	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range Scenarios {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			j, err := RunScenario(cfg, s)
			if err != nil {
				return err
			}
			jumps[i] = j
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return jumps, nil
}
