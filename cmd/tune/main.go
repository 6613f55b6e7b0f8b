// Package main tunes gravity and jump strength so a jump reaches a target
// apex and airtime, using Nelder-Mead over headless jump scenarios.
//
// Usage: go run ./cmd/tune -output out -apex 150 -airtime 40
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/kudo/config"
)

// EvalRow is one line of tune_log.csv.
type EvalRow struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	Gravity    float64 `csv:"gravity"`
	JumpFactor float64 `csv:"jump_factor"`
	Apex       float64 `csv:"apex"`
	Airtime    int     `csv:"airtime"`
}

// tuner owns one optimization run and remembers the best candidate.
type tuner struct {
	ctx    context.Context
	params *ParamVector
	eval   *FitnessEvaluator
	log    io.Writer
	logger *slog.Logger

	evals    int
	best     float64
	bestRaw  []float64
	maxEvals int
}

// objective is the NelderMead cost. x is in unit coordinates.
func (t *tuner) objective(x []float64) float64 {
	raw := t.params.Clamp(t.params.Denormalize(x))
	fit := t.eval.Evaluate(t.ctx, raw)
	t.evals++
	if t.bestRaw == nil || fit < t.best {
		t.best, t.bestRaw = fit, raw
	}

	row := EvalRow{Eval: t.evals, Fitness: fit, Gravity: raw[0], JumpFactor: raw[1]}
	if jumps := t.eval.LastJumps(); len(jumps) > 0 {
		row.Apex, row.Airtime = jumps[0].Apex, jumps[0].Airtime
	}
	if err := appendRow(t.log, row, t.evals == 1); err != nil {
		t.logger.Warn("eval row not written", "eval", t.evals, "error", err)
	}
	t.logger.Info("eval",
		"n", t.evals,
		"of", t.maxEvals,
		"fitness", fit,
		"gravity", raw[0],
		"jump_factor", raw[1],
		"apex", row.Apex,
		"airtime", row.Airtime,
		"best", t.best,
	)
	return fit
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	apex := flag.Float64("apex", 150, "Target jump apex in pixels")
	airtime := flag.Float64("airtime", 40, "Target airtime in ticks")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger, *configPath, *outputDir, Target{Apex: *apex, Airtime: *airtime}, *maxEvals); err != nil {
		logger.Error("tune failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, outputDir string, target Target, maxEvals int) error {
	if outputDir == "" {
		return errors.New("-output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	base := config.Cfg()

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating eval log: %w", err)
	}
	defer logFile.Close()

	params := NewParamVector()
	t := &tuner{
		ctx:      context.Background(),
		params:   params,
		eval:     NewFitnessEvaluator(params, base, target),
		log:      logFile,
		logger:   logger,
		best:     failedFitness,
		maxEvals: maxEvals,
	}

	logger.Info("tuning", "params", params.Names(), "apex", target.Apex, "airtime", target.Airtime)
	start := time.Now()
	_, err = optimize.Minimize(
		optimize.Problem{Func: t.objective},
		params.Normalize(params.ExtractFromConfig(base)),
		&optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.NelderMead{},
	)
	if err != nil {
		logger.Warn("optimizer stopped", "error", err)
	}
	if t.bestRaw == nil {
		return errors.New("no candidate evaluated")
	}

	attrs := []any{"evals", t.evals, "elapsed", time.Since(start).Round(time.Second), "fitness", t.best}
	for i, name := range params.Names() {
		attrs = append(attrs, name, t.bestRaw[i])
	}
	logger.Info("done", attrs...)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(bestCfg, t.bestRaw)
	out := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	logger.Info("best config saved", "path", out)
	return nil
}

// appendRow writes one eval row, with the header only for the first.
func appendRow(w io.Writer, row EvalRow, header bool) error {
	rows := []EvalRow{row}
	if header {
		return gocsv.Marshal(&rows, w)
	}
	return gocsv.MarshalWithoutHeaders(&rows, w)
}
