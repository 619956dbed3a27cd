// internal/sim/sim.go
//
// Simulation harness: plays many games with one strategy and reports how
// many turns they took.
//
// Responsibilities:
//   - Pick secrets (random, seeded, or every code of the space once).
//   - Play games on a bounded worker pool.
//   - Aggregate mean/min/max turns, a turn histogram and time per game.
//
// Strategies are shared between workers, so they must be safe for
// concurrent use; both solver strategies are.

package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/mastermind/internal/code"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
)

var ErrNoGames = errors.New("sim: nothing to play")

// Config describes one simulation run.
type Config struct {
	Space      *code.Space
	Strategy   game.Strategy
	Games      int       // number of random games; ignored with AllSecrets
	AllSecrets bool      // play every code of the space once
	Workers    int       // concurrent games, at least 1
	MaxTurns   int       // per-game turn limit, 0 for none
	Seed       int64     // non-zero makes secret selection reproducible
	Progress   io.Writer // progress bar destination, nil for none
	Logger     zerolog.Logger
}

// Result is the outcome of one game.
type Result struct {
	GameID  string
	Secret  code.Code
	Turns   int
	Won     bool
	Elapsed time.Duration
}

// Report aggregates a run.
type Report struct {
	Games     int
	Won       int
	MeanTurns float64
	MinTurns  int
	MaxTurns  int
	Histogram map[int]int   // turns -> games
	Played    time.Duration // sum of per-game time
	Wall      time.Duration
	Results   []Result
}

// PerGame is the mean time spent on one game.
func (r *Report) PerGame() time.Duration {
	if r.Games == 0 {
		return 0
	}
	return r.Played / time.Duration(r.Games)
}

// TurnCounts lists the histogram keys in ascending order.
func (r *Report) TurnCounts() []int {
	keys := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Run plays the configured games and aggregates the results.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Space == nil || cfg.Strategy == nil {
		return nil, errors.New("sim: space and strategy are required")
	}
	secrets, err := pickSecrets(cfg)
	if err != nil {
		return nil, err
	}
	if len(secrets) == 0 {
		return nil, ErrNoGames
	}
	workers := max(cfg.Workers, 1)

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(secrets),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("playing"),
			progressbar.OptionShowCount(),
		)
	} else {
		bar = progressbar.DefaultSilent(int64(len(secrets)))
	}

	start := time.Now()
	results := make([]Result, len(secrets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, secret := range secrets {
		g.Go(func() error {
			res, err := playOne(gctx, cfg, secret)
			if err != nil {
				return fmt.Errorf("secret %s: %w", secret, err)
			}
			results[i] = res
			cfg.Logger.Debug().
				Str("game", res.GameID).
				Str("secret", secret.String()).
				Int("turns", res.Turns).
				Bool("won", res.Won).
				Dur("elapsed", res.Elapsed).
				Msg("game finished")
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	rep := summarize(results)
	rep.Wall = time.Since(start)
	cfg.Logger.Info().
		Int("games", rep.Games).
		Int("won", rep.Won).
		Float64("mean_turns", rep.MeanTurns).
		Int("min_turns", rep.MinTurns).
		Int("max_turns", rep.MaxTurns).
		Dur("per_game", rep.PerGame()).
		Msg("simulation finished")
	return rep, nil
}

func playOne(ctx context.Context, cfg Config, secret code.Code) (Result, error) {
	start := time.Now()
	g, err := game.New(cfg.Space, secret, game.WithMaxTurns(cfg.MaxTurns))
	if err != nil {
		return Result{}, err
	}
	turns, err := g.Play(ctx, cfg.Strategy)
	if err != nil {
		return Result{}, err
	}
	return Result{GameID: g.ID, Secret: secret, Turns: turns, Won: g.Won, Elapsed: time.Since(start)}, nil
}

func pickSecrets(cfg Config) ([]code.Code, error) {
	if cfg.AllSecrets {
		return cfg.Space.All(), nil
	}
	if cfg.Games < 0 {
		return nil, fmt.Errorf("sim: negative game count %d", cfg.Games)
	}
	out := make([]code.Code, cfg.Games)
	if cfg.Seed != 0 {
		r := rand.New(rand.NewSource(cfg.Seed))
		for i := range out {
			out[i] = palette.RandomCodeFrom(r, cfg.Space)
		}
		return out, nil
	}
	for i := range out {
		c, err := palette.RandomCode(cfg.Space)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func summarize(results []Result) *Report {
	rep := &Report{Games: len(results), Histogram: map[int]int{}, Results: results}
	total := 0
	for i, r := range results {
		total += r.Turns
		rep.Played += r.Elapsed
		rep.Histogram[r.Turns]++
		if r.Won {
			rep.Won++
		}
		if i == 0 || r.Turns < rep.MinTurns {
			rep.MinTurns = r.Turns
		}
		if r.Turns > rep.MaxTurns {
			rep.MaxTurns = r.Turns
		}
	}
	if len(results) > 0 {
		rep.MeanTurns = float64(total) / float64(len(results))
	}
	return rep
}
