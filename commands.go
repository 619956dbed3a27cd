// commands.go
//
// Command line interface.
//   mastermind play [secret]     play one game and print every turn
//   mastermind simulate          play many games and report turn statistics
//   mastermind analyze           exhaustive worst-case analysis of a position
//
// Configuration comes from config.Load (defaults, --config YAML, env), then
// any flag given explicitly on the command line.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/sim"
	"github.com/robalobadob/mastermind/internal/solver"
	"github.com/robalobadob/mastermind/internal/trace"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	cfg        config.Config
	space      *code.Space

	// flag values, applied only when the flag was set
	colors    int
	length    int
	strategy  string
	fullSpace bool
	workers   int
	maxTurns  int
	seed      int64
	logLevel  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "mastermind",
		Short:         "Solve the Mastermind code-breaking game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.IntVar(&a.colors, "colors", 0, "number of palette colors")
	pf.IntVar(&a.length, "length", 0, "code length")
	pf.StringVar(&a.strategy, "strategy", "", "guess strategy: heuristic or exhaustive")
	pf.BoolVar(&a.fullSpace, "full-space", false, "heuristic guesses from every code, not just candidates")
	pf.IntVar(&a.workers, "workers", 0, "concurrent workers")
	pf.IntVar(&a.maxTurns, "max-turns", 0, "turn limit per game (0 for none)")
	pf.Int64Var(&a.seed, "seed", 0, "seed for reproducible secrets and opening guesses")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, ...)")

	root.AddCommand(a.playCmd(), a.simulateCmd(), a.analyzeCmd())
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("colors") {
		cfg.Colors = a.colors
	}
	if flags.Changed("length") {
		cfg.Length = a.length
	}
	if flags.Changed("strategy") {
		cfg.Strategy = a.strategy
	}
	if flags.Changed("full-space") {
		cfg.FullSpace = a.fullSpace
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("max-turns") {
		cfg.MaxTurns = a.maxTurns
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	space, err := cfg.Space()
	if err != nil {
		return err
	}
	a.cfg, a.space = cfg, space
	log.Debug().
		Int("colors", cfg.Colors).
		Int("length", cfg.Length).
		Str("strategy", cfg.Strategy).
		Bool("full_space", cfg.FullSpace).
		Msg("config loaded")
	return nil
}

// newStrategy builds the configured strategy; workers bounds the
// exhaustive search's root parallelism.
func (a *app) newStrategy(workers int, tracer solver.Tracer) game.Strategy {
	if a.cfg.Strategy == config.StrategyExhaustive {
		opts := []solver.ExhaustiveOption{solver.WithWorkers(workers)}
		if tracer != nil {
			opts = append(opts, solver.WithTracer(tracer))
		}
		return solver.NewExhaustive(opts...)
	}
	opts := []solver.HeuristicOption{solver.WithFullSpace(a.cfg.FullSpace)}
	if a.cfg.Seed != 0 {
		opts = append(opts, solver.WithRand(rand.New(rand.NewSource(a.cfg.Seed))))
	}
	return solver.NewHeuristic(opts...)
}

func (a *app) playCmd() *cobra.Command {
	var useDaily bool
	cmd := &cobra.Command{
		Use:   "play [secret]",
		Short: "Play one game against a given, daily or random secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var secret code.Code
			switch {
			case len(args) == 1:
				c, err := a.space.Palette().ParseCode(args[0])
				if err != nil {
					return err
				}
				secret = c
			case useDaily:
				c, err := daily.Secret(time.Now(), a.cfg.DailySalt, a.space)
				if err != nil {
					return err
				}
				secret = c
			}

			g, err := game.New(a.space, secret, game.WithMaxTurns(a.cfg.MaxTurns))
			if err != nil {
				return err
			}
			log.Info().Str("game", g.ID).Str("strategy", a.cfg.Strategy).Msg("new game")
			return playVerbose(ctx, cmd.OutOrStdout(), g, a.newStrategy(a.cfg.Workers, nil))
		},
	}
	cmd.Flags().BoolVar(&useDaily, "daily", false, "play the secret of the day")
	return cmd
}

// playVerbose runs g to completion, printing each turn.
func playVerbose(ctx context.Context, out io.Writer, g *game.Game, strategy game.Strategy) error {
	p := g.Space().Palette()
	fmt.Fprintf(out, "secret: %s (%s)\n", g.Secret, p.Format(g.Secret))
	for !g.Finished {
		guess, err := strategy.NextGuess(ctx, g.Candidates())
		if err != nil {
			return err
		}
		score, state, err := g.ApplyGuess(guess)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%2d. %s => %s => %d left (%s)\n", len(g.Turns), guess, score, g.Candidates().Size(), state)
	}
	if g.Won {
		fmt.Fprintf(out, "solved in %d turns\n", len(g.Turns))
	} else {
		fmt.Fprintf(out, "gave up after %d turns\n", len(g.Turns))
	}
	return nil
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		games    int
		all      bool
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many games and report turn statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if cmd.Flags().Changed("games") {
				a.cfg.Games = games
			}
			cfg := sim.Config{
				Space:      a.space,
				Strategy:   a.newStrategy(1, nil),
				Games:      a.cfg.Games,
				AllSecrets: all,
				Workers:    a.cfg.Workers,
				MaxTurns:   a.cfg.MaxTurns,
				Seed:       a.cfg.Seed,
				Logger:     log.Logger,
			}
			if progress {
				cfg.Progress = cmd.ErrOrStderr()
			}
			rep, err := sim.Run(ctx, cfg)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 10, "number of random games")
	cmd.Flags().BoolVar(&all, "all", false, "play every possible secret once")
	cmd.Flags().BoolVar(&progress, "progress", true, "show a progress bar")
	return cmd
}

func printReport(out io.Writer, rep *sim.Report) {
	fmt.Fprintf(out, "games:      %d (%d won)\n", rep.Games, rep.Won)
	fmt.Fprintf(out, "mean turns: %.4f\n", rep.MeanTurns)
	fmt.Fprintf(out, "min/max:    %d/%d\n", rep.MinTurns, rep.MaxTurns)
	fmt.Fprintf(out, "per game:   %v\n", rep.PerGame())
	fmt.Fprintf(out, "wall time:  %v\n", rep.Wall)
	for _, turns := range rep.TurnCounts() {
		fmt.Fprintf(out, "  %2d turns: %d\n", turns, rep.Histogram[turns])
	}
}

func (a *app) analyzeCmd() *cobra.Command {
	var (
		turns      []string
		guess      string
		traceDepth int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Find the worst-case optimal guess for a position",
		Long: `Runs the exhaustive search on the candidates left after the given turns
(all codes when none are given). With --guess, reports the worst case for that
guess instead of searching for the best one.`,
		Example: "  mastermind analyze --colors 4 --length 3 --turn ACB=1B2W",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			set, err := narrow(a.space, turns)
			if err != nil {
				return err
			}
			opts := []solver.ExhaustiveOption{solver.WithWorkers(a.cfg.Workers)}
			if traceDepth >= 0 {
				opts = append(opts, solver.WithTracer(trace.New(log.Logger, trace.WithMaxDepth(traceDepth))))
			}
			search := solver.NewExhaustive(opts...)
			out := cmd.OutOrStdout()

			start := time.Now()
			if guess != "" {
				g, err := a.space.Palette().ParseCode(guess)
				if err != nil {
					return err
				}
				n, err := search.PathLength(ctx, set, g)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d candidates, guess %s: worst case %d more turns\n", set.Size(), g, n)
			} else {
				d, err := search.BestGuess(ctx, set)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d candidates, best guess %s: worst case %d more turns\n", set.Size(), d.Guess, d.Turns)
				fmt.Fprintf(out, "heuristic worst split for %s: %d\n", d.Guess, solver.WorstCase(set, d.Guess))
			}
			log.Info().
				Dur("elapsed", time.Since(start)).
				Int("memo_entries", search.Memo().Len()).
				Msg("analysis finished")
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&turns, "turn", nil, "observed turn GUESS=SCORE, e.g. ACB=1B2W (repeatable)")
	cmd.Flags().StringVar(&guess, "guess", "", "evaluate this guess instead of searching")
	cmd.Flags().IntVar(&traceDepth, "trace-depth", -1, "log search progress down to this depth (debug level)")
	return cmd
}

// narrow applies observed GUESS=SCORE turns to the full candidate set.
func narrow(space *code.Space, turns []string) (*candidates.Set, error) {
	set := candidates.Initial(space)
	for _, t := range turns {
		g, s, ok := strings.Cut(t, "=")
		if !ok {
			return nil, fmt.Errorf("turn %q: want GUESS=SCORE", t)
		}
		guess, err := space.Palette().ParseCode(g)
		if err != nil {
			return nil, fmt.Errorf("turn %q: %w", t, err)
		}
		score, err := code.ParseScore(s)
		if err != nil {
			return nil, fmt.Errorf("turn %q: %w", t, err)
		}
		if set, err = set.Filter(guess, score); err != nil {
			return nil, fmt.Errorf("turn %q: %w", t, err)
		}
	}
	if set.IsEmpty() {
		return nil, fmt.Errorf("no code matches the given turns: %w", candidates.ErrEmptyCandidateSet)
	}
	return set, nil
}
