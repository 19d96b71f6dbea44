// Command timetable-solve runs the constraint-satisfaction timetable
// solver against a JSON problem file.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-core/internal/engine"
	"github.com/noah-isme/timetable-core/internal/enginemetrics"
	"github.com/noah-isme/timetable-core/pkg/config"
	apperrors "github.com/noah-isme/timetable-core/pkg/errors"
	"github.com/noah-isme/timetable-core/pkg/logger"
)

var (
	problemPath string
	optionsPath string
	outputPath  string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logr.Sync()

	root := &cobra.Command{
		Use:   "timetable-solve",
		Short: "Constraint-satisfaction timetable solver",
	}
	root.PersistentFlags().StringVar(&problemPath, "problem", "", "path to a JSON Problem file (required)")
	root.PersistentFlags().StringVar(&optionsPath, "options", "", "path to a JSON Options file (optional, overrides config defaults)")
	root.AddCommand(newSolveCmd(cfg, logr), newValidateCmd(logr), newBenchCmd(cfg, logr))

	if err := root.Execute(); err != nil {
		appErr := apperrors.FromError(err)
		logr.Error("command failed", zap.String("code", appErr.Code), zap.Error(appErr))
		os.Exit(1)
	}
}

func newSolveCmd(cfg *config.Config, logr *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a timetable problem and print the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, options, err := loadInputs(cfg)
			if err != nil {
				return err
			}

			var recorder *enginemetrics.Recorder
			if cfg.MetricsEnabled {
				recorder = enginemetrics.New()
				go serveMetrics(cfg.MetricsPort, recorder, logr)
			}

			start := time.Now()
			result, err := engine.Solve(problem, options, recorder)
			if err != nil {
				return fmt.Errorf("solve failed: %w", err)
			}
			logr.Info("solve finished",
				zap.String("run_id", result.Stats.RunID),
				zap.Duration("elapsed", time.Since(start)),
				zap.Int("attempts", result.Stats.Attempts),
				zap.Int("placements", result.Stats.Placements),
				zap.Bool("timed_out", result.Stats.TimedOut),
			)

			return writeOutput(result)
		},
	}
	cmd.Flags().StringVar(&outputPath, "out", "", "path to write the JSON result (default: stdout)")
	return cmd
}

func newValidateCmd(logr *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a problem file without solving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := loadProblem()
			if err != nil {
				return err
			}
			if err := engine.ValidateProblem(&problem); err != nil {
				return err
			}
			logr.Info("problem is structurally valid")
			return nil
		},
	}
}

func newBenchCmd(cfg *config.Config, logr *zap.Logger) *cobra.Command {
	var runs int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the solver repeatedly and report timing/quality statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, options, err := loadInputs(cfg)
			if err != nil {
				return err
			}
			for i := 0; i < runs; i++ {
				start := time.Now()
				result, err := engine.Solve(problem, options, nil)
				if err != nil {
					return fmt.Errorf("bench run %d failed: %w", i+1, err)
				}
				logr.Info("bench run",
					zap.Int("run", i+1),
					zap.Duration("elapsed", time.Since(start)),
					zap.Float64("objective", result.Stats.BestObjective),
					zap.Int("mrv_dead_ends", result.Stats.MRVDeadEnds),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 5, "number of repeated solves")
	return cmd
}

func loadProblem() (engine.Problem, error) {
	if problemPath == "" {
		return engine.Problem{}, fmt.Errorf("--problem is required")
	}
	data, err := os.ReadFile(problemPath)
	if err != nil {
		return engine.Problem{}, fmt.Errorf("reading problem file: %w", err)
	}
	var problem engine.Problem
	if err := json.Unmarshal(data, &problem); err != nil {
		return engine.Problem{}, fmt.Errorf("parsing problem file: %w", err)
	}
	return problem, nil
}

func loadInputs(cfg *config.Config) (engine.Problem, engine.Options, error) {
	problem, err := loadProblem()
	if err != nil {
		return engine.Problem{}, engine.Options{}, err
	}

	options := cfg.DefaultOptions
	if optionsPath != "" {
		data, err := os.ReadFile(optionsPath)
		if err != nil {
			return engine.Problem{}, engine.Options{}, fmt.Errorf("reading options file: %w", err)
		}
		if err := json.Unmarshal(data, &options); err != nil {
			return engine.Problem{}, engine.Options{}, fmt.Errorf("parsing options file: %w", err)
		}
	}
	return problem, options, nil
}

func writeOutput(result engine.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if outputPath == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func serveMetrics(port int, recorder *enginemetrics.Recorder, logr *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	addr := fmt.Sprintf(":%d", port)
	logr.Info("serving solver metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logr.Error("metrics server stopped", zap.Error(err))
	}
}
