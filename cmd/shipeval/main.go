// Command shipeval runs one SHIP mystery-shopper evaluation trial
// against a target model and persists the result.
//
// Usage:
//
//	shipeval run --scenario scenario.json --target openrouter:openai/gpt-4-turbo
//	shipeval version
//	shipeval help
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shayo/shipeval/config"
	"github.com/shayo/shipeval/orchestrator"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runTrial(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runTrial(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	scenarioPath := fs.String("scenario", "", "Path to scenario JSON file (required)")
	target := fs.String("target", "", "Target spec, provider:model_name (required)")
	agentModel := fs.String("agent-model", "", "Agent model spec for the pipeline's own LLM calls")
	judges := fs.Int("judges", 0, "Number of independent Verifier instances")
	seed := fs.Int64("seed", 0, "Random seed for reproducibility")
	outputDir := fs.String("output-dir", "", "Directory runs are written under")
	runID := fs.String("run-id", "", "Override the generated run id")
	fs.Parse(args)

	if *scenarioPath == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "--scenario and --target are required")
		fs.Usage()
		os.Exit(1)
	}

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("starting shipeval",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	opts := orchestrator.RunOptions{
		AgentModel: firstNonEmpty(*agentModel, cfg.Run.AgentModel),
		Judges:     firstNonZeroInt(*judges, cfg.Run.Judges),
		Seed:       firstNonZeroInt64(*seed, cfg.Run.Seed),
		OutputDir:  firstNonEmpty(*outputDir, cfg.Run.OutputDir),
		RunID:      *runID,
	}

	o := orchestrator.New(logger)
	result, err := o.Run(context.Background(), *scenarioPath, *target, opts)
	if err != nil {
		logger.Error("trial failed to start", zap.Error(err))
		os.Exit(1)
	}

	if result.Metadata.Aborted {
		logger.Warn("trial aborted", zap.String("trial_id", result.TrialID), zap.String("reason", result.Metadata.AbortReason))
	} else {
		logger.Info("trial completed", zap.String("trial_id", result.TrialID))
	}
	// Every trial outcome - complete or aborted - is persisted, so a
	// non-zero exit code is reserved for startup validation failures.
	os.Exit(0)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroInt64(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func printVersion() {
	fmt.Printf("shipeval %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`shipeval - SHIP mystery-shopper evaluation harness

Usage:
  shipeval <command> [options]

Commands:
  run       Run one evaluation trial
  version   Show version information
  help      Show this help message

Options for 'run':
  --scenario <path>     Path to scenario JSON file (required)
  --target <spec>       Target provider:model_name (required)
  --agent-model <spec>  Agent model spec for the pipeline's own LLM calls
  --judges <n>          Number of independent Verifier instances
  --seed <n>            Random seed
  --output-dir <path>   Directory runs are written under
  --run-id <id>         Override the generated run id
  --config <path>       Path to a config file (YAML)

Examples:
  shipeval run --scenario scenarios/ma_referral.json --target fake:perfect
  shipeval run --scenario scenarios/ma_referral.json --target openrouter:openai/gpt-4-turbo --judges 3`)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	encoding := cfg.Format
	if encoding == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoding = "json"
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
