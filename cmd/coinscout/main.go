package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"coinScout/config"
	"coinScout/internal/adapters/binanceclient"
	"coinScout/internal/adapters/logger"
	"coinScout/internal/adapters/sqlite"
	"coinScout/internal/adapters/usercfg"
	"coinScout/internal/app"
	"coinScout/internal/ports"
)

const usage = `Usage: coinscout [-format text|yaml|csv] <command>

Commands:
  value     current value of every position and its 1 and 7 day trend
  progress  coin amount gained between consecutive buys
  ratios    adjusted ratios of the current coin against its counterparts
  next      prices at which the bot would jump to another coin
  panic     what stopping the bot now would involve
  history   latest trades
`

func main() {
	format := flag.String("format", formatText, "Output format: text, yaml or csv (history and progress only)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() != 1 || (*format != formatText && *format != formatYAML && *format != formatCSV) {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	if _, ok := commands[command]; !ok {
		flag.Usage()
		os.Exit(2)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger.Debug(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	code := run(context.Background(), cfg, appLogger, command, *format, os.Stdout)
	_ = appLogger.Sync()
	os.Exit(code)
}

// run wires the adapters, answers one command and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, appLogger *logger.ZapLogger, command, format string, out io.Writer) int {
	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		return fail(out, command, err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing database repository")
		}
	}()

	// 4. Initialize Price Oracle (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "Failed to initialize Binance client")
		return fail(out, command, err)
	}

	// 5. Initialize Application Service
	reports, err := app.NewReportService(cfg, appLogger, repo, binanceClient)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to initialize report service")
		return fail(out, command, err)
	}

	// 6. Answer the command
	result, err := commands[command](ctx, reports, cfg)
	if err != nil {
		return fail(out, command, err)
	}
	if err := render(out, format, result); err != nil {
		appLogger.Error(ctx, err, "Failed to render report", map[string]interface{}{"command": command})
		return 1
	}
	return 0
}

type commandFunc func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error)

var commands = map[string]commandFunc{
	"value": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		valuation, err := reports.Valuation(ctx)
		if err != nil {
			return nil, err
		}
		trend, err := reports.Trend(ctx)
		if err != nil {
			return nil, err
		}
		return valueReport{Valuation: valuation, Trend: trend}, nil
	},
	"progress": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		return reports.Progress(ctx)
	},
	"ratios": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		params, err := usercfg.Load(cfg.UserCfgPath)
		if err != nil {
			return nil, err
		}
		return reports.Ratios(ctx, params)
	},
	"next": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		params, err := usercfg.Load(cfg.UserCfgPath)
		if err != nil {
			return nil, err
		}
		return reports.Rotation(ctx, params)
	},
	"panic": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		params, err := usercfg.Load(cfg.UserCfgPath)
		if err != nil {
			return nil, err
		}
		return reports.Panic(ctx, params)
	},
	"history": func(ctx context.Context, reports *app.ReportService, cfg *config.Config) (interface{}, error) {
		return reports.History(ctx)
	},
}

// fail prints the stable message of err's failure kind and returns the exit code.
// The panic command always prints its disposition code first.
func fail(out io.Writer, command string, err error) int {
	kind := ports.KindOf(err)
	if command == "panic" {
		fmt.Fprintln(out, -1)
	}
	fmt.Fprintln(out, kind.Message())
	if hint := failureHint(command, kind); hint != "" {
		fmt.Fprintln(out, hint)
	}
	return 1
}

func failureHint(command string, kind ports.FailureKind) string {
	if kind == ports.KindDataUnavailable && (command == "ratios" || command == "next") {
		return "Make sure scout history logging is enabled in the trading bot."
	}
	return kind.Hint()
}
