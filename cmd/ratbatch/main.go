package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/robottwo/ratbatch/internal/batch"
	"github.com/robottwo/ratbatch/internal/config"
	"github.com/robottwo/ratbatch/internal/core"
	"github.com/robottwo/ratbatch/internal/history"
	"github.com/robottwo/ratbatch/internal/styles"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var mode = flag.String("mode", string(batch.ModeExpression), "batch to run: expr or sum")
var inputPath = flag.String("i", "", "expression input file, - for stdin (overrides config)")
var outputPath = flag.String("o", "", "output file, - for stdout (overrides config)")
var configPath = flag.String("config", "", "use a custom config file instead of ~/.config/ratbatch/config.yaml")
var historyCount = flag.Int("history", 0, "print the last n journal entries and exit")
var runFilter = flag.String("run", "", "print the journal entries of one run and exit")
var deleteEntry = flag.Uint("delete-history", 0, "delete one journal entry by id and exit")
var clearHistory = flag.Bool("clear-history", false, "delete all journal entries and exit")
var noHistory = flag.Bool("no-history", false, "do not record this run in the journal")
var cleanLogs = flag.Bool("clean-logs", false, "remove all log files and exit")

var helpFlag bool
var versionFlag bool

func init() {
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")

	// Register custom zstd sink for compressed logging
	if err := zap.RegisterSink("zstd", newCompressedSink); err != nil {
		panic(fmt.Sprintf("failed to register zstd sink: %v", err))
	}
}

// main is the entry point of ratbatch.
//
// In expr mode every line of the input file is evaluated left to right and
// written to the output as "<line> = <n>/<d> = <float>". In sum mode every
// listed file is read as rational literals and its sum is written as
// "<file>: <n>/<d> = <float>". Failing lines and files are written as error
// entries and do not stop the batch.
func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if helpFlag {
		printUsage()
		return
	}

	if *cleanLogs {
		if err := core.CleanLogFiles(); err != nil {
			fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to clean log files: %v", err)))
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	logger.Info("-------- new ratbatch run --------", zap.Any("args", os.Args))

	if *historyCount > 0 || *runFilter != "" || *deleteEntry > 0 || *clearHistory {
		if err := runHistoryCommand(os.Stdout); err != nil {
			logger.Error("history command failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
			os.Exit(1)
		}
		return
	}

	var journal batch.Journal
	var runID string
	if cfg.History && !*noHistory {
		historyManager, err := history.NewHistoryManager(core.HistoryFile())
		if err != nil {
			// The journal is optional, continue without it
			logger.Warn("failed to open history journal", zap.Error(err))
		} else {
			defer func() {
				if err := historyManager.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "failed to close history manager: %v\n", err)
				}
			}()
			runID = history.NewRunID()
			logger.Info("journaling run", zap.String("run_id", runID))
			journal = historyManager.Journal(runID)
		}
	}

	runner := batch.New(
		batch.WithLogger(logger),
		batch.WithJournal(journal),
		batch.WithPrecision(cfg.Precision),
	)

	summary, destination, err := run(runner, cfg)
	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}

	logger.Info("batch finished",
		zap.String("mode", *mode),
		zap.Int("units", summary.Units),
		zap.Int("failed", summary.Failed))

	if destination != "-" && term.IsTerminal(int(os.Stderr.Fd())) {
		printSummary(summary, destination, runID)
	}
}

func loadConfig() (config.Config, error) {
	path := *configPath
	if path == "" {
		path = core.ConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		// An explicit config file must exist
		return config.Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if *inputPath != "" {
		cfg.Expressions.Input = *inputPath
	}
	if *outputPath != "" {
		cfg.Expressions.Output = *outputPath
		cfg.Sum.Output = *outputPath
	}
	if files := lo.Compact(flag.Args()); len(files) > 0 {
		cfg.Sum.Files = files
	}
	return cfg, nil
}

// run executes the batch selected by -mode and returns where its output went.
func run(runner *batch.Runner, cfg config.Config) (batch.Summary, string, error) {
	switch batch.Mode(*mode) {
	case batch.ModeExpression:
		in, out := cfg.Expressions.Input, cfg.Expressions.Output
		if in != "-" && out != "-" {
			summary, err := runner.RunExpressionFile(in, out)
			return summary, out, err
		}

		reader := os.Stdin
		if in != "-" {
			f, err := os.Open(in)
			if err != nil {
				return batch.Summary{}, out, err
			}
			defer func() {
				_ = f.Close()
			}()
			reader = f
		}
		if out == "-" {
			summary, err := runner.RunExpressions(reader, os.Stdout)
			return summary, out, err
		}
		summary, err := runner.RunExpressionsTo(reader, out)
		return summary, out, err

	case batch.ModeSum:
		if cfg.Sum.Output == "-" {
			summary, err := runner.RunListSums(cfg.Sum.Files, os.Stdout)
			return summary, "-", err
		}
		summary, err := runner.RunListSumFile(cfg.Sum.Files, cfg.Sum.Output)
		return summary, cfg.Sum.Output, err
	}

	return batch.Summary{}, "", fmt.Errorf("unknown mode %q, expected %q or %q", *mode, batch.ModeExpression, batch.ModeSum)
}

func runHistoryCommand(w io.Writer) error {
	historyManager, err := history.NewHistoryManager(core.HistoryFile())
	if err != nil {
		return fmt.Errorf("failed to open history journal: %w", err)
	}
	defer func() {
		_ = historyManager.Close()
	}()

	return historyCommand(w, historyManager)
}

// historyCommand runs the journal operation selected by the history flags.
func historyCommand(w io.Writer, historyManager *history.HistoryManager) error {
	if *clearHistory {
		return historyManager.ResetHistory()
	}

	if *deleteEntry > 0 {
		if err := historyManager.DeleteEntry(*deleteEntry); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted history entry %d.\n", *deleteEntry)
		return nil
	}

	var entries []history.HistoryEntry
	var err error
	if *runFilter != "" {
		entries, err = historyManager.GetEntriesByRun(*runFilter)
	} else {
		entries, err = historyManager.GetRecentEntries(*historyCount)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history entries found.")
		return nil
	}

	if err := history.PrintEntriesTable(w, entries); err != nil {
		return err
	}
	if *runFilter != "" {
		return nil
	}

	total, err := historyManager.GetTotalCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nShowing %s of %s entries\n", humanize.Comma(int64(len(entries))), humanize.Comma(total))
	return nil
}

func printSummary(summary batch.Summary, destination, runID string) {
	unit := "lines"
	if batch.Mode(*mode) == batch.ModeSum {
		unit = "files"
	}

	line := fmt.Sprintf("%s %s: %s ok",
		humanize.Comma(int64(summary.Units)),
		unit,
		humanize.Comma(int64(summary.Succeeded())),
	)
	if summary.Failed > 0 {
		line += ", " + styles.ERROR(humanize.Comma(int64(summary.Failed))+" failed")
	} else {
		line = styles.SUCCESS(line)
	}
	fmt.Fprintf(os.Stderr, "%s %s %s\n", line, styles.HINT("→"), styles.HINT(destination))
	if runID != "" {
		fmt.Fprintln(os.Stderr, styles.HINT("run "+runID+" (ratbatch -run "+runID+")"))
	}
}

func printUsage() {
	fmt.Println(styles.HEADER("Usage:") + " ratbatch [flags] [file ...]")
	fmt.Println("\nExact rational arithmetic over text files.")
	fmt.Println()

	fmt.Println(styles.HEADER("Options:"))

	// Group aliases like -h and -help together
	printed := make(map[string]bool)

	flag.VisitAll(func(f *flag.Flag) {
		if printed[f.Name] {
			return
		}

		aliases := []string{f.Name}
		flag.VisitAll(func(p *flag.Flag) {
			if p.Name == f.Name {
				return
			}
			if p.Usage == f.Usage {
				aliases = append(aliases, p.Name)
				printed[p.Name] = true
			}
		})
		printed[f.Name] = true

		flagStr := strings.Join(lo.Map(aliases, func(name string, _ int) string { return "-" + name }), ", ")

		argName, usage := flag.UnquoteUsage(f)
		if argName != "" {
			flagStr += " <" + argName + ">"
		}

		fmt.Printf("  %-28s %s\n", flagStr, usage)
	})

	fmt.Println()
	fmt.Println(styles.HEADER("Modes:"))
	fmt.Printf("  %-28s %s\n", "expr", "evaluate each input line left to right, e.g. 3 + 1/2 * 2 = 7/1")
	fmt.Printf("  %-28s %s\n", "sum", "sum the rational literals of each file given as arguments")
}

func initializeLogger(cfg config.Config) (*zap.Logger, error) {
	logLevel, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if err := core.RotateLogFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to rotate log files: %v\n", err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		"zstd://" + core.LogFile(),
	}
	return loggerConfig.Build()
}
