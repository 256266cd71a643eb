package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bookindex/autocomplete/internal/autocomplete"
	"github.com/bookindex/autocomplete/internal/config"
	"github.com/bookindex/autocomplete/internal/core"
	"github.com/bookindex/autocomplete/internal/search"
	"github.com/bookindex/autocomplete/internal/styles"
	"github.com/bookindex/autocomplete/internal/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var configPath = flag.String("config", "", "path to config.yaml (default ~/.autocomplete/config.yaml)")
var endpointFlag = flag.String("endpoint", "", "base URL of the suggestion server")
var queryFlag = flag.String("q", "", "print suggestions for a single input value and exit")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `autocomplete - search books with server-side suggestions

USAGE:
  autocomplete [options]

MODES:
  autocomplete                Open the interactive search form
  autocomplete -q "dune pa"   Print suggestions for the last word and exit
  ... | autocomplete          Print suggestions for every input line

OPTIONS:
`

// errRequestFailed marks a suggestion request that failed for a reason
// other than cancellation.
var errRequestFailed = errors.New("suggestion request failed")

// errInterrupted is returned when the user aborts the search form.
var errInterrupted = errors.New("interrupted")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg := loadConfig()
	if *endpointFlag != "" {
		cfg.Endpoint = *endpointFlag
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new autocomplete session --------", zap.Any("args", os.Args))

	err = run(cfg, logger)

	if errors.Is(err, errInterrupted) {
		os.Exit(130)
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	// autocomplete -q "dune pa"
	if *queryFlag != "" {
		return runQuery(client, *queryFlag, os.Stdout, logger)
	}

	// autocomplete
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runInteractive(cfg, client, logger)
	}

	return runLines(client, os.Stdin, os.Stdout, os.Stderr, logger)
}

// loadConfig reads the config file, reporting non-fatal problems on stderr.
// The logger does not exist yet, since its level comes from the config.
func loadConfig() *config.Config {
	loader := config.NewLoader(nil)

	var result *config.LoadResult
	var err error
	if *configPath != "" {
		result, err = loader.LoadFromFile(*configPath)
	} else {
		result, err = loader.LoadDefaultConfigPath()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		return config.DefaultConfig()
	}

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, styles.ERROR("config: "+e.Error()))
	}
	return result.Config
}

func newClient(cfg *config.Config, logger *zap.Logger) (*suggest.HTTPClient, error) {
	client, err := suggest.NewHTTPClient(suggest.HTTPClientConfig{
		BaseURL: cfg.Endpoint,
		Timeout: cfg.Timeout,
		Logger:  logger.Named("suggest"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion client: %w", err)
	}
	return client, nil
}

// runQuery prints the suggestions for value's last term, one per line.
func runQuery(client suggest.Client, value string, w io.Writer, logger *zap.Logger) error {
	controller := autocomplete.New(autocomplete.Config{Client: client, Logger: logger})
	return printResult(w, controller.Run(value))
}

// runLines treats each line of r as an input value. A failed line is
// reported on errW and does not stop the rest.
func runLines(client suggest.Client, r io.Reader, w, errW io.Writer, logger *zap.Logger) error {
	controller := autocomplete.New(autocomplete.Config{Client: client, Logger: logger})

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !first {
			fmt.Fprintln(w)
		}
		first = false

		fmt.Fprintln(w, styles.QUERY("# "+line))
		if err := printResult(w, controller.Run(line)); err != nil {
			fmt.Fprintln(errW, styles.ERROR(err.Error()))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func printResult(w io.Writer, result autocomplete.Result) error {
	switch result.Kind {
	case autocomplete.ResultRequestFailed:
		return fmt.Errorf("%w: %w", errRequestFailed, result.Err)
	case autocomplete.ResultCancelled:
		return nil
	}

	for _, s := range result.Suggestions {
		fmt.Fprintf(w, "%s %s\t%s\n", styles.CATEGORY(s.Category+":"), s.Term, styles.QUERY(s.Query))
	}
	return nil
}

// runInteractive opens the search form and prints the submitted URL.
func runInteractive(cfg *config.Config, client suggest.Client, logger *zap.Logger) error {
	model := search.New(search.Config{
		Endpoint:   cfg.Endpoint,
		Client:     client,
		Prompt:     cfg.Prompt,
		MaxVisible: cfg.MaxVisible,
		Logger:     logger,
	})

	finalModel, err := tea.NewProgram(model, tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("search form failed: %w", err)
	}

	result := finalModel.(search.Model).Result()
	switch result.Type {
	case search.ResultSubmit:
		fmt.Println(styles.URL(result.URL))
		return nil
	case search.ResultInterrupt:
		return errInterrupted
	default:
		return nil
	}
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel := cfg.Level()
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Logs only go to file to avoid interfering with the Bubble Tea UI.
	// Use `tail -f ~/.autocomplete/autocomplete.log` to monitor them.
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}
