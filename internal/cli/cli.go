package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/loadday/internal/config"
	"github.com/pfrederiksen/loadday/internal/credentials"
	"github.com/pfrederiksen/loadday/internal/logger"
	"github.com/pfrederiksen/loadday/internal/puzzle"
	"github.com/pfrederiksen/loadday/internal/scraper"
	"github.com/pfrederiksen/loadday/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// now is replaced in tests
var now = time.Now

// options holds the flag values of one command tree
type options struct {
	configFile string
	envFile    string
	day        string
	year       int
	dir        string
	tokenFile  string
	baseURL    string
	format     string
	verbose    bool

	cfg config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "loadday",
		Short: "Fetch today's puzzle into a notebook",
		Long: `Fetches the day's puzzle input and description and writes them to a notebook.

The first run of a day saves inputs/DD.txt and creates DD.ipynb with the part 1
description and a cell that loads the input. Later runs fill in the part 2
description.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", config.DefaultConfigFile, "Path to JSON config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Path to .env file")
	flags.StringVar(&opts.day, "day", "", "Day of the month (default: today)")
	flags.IntVar(&opts.year, "year", 0, "Puzzle year (default: config or current year)")
	flags.StringVar(&opts.dir, "dir", "", "Directory holding notebooks and inputs/")
	flags.StringVar(&opts.tokenFile, "token-file", "", "File containing the session token")
	flags.StringVar(&opts.baseURL, "base-url", "", "Puzzle website base URL")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newStatusCmd(opts))

	return cmd
}

// resolve loads the configuration and applies flag overrides
func (o *options) resolve(cmd *cobra.Command) error {
	level := logger.LevelInfo
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.NewConsole(level, os.Stderr))

	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(o.configFile, now())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.Year = o.year
	}
	if flags.Changed("dir") {
		cfg.Dir = o.dir
	}
	if flags.Changed("token-file") {
		cfg.TokenFile = o.tokenFile
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	o.cfg = cfg
	return nil
}

// puzzle returns the puzzle selected by --day, or today's
func (o *options) puzzle() (puzzle.Puzzle, error) {
	day := puzzle.DayFromDate(now())
	if o.day != "" {
		d, err := puzzle.ParseDay(o.day)
		if err != nil {
			return puzzle.Puzzle{}, err
		}
		day = d
	}
	return puzzle.New(o.cfg.Year, day)
}

// runLoad is the main command logic
func runLoad(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := opts.puzzle()
	if err != nil {
		return err
	}

	token, err := credentials.ReadToken(opts.cfg.TokenFile)
	if err != nil {
		logger.Error("Cannot read session token", logger.Fields{"path": opts.cfg.TokenFile}, err)
		return err
	}

	store, err := storage.New(opts.cfg.Dir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc, err := scraper.New(scraper.Options{
		BaseURL:   opts.cfg.BaseURL,
		Token:     token,
		UserAgent: opts.cfg.UserAgent,
		Timeout:   opts.cfg.TimeoutDuration(),
	})
	if err != nil {
		return fmt.Errorf("initializing scraper: %w", err)
	}

	logger.Debug("Loading puzzle", logger.Fields{
		"puzzle":   p.String(),
		"dir":      store.Dir(),
		"base_url": opts.cfg.BaseURL,
	})

	state, err := Load(ctx, sc, store, p)
	if err != nil {
		return err
	}

	logger.Info("Notebook "+string(state), logger.Fields{
		"puzzle":   p.String(),
		"notebook": store.NotebookPath(p.Day),
	})
	logger.Debug("Run metrics", logger.GetMetricsSnapshot())
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
