package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-lending/config"
	"library-lending/library"
	"library-lending/menu"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		noSeed    bool
		catalog   string
		logLevel  string
		guard     bool
		loanDays  int
		showMenu  bool
		cfgLoaded config.Config
	)

	cmd := &cobra.Command{
		Use:          "library",
		Short:        "In-memory library catalog and lending tracker",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags win over the environment when given explicitly.
			if cmd.Flags().Changed("no-seed") {
				cfg.Seed = !noSeed
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogPath = catalog
			}
			if cmd.Flags().Changed("log-level") {
				if cfg.LogLevel, err = config.ParseLevel(logLevel); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("guard-book-removal") {
				cfg.GuardBookRemoval = guard
			}
			if cmd.Flags().Changed("loan-days") {
				if loanDays <= 0 {
					return fmt.Errorf("--loan-days must be positive, got %d", loanDays)
				}
				cfg.LoanDays = loanDays
			}
			cfgLoaded = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			if !cmd.Flags().Changed("menu") {
				showMenu = interactive
			}
			return run(cfgLoaded, showMenu)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&noSeed, "no-seed", false, "start without the sample books and borrowers")
	f.StringVar(&catalog, "catalog", "", "CSV file (title,author,isbn,genre,quantity) to load at start")
	f.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.BoolVar(&guard, "guard-book-removal", false, "refuse to remove books that are still on loan")
	f.IntVar(&loanDays, "loan-days", library.DefaultLoanDays, "lending period in days")
	f.BoolVar(&showMenu, "menu", false, "print the option list before each prompt; detected from the terminal when unset")
	return cmd
}

func run(cfg config.Config, showMenu bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	history, err := library.NewHistory()
	if err != nil {
		return fmt.Errorf("open circulation history: %w", err)
	}
	defer history.Close()

	opts := []library.Option{
		library.WithLogger(logger),
		library.WithRecorder(history),
		library.WithLoanDays(cfg.LoanDays),
	}
	if cfg.GuardBookRemoval {
		opts = append(opts, library.WithGuardedBookRemoval())
	}
	lib := library.NewLibrary(opts...)

	if cfg.Seed {
		fmt.Println("Loading sample data...")
		if err := library.Seed(lib); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	if cfg.CatalogPath != "" {
		if err := loadCatalog(lib, cfg.CatalogPath, logger); err != nil {
			return err
		}
	}

	m := menu.New(lib, history, os.Stdin, os.Stdout)
	m.ShowMenu = showMenu
	return m.Run()
}

func loadCatalog(lib *library.Library, path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	report, err := library.ImportCatalog(lib, f)
	if err != nil {
		return err
	}
	for _, row := range report.Rows {
		if row.Err != nil {
			logger.Warn("catalog row skipped", "path", path, "line", row.Line, "isbn", row.ISBN, "err", row.Err)
		}
	}
	fmt.Printf("Loaded %d book(s) from %s (%d skipped).\n", report.Added(), path, report.Failed())
	return nil
}
