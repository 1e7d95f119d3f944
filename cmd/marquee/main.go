package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/catalog/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion    bool
		resetShortlist bool
		configPath     string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&resetShortlist, "reset-shortlist", false, "delete the saved shortlist and exit")
	flag.StringVar(&configPath, "config", "", "config file (default ~/.config/marquee/config.yaml)")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configPath, resetShortlist); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, resetShortlist bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		logCloser = io.NopCloser(nil)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	// Open local storage
	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer db.Close()

	if resetShortlist {
		if err := db.Delete(service.ShortlistKey); err != nil {
			return fmt.Errorf("failed to reset shortlist: %w", err)
		}
		fmt.Println("✓ Shortlist cleared")
		return nil
	}

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, configPath, logger)
	}

	client := newClient(cfg, logger)
	catalogSvc := service.NewCatalogService(client, logger)

	shortlist := service.NewShortlist(db, logger)
	shortlist.Load()

	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	// One feed per browsing tab, both reporting to the TUI
	updates := make(chan tui.FeedUpdateMsg, 64)
	newFeed := func(tab tui.Tab, kind domain.ListKind) *service.Feed {
		pager := service.NewPager(catalogSvc, service.PagerOptions{
			StaleTime: cfg.Cache.StaleTime,
			GCTime:    cfg.Cache.GCTime,
			Logger:    logger,
			Observer:  tui.NewChannelObserver(tab, updates),
		})
		return service.NewFeed(pager, service.NewDebouncer(cfg.Cache.Debounce), kind, logger)
	}
	movies := newFeed(tui.TabMovies, domain.ListMovieNowPlaying)
	defer movies.Close()
	tv := newFeed(tui.TabTV, domain.ListTVAiringToday)
	defer tv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create TUI model
	model := tui.NewModel(ctx, catalogSvc, shortlist, launcher, movies, tv, updates)
	model.ImageBaseURL = cfg.Catalog.ImageBaseURL

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "shortlisted", shortlist.Len())
	return nil
}

func newClient(cfg *adapter.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, cfg.Catalog.Language,
		tmdb.WithLogger(logger),
		tmdb.WithTimeout(cfg.Catalog.Timeout),
		tmdb.WithRateLimit(cfg.Catalog.RateLimit, cfg.Catalog.Burst),
	)
}

// runSetupFlow asks for the catalog token when none is configured
func runSetupFlow(cfg *adapter.Config, configPath string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API read access token (v4).")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		// Prompt for token (hidden input)
		fmt.Print("Access token: ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}

		cfg.Catalog.Token = token
		err = verifyTokenWithSpinner(newClient(cfg, logger))
		if errors.Is(err, domain.ErrUnauthorized) {
			fmt.Println("✗ The catalog rejected this token. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			// Keep the token; the catalog may just be unreachable right now
			fmt.Printf("! Could not verify token: %v\n", err)
		}
		break
	}

	if err := adapter.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// verifyTokenWithSpinner fetches one list page with a visual spinner
func verifyTokenWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start verification in background
	go func() {
		_, err := client.List(ctx, domain.ListMoviePopular, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ Token accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
