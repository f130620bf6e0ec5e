package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/api/tbs"
	"github.com/AbdulAhadRauf/best-train-finder/internal/cache"
	"github.com/AbdulAhadRauf/best-train-finder/internal/config"
	"github.com/AbdulAhadRauf/best-train-finder/internal/notify"
	"github.com/AbdulAhadRauf/best-train-finder/internal/render"
	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
	"github.com/AbdulAhadRauf/best-train-finder/internal/server"
	"github.com/AbdulAhadRauf/best-train-finder/internal/watch"
)

var CLI struct {
	Config string `help:"Path to config file" default:"config.yaml" type:"path"`

	Search SearchCmd `cmd:"" default:"withargs" help:"Search trains once and print result cards"`
	Serve  ServeCmd  `cmd:"" help:"Serve the search API over HTTP"`
	Watch  WatchCmd  `cmd:"" help:"Re-run a search on an interval and notify when seats appear"`
}

// searchFlags are shared by the search and watch commands.
type searchFlags struct {
	From               string   `help:"Origin station code" required:""`
	To                 string   `help:"Destination station code" required:""`
	Date               string   `help:"Journey date (YYYY-MM-DD)" required:""`
	Classes            []string `help:"Booking classes to include" default:"CC,3A,3E"`
	Sort               string   `help:"Sort order" default:"cheapest" enum:"cheapest,fastest"`
	TimeWindow         string   `help:"Departure time window" default:"any" enum:"any,early-morning,morning,noon,evening,late-night"`
	MaxDurationHours   int      `help:"Drop journeys longer than this many hours (0 disables)" default:"0"`
	IncludeNearbyDates bool     `help:"Keep trains departing on adjacent dates"`
}

func (f searchFlags) query() (search.Query, error) {
	sortKey, err := search.ParseSortKey(f.Sort)
	if err != nil {
		return search.Query{}, err
	}
	window, err := search.ParseTimeWindow(f.TimeWindow)
	if err != nil {
		return search.Query{}, err
	}

	classes := make([]string, len(f.Classes))
	for i, c := range f.Classes {
		classes[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	return search.Query{
		From:               strings.ToUpper(strings.TrimSpace(f.From)),
		To:                 strings.ToUpper(strings.TrimSpace(f.To)),
		Date:               f.Date,
		Classes:            classes,
		SortBy:             sortKey,
		Window:             window,
		MaxDurationHours:   f.MaxDurationHours,
		IncludeNearbyDates: f.IncludeNearbyDates,
	}, nil
}

type appContext struct {
	logger   *logrus.Logger
	searcher *search.Searcher
}

type SearchCmd struct {
	searchFlags
}

func (c *SearchCmd) Run(app *appContext) error {
	query, err := c.query()
	if err != nil {
		return err
	}

	r := render.New(os.Stdout)
	result, err := app.searcher.Search(context.Background(), query)
	if err != nil {
		if errors.Is(err, tbs.ErrFetchFailed) {
			r.FetchFailure(err)
			return nil
		}
		return err
	}

	r.Results(result)
	return nil
}

type ServeCmd struct {
	Port string `help:"Listen port" default:"8080"`
}

func (c *ServeCmd) Run(app *appContext) error {
	srv := &http.Server{
		Addr:    ":" + c.Port,
		Handler: server.NewRouter(app.searcher, app.logger),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		app.logger.WithField("signal", sig).Info("received signal, shutting down")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		app.logger.WithField("port", c.Port).Info("serving search API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

type WatchCmd struct {
	searchFlags
	Interval time.Duration `help:"Time between searches" default:"15m"`
}

func (c *WatchCmd) Run(app *appContext) error {
	pushoverToken := os.Getenv("PUSHOVER_TOKEN")
	pushoverUser := os.Getenv("PUSHOVER_USER")
	if pushoverToken == "" || pushoverUser == "" {
		return fmt.Errorf("PUSHOVER_TOKEN and PUSHOVER_USER environment variables are required")
	}

	query, err := c.query()
	if err != nil {
		return err
	}

	notifier := notify.NewNotifier(pushoverToken, pushoverUser, app.logger)
	watcher := watch.NewWatcher(app.searcher, notifier, query, c.Interval, app.logger)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		app.logger.WithField("signal", sig).Info("received signal, shutting down")
		cancel()
	}()

	app.logger.WithFields(logrus.Fields{
		"route":    query.From + " -> " + query.To + " @ " + query.Date,
		"interval": c.Interval.String(),
	}).Info("starting watch")

	watcher.Start(ctx)
	<-ctx.Done()
	watcher.Stop()

	app.logger.Info("watch stopped")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	// Setup structured logging with logfmt
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.WithField("error", err).Fatal("failed to load config")
	}

	client := tbs.NewClient(cfg.Source.URL, cfg.Source.UserID, cfg.Source.Headers, cfg.Source.Timeout())
	payloadCache := cache.New[*tbs.AvailabilityResponse](cfg.CacheTTL())
	searcher := search.NewSearcher(client, payloadCache, logger)

	err = ctx.Run(&appContext{logger: logger, searcher: searcher})
	ctx.FatalIfErrorf(err)
}
