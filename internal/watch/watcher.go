// Package watch re-runs a search on an interval and pushes a notification
// the first time each train/class combination shows availability.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/notify"
	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

type Watcher struct {
	searcher *search.Searcher
	notifier *notify.Notifier
	logger   *logrus.Logger
	query    search.Query
	interval time.Duration

	mu       sync.Mutex
	notified map[string]bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewWatcher(
	searcher *search.Searcher,
	notifier *notify.Notifier,
	query search.Query,
	interval time.Duration,
	logger *logrus.Logger,
) *Watcher {
	return &Watcher{
		searcher: searcher,
		notifier: notifier,
		logger:   logger,
		query:    query,
		interval: interval,
		notified: make(map[string]bool),
		stopCh:   make(chan struct{}),
	}
}

func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *Watcher) Stop() {
	close(w.stopCh)
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped: context cancelled")
			return
		case <-w.stopCh:
			w.logger.Info("watcher stopped: stop signal received")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	result, err := w.searcher.Search(ctx, w.query)
	if err != nil {
		w.logger.WithField("error", err).Warn("watch search failed")
		return
	}

	if len(result.Records) == 0 {
		w.logger.WithFields(logrus.Fields{
			"from": w.query.From,
			"to":   w.query.To,
			"date": w.query.Date,
		}).Debug("no available seats yet")
		return
	}

	for _, rec := range result.Records {
		key := rec.TrainNumber + "|" + rec.BookingClass

		w.mu.Lock()
		alreadyNotified := w.notified[key]
		if !alreadyNotified {
			w.notified[key] = true
		}
		w.mu.Unlock()

		if alreadyNotified {
			continue
		}

		w.logger.WithFields(logrus.Fields{
			"train":  rec.TrainNumber,
			"class":  rec.BookingClass,
			"status": rec.Availability,
		}).Info("seats available")

		if err := w.notifier.SendAvailability(rec); err != nil {
			w.logger.WithField("error", err).Warn("failed to send availability notification")
		}
	}
}
