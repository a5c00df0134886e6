package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	"optmonitor/internal/engine"
	"optmonitor/internal/metrics"
	"optmonitor/internal/models"
)

// Refresh triggers, used as log and metric labels.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerWatch    = "watch"
	TriggerManual   = "manual"
)

// Publisher receives every snapshot produced by a refresh.
type Publisher interface {
	SetData(data *models.DashboardData)
}

type Options struct {
	// Interval between periodic refreshes; 0 disables polling.
	Interval time.Duration

	// Debounce is the quiet period after the last filesystem event.
	Debounce time.Duration

	// Watch enables fsnotify on the log directory.
	Watch bool

	Clock  clockwork.Clock
	Logger *slog.Logger
}

// Refresher owns a Reader and is the only goroutine that touches it. It
// refreshes on a ticker, on debounced filesystem events and on demand, and
// hands an immutable snapshot to the Publisher after each refresh.
type Refresher struct {
	reader  *engine.Reader
	pub     Publisher
	opts    Options
	log     *slog.Logger
	clock   clockwork.Clock
	watcher *fsnotify.Watcher
	trigger chan struct{}
}

// New prepares a Refresher. Call Run to start it.
func New(reader *engine.Reader, pub Publisher, opts Options) (*Refresher, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := &Refresher{
		reader:  reader,
		pub:     pub,
		opts:    opts,
		log:     opts.Logger,
		clock:   opts.Clock,
		trigger: make(chan struct{}, 1),
	}

	if opts.Watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Add(reader.Index().Dir()); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", reader.Index().Dir(), err)
		}
		r.watcher = w
	}
	return r, nil
}

// Trigger requests a refresh. Requests arriving while one is pending are
// coalesced. Safe for concurrent use.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes once immediately and then until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	if r.watcher != nil {
		defer r.watcher.Close()
	}

	r.refresh(TriggerStartup)

	var tickC <-chan time.Time
	if r.opts.Interval > 0 {
		ticker := r.clock.NewTicker(r.opts.Interval)
		defer ticker.Stop()
		tickC = ticker.Chan()
	}

	var (
		events   <-chan fsnotify.Event
		errs     <-chan error
		debounce clockwork.Timer
		fireC    <-chan time.Time
	)
	if r.watcher != nil {
		events = r.watcher.Events
		errs = r.watcher.Errors
	}
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tickC:
			r.refresh(TriggerInterval)
		case <-r.trigger:
			r.refresh(TriggerManual)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !isLogFile(ev.Name) {
				continue
			}
			r.log.Debug("log file changed", "path", ev.Name, "op", ev.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = r.clock.NewTimer(r.opts.Debounce)
			fireC = debounce.Chan()
		case <-fireC:
			fireC = nil
			debounce = nil
			r.refresh(TriggerWatch)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.log.Warn("watcher error", "error", err)
		}
	}
}

func (r *Refresher) refresh(trigger string) {
	start := r.clock.Now()

	status := "success"
	if err := r.reader.Refresh(); err != nil {
		status = "error"
		r.log.Warn("log refresh failed", "trigger", trigger, "error", err)
	}
	data := r.reader.Aggregate(r.clock.Now())
	r.pub.SetData(data)

	idx := r.reader.Index()
	for _, role := range engine.Roles {
		t := idx.Table(role)
		bound := 0.0
		if t != nil {
			bound = 1
		}
		metrics.RoleBound.WithLabelValues(role.String()).Set(bound)
		metrics.TableRows.WithLabelValues(role.String()).Set(float64(t.Rows()))
		metrics.RowsDropped.WithLabelValues(role.String()).Set(float64(t.Dropped()))
	}

	duration := r.clock.Since(start)
	metrics.RefreshTotal.WithLabelValues(trigger, status).Inc()
	metrics.RefreshDuration.Observe(duration.Seconds())

	r.log.Debug("log directory refreshed", "trigger", trigger, "files", len(data.Files),
		"iteration", data.Progress.CurrentIteration, "duration", duration)
}

func isLogFile(path string) bool {
	ok, _ := filepath.Match(engine.LogFilePattern, filepath.Base(path))
	return ok
}
