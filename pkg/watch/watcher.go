package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/fsnotify.v1"

	"github.com/selimdilsadercan/foritu-data/pkg/logging"
)

// JobRunner executes one conversion job. The watcher calls it once on start
// and again every time the job's input settles after a change.
type JobRunner func(job JobConfig) error

// DefaultDebounce is how long an input must stay quiet before its jobs
// re-run. Editors that write in bursts trigger a single run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs conversion jobs when their input files change.
type Watcher struct {
	config    *Config
	run       JobRunner
	debounce  time.Duration
	logger    zerolog.Logger
	fsw       *fsnotify.Watcher
	pending   map[string]*time.Timer
	pendingMu sync.Mutex
	stopChan  chan struct{}
	running   bool
	runningMu sync.Mutex
}

// NewWatcher creates a watcher that feeds changed jobs to run.
func NewWatcher(config *Config, run JobRunner) *Watcher {
	return &Watcher{
		config:   config,
		run:      run,
		debounce: DefaultDebounce,
		logger:   logging.Component("watch"),
		pending:  make(map[string]*time.Timer),
		stopChan: make(chan struct{}),
	}
}

// SetDebounce overrides the quiet period before a changed job re-runs.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start watches every job input directory, runs each job once so outputs
// exist, and begins the event loop. The loop ends on Stop or when ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.runningMu.Lock()
	if w.running {
		w.runningMu.Unlock()
		return fmt.Errorf("watcher is already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.runningMu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.fsw = fsw

	// Watch the parent directories, not the files. Editors that replace a
	// file on save would otherwise detach the watch.
	dirs := make(map[string]bool)
	for _, job := range w.config.Jobs {
		dir := filepath.Dir(job.Input)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.eventLoop(ctx)

	for _, job := range w.config.Jobs {
		w.runJob(job)
	}

	return nil
}

// Stop ends the event loop and releases the file system watcher.
func (w *Watcher) Stop() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if !w.running {
		return fmt.Errorf("watcher is not running")
	}
	close(w.stopChan)
	w.running = false

	w.pendingMu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.pendingMu.Unlock()

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

// eventLoop handles file system events until Stop or ctx cancellation.
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.fsw.Close()
			return

		case <-w.stopChan:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != fsnotify.Create && event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watch error")
		}
	}
}

// schedule arms, or re-arms, the debounce timer for a changed path.
func (w *Watcher) schedule(path string) {
	jobs := w.jobsFor(path)
	if len(jobs) == 0 {
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.pendingMu.Lock()
		delete(w.pending, path)
		w.pendingMu.Unlock()

		for _, job := range jobs {
			w.runJob(job)
		}
	})
}

// jobsFor returns every job whose input is the changed path.
func (w *Watcher) jobsFor(path string) []JobConfig {
	var jobs []JobConfig
	for _, job := range w.config.Jobs {
		if filepath.Clean(job.Input) == filepath.Clean(path) {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// runJob runs one job and logs the outcome. Failures do not stop the
// watcher.
func (w *Watcher) runJob(job JobConfig) {
	w.logger.Info().Str("job", job.Name).Str("kind", string(job.Kind)).Str("input", job.Input).Msg("running job")
	if err := w.run(job); err != nil {
		w.logger.Error().Err(err).Str("job", job.Name).Msg("job failed")
		return
	}
	w.logger.Info().Str("job", job.Name).Str("output", job.Output).Msg("job finished")
}
