package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Tunables holds the runtime-changeable simulation settings. The file is
// optional; without one the values from Config apply for the process
// lifetime.
type Tunables struct {
	SimulatedLatencyMs int    `yaml:"simulatedLatencyMs"`
	PaymentURL         string `yaml:"paymentUrl"`
}

// Latency returns the simulated latency as a duration
func (t Tunables) Latency() time.Duration {
	return time.Duration(t.SimulatedLatencyMs) * time.Millisecond
}

// TunablesWatcher watches a YAML tunables file and reloads it on change,
// so latency and the payment link can be adjusted without a restart.
type TunablesWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	stopCh  chan struct{}

	mu      sync.RWMutex
	current Tunables
}

// NewTunablesWatcher loads the file and starts tracking it. The initial
// values come from cfg; file values override them.
func NewTunablesWatcher(cfg *Config, logger *zap.Logger) (*TunablesWatcher, error) {
	w := &TunablesWatcher{
		path:   cfg.TunablesFile,
		logger: logger,
		stopCh: make(chan struct{}),
		current: Tunables{
			SimulatedLatencyMs: int(cfg.SimulatedLatency / time.Millisecond),
			PaymentURL:         cfg.PaymentURL,
		},
	}

	if w.path == "" {
		return w, nil
	}

	if t, err := loadTunables(w.path, w.current); err != nil {
		logger.Warn("Failed to load tunables file, using defaults",
			zap.String("path", w.path),
			zap.Error(err),
		)
	} else {
		w.current = t
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory, not just the file, so atomic saves
	// (write-then-rename) still produce events.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch tunables directory: %w", err)
	}

	w.watcher = watcher
	return w, nil
}

// Start begins watching for file changes. A watcher without a file is a
// no-op.
func (w *TunablesWatcher) Start() {
	if w.watcher == nil {
		return
	}
	go w.watchLoop()
	w.logger.Info("Tunables watcher started", zap.String("path", w.path))
}

// Stop stops watching
func (w *TunablesWatcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// Current returns the active tunables
func (w *TunablesWatcher) Current() Tunables {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Latency returns the active simulated latency. Services hold this as
// their dynamic delay source.
func (w *TunablesWatcher) Latency() time.Duration {
	return w.Current().Latency()
}

// PaymentURL returns the active external checkout link
func (w *TunablesWatcher) PaymentURL() string {
	return w.Current().PaymentURL
}

func (w *TunablesWatcher) watchLoop() {
	// Debounce to avoid reloading on every partial write
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Tunables watcher error", zap.Error(err))
		}
	}
}

func (w *TunablesWatcher) reload() {
	t, err := loadTunables(w.path, w.Current())
	if err != nil {
		w.logger.Error("Failed to reload tunables, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = t
	w.mu.Unlock()

	if old != t {
		w.logger.Info("Tunables reloaded",
			zap.Int("simulated_latency_ms", t.SimulatedLatencyMs),
			zap.String("payment_url", t.PaymentURL),
		)
	}
}

// loadTunables reads the file over base, so fields the file omits keep
// their current values.
func loadTunables(path string, base Tunables) (Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("failed to read tunables file: %w", err)
	}

	t := base
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tunables{}, fmt.Errorf("failed to parse tunables YAML: %w", err)
	}

	if t.SimulatedLatencyMs < 0 {
		return Tunables{}, fmt.Errorf("simulatedLatencyMs cannot be negative")
	}
	return t, nil
}
