// Package preview serves the generated site locally and rebuilds it when the
// sources change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/logfields"
	"github.com/lucawellmeier/octoblog/internal/metrics"
	"github.com/lucawellmeier/octoblog/internal/site"
)

const defaultDebounce = 300 * time.Millisecond

// Builder regenerates the site.
type Builder interface {
	Generate(ctx context.Context) (*site.Report, error)
}

// buildStatus tracks the current build state for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) get() (hasGoodBuild bool, err error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.hasGoodBuild, bs.lastError
}

// Server is a local preview of the site.
type Server struct {
	cfg       *config.Config
	builder   Builder
	registry  *prom.Registry
	outputDir string
	addr      string
	debounce  time.Duration
	status    buildStatus
}

// New returns a preview server for the site in outputDir listening on addr.
// A nil registry disables the /metrics endpoint.
func New(cfg *config.Config, builder Builder, outputDir, addr string, reg *prom.Registry) *Server {
	return &Server{
		cfg:       cfg,
		builder:   builder,
		registry:  reg,
		outputDir: outputDir,
		addr:      addr,
		debounce:  defaultDebounce,
	}
}

// Handler serves the output directory and, when configured, the metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(s.outputDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if good, err := s.status.get(); err != nil && !good {
			http.Error(w, "build failed: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		files.ServeHTTP(w, r)
	})
	if s.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}
	return mux
}

// Run builds once, then serves and rebuilds on change until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Preview server listening", logfields.URL("http://"+ln.Addr().String()))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		_ = srv.Close()
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	for _, dir := range s.watchDirs() {
		addDirsRecursive(watcher, dir)
	}

	rebuildReq, trigger := newDebouncer(s.debounce)
	s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("HTTP server shutdown error", logfields.Error(err))
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// watchDirs lists the existing source trees.
func (s *Server) watchDirs() []string {
	candidates := []string{
		s.cfg.Content.ArticlesDir,
		s.cfg.Content.PagesDir,
		s.cfg.Content.AssetsDir,
		filepath.Join(s.cfg.Content.ThemesDir, s.cfg.Theme),
	}
	var dirs []string
	for _, d := range candidates {
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (s *Server) rebuild(ctx context.Context) {
	report, err := s.builder.Generate(ctx)
	if err != nil {
		slog.Warn("Rebuild failed", logfields.Error(err))
		s.status.setError(err)
		return
	}
	s.status.setSuccess()
	slog.Info("Site rebuilt", logfields.BuildID(report.BuildID), logfields.Count(len(report.Outputs)))
}

// startRebuildWorker runs rebuilds one at a time, coalescing requests that
// arrive while a rebuild is running.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding site")
				s.rebuild(ctx)
			}
		}
	}()
}

func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || s.inOutput(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (s *Server) inOutput(path string) bool {
	rel, err := filepath.Rel(s.outputDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// newDebouncer returns a request channel and a trigger that sends one
// request once triggers stop arriving for d.
func newDebouncer(d time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
