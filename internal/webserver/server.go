// Package webserver runs the local OEE dashboard server: the REST API, the
// rendered report page, and a small index page tying them together.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/fabmetrics/oee/internal/cache"
	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/projectconfig"
	"github.com/fabmetrics/oee/internal/reporting"
	"github.com/fabmetrics/oee/internal/webapi"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	DataPath    string
	HoursPerDay float64
	Views       []reporting.ViewSpec
	CacheDir    string
	// AllowedOrigins enables CORS for the listed origins. Empty means
	// same-origin only.
	AllowedOrigins []string
	NoBrowser      bool
	Logger         *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	store  *webapi.Store
	srv    *http.Server
	logger *slog.Logger
}

// New creates a server and loads the initial dataset when DataPath is set.
// A missing data file is logged and the server starts empty, so an upload
// can still bring it to life; a file that exists but fails to parse is an
// error.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = projectconfig.DefaultServerPort
	}
	if cfg.HoursPerDay == 0 {
		cfg.HoursPerDay = oee.DefaultHoursPerDay
	}

	store := webapi.NewStore(cache.New(cfg.CacheDir))
	if cfg.DataPath != "" {
		d, err := store.LoadFile(cfg.DataPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			cfg.Logger.Warn("dataset not found, starting empty", "path", cfg.DataPath)
		case err != nil:
			return nil, err
		default:
			cfg.Logger.Info("dataset loaded", "path", cfg.DataPath, "records", len(d.Set.Records))
		}
	}

	mux := http.NewServeMux()
	registerRoutes(mux, store, cfg)

	var handler http.Handler = mux
	if len(cfg.AllowedOrigins) > 0 {
		handler = webapi.CORSMiddleware(handler, cfg.AllowedOrigins...)
	}
	handler = gzhttp.GzipHandler(handler)

	return &Server{
		cfg:    cfg,
		store:  store,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe starts the HTTP server and optionally opens a browser.
func (s *Server) ListenAndServe(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "url", url)
	fmt.Printf("oee dashboard: %s\n", url)

	if !s.cfg.NoBrowser {
		// Open browser in background after a short delay.
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				s.logger.Debug("failed to open browser", "error", err)
			}
		}()
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Store returns the dataset store backing the API.
func (s *Server) Store() *webapi.Store {
	return s.store
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
