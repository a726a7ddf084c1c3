package cli

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

const defaultAddr = "localhost:8080"

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [board.toml]",
		Short: "Preview the pinout diagram over HTTP",
		Long: `Serve the pinout diagram for a board. The board file is re-read on every
request, so edits show up on reload.

Routes:
  /                   HTML page with the diagram inline (hover highlighting works)
  /pinmap.svg         the diagram (?highlight=0 to disable highlighting)
  /pinmap.json        scene geometry
  /connectivity.svg   port-to-module graph
  /healthz            liveness`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(runner, boardArg(args), c.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return c.listen(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// listen runs srv until ctx is cancelled, then shuts it down gracefully.
func (c *CLI) listen(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving on %s", StyleLink.Render("http://"+srv.Addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	runner    *pipeline.Runner
	boardPath string
	logger    *log.Logger
}

// newServer returns the preview router.
func newServer(runner *pipeline.Runner, boardPath string, logger *log.Logger) http.Handler {
	s := &server{runner: runner, boardPath: boardPath, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/pinmap.svg", s.handlePinmap(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/pinmap.json", s.handlePinmap(pipeline.FormatJSON, "application/json"))
	r.Get("/connectivity.svg", s.handleConnectivity)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	return r
}

// observe logs each request and reports it to the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", d)
	})
}

func (s *server) render(ctx context.Context, format string, noHighlight bool) ([]byte, error) {
	result, err := s.runner.Execute(ctx, pipeline.Options{
		BoardPath:   s.boardPath,
		Formats:     []string{format},
		NoHighlight: noHighlight,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, err
	}
	return result.Artifacts[format], nil
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	svg, err := s.render(r.Context(), pipeline.FormatSVG, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	title := "pinmap"
	if src, err := pipeline.LoadBoard(s.boardPath); err == nil {
		title = src.Board.Name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, html.EscapeString(title), html.EscapeString(title), svg)
}

func (s *server) handlePinmap(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.render(r.Context(), format, r.URL.Query().Get("highlight") == "0")
		if err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func (s *server) handleConnectivity(w http.ResponseWriter, r *http.Request) {
	artifacts, err := s.runner.Graph(r.Context(), pipeline.GraphOptions{
		BoardPath: s.boardPath,
		Formats:   []string{pipeline.FormatSVG},
		Detailed:  r.URL.Query().Get("detailed") == "1",
		Logger:    s.logger,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(artifacts[pipeline.FormatSVG])
}

// fail writes err as a plain-text response. Board faults are the client's
// to fix and map to 422.
func (s *server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInternal, errors.ErrCodeUnsupported, "":
	default:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Warn("request failed", "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body { margin: 0; background: #fafafa; font-family: sans-serif; } h1 { font-size: 14px; margin: 8px 12px; color: #555; }</style>
</head>
<body>
<h1>%s · <a href="/pinmap.svg">svg</a> · <a href="/pinmap.json">json</a> · <a href="/connectivity.svg">connectivity</a></h1>
%s
</body>
</html>
`
