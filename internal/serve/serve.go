package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// ResultsField is the response key holding the options.
const ResultsField = "results"

const shutdownTimeout = 5 * time.Second

// Server answers option queries from an app's static pool.
type Server struct {
	app   *app.App
	limit int
}

// New creates a server over a. A positive limit caps the number of
// top-level results.
func New(a *app.App, limit int) *Server {
	return &Server{app: a, limit: limit}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/search", s.searchHandler)
	r.POST("/search", s.searchHandler)
	return r
}

func (s *Server) searchHandler(c *gin.Context) {
	q := c.Query("q")
	state, err := s.app.Filter(c.Request.Context(), q)
	if err != nil {
		logging.Warn("search failed", "query", q, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := state.Options()
	if s.limit > 0 && len(items) > s.limit {
		items = items[:s.limit]
	}
	logging.Debug("search", "query", q, "results", len(items))
	c.JSON(http.StatusOK, gin.H{ResultsField: s.payload(items)})
}

// payload renders items with the configured field names.
func (s *Server) payload(items []*option.Item) []map[string]any {
	idField, textField := s.app.Settings.IDField, s.app.Settings.TextField
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m := map[string]any{idField: it.ID, textField: it.Text}
		if it.HasChildren() {
			m["children"] = s.payload(it.Children)
		}
		out = append(out, m)
	}
	return out
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
