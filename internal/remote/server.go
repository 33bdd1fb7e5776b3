// Package remote serves the item store over HTTP and provides a client for it.
package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/converters"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/metrics"
	"github.com/thenoetrevino/cadence/internal/ordering"
	itemservice "github.com/thenoetrevino/cadence/internal/services/item"
	"github.com/thenoetrevino/cadence/internal/types"
)

// Version is reported by /health and by `cadence --version`.
const Version = "0.1.0"

// Server exposes an item store as the JSON API consumed by Client.
type Server struct {
	items   itemservice.Service
	router  *gin.Engine
	started time.Time
}

// NewServer builds the router. Every write goes through items so buckets and
// titles are validated before they reach the store.
func NewServer(items itemservice.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Register()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(RequestMetrics())

	s := &Server{
		items:   items,
		router:  r,
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving item API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	api.GET("/scopes/:scope/items", s.listItems)
	api.POST("/scopes/:scope/items", s.createItem)
	api.GET("/items/:id", s.getItem)
	api.PATCH("/items/:id/position", s.updatePosition)
	api.DELETE("/items/:id", s.deleteItem)
}

func (s *Server) listItems(c *gin.Context) {
	items, err := s.items.List(c.Request.Context(), types.Scope(c.Param("scope")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, converters.ItemList{Items: converters.ItemsToDTOs(items)})
}

func (s *Server) createItem(c *gin.Context) {
	var body converters.CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.items.Create(c.Request.Context(), itemservice.CreateItemRequest{
		ID:     types.ItemID(body.ID),
		Scope:  types.Scope(c.Param("scope")),
		Bucket: body.Bucket,
		Title:  body.Title,
		Notes:  body.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, converters.ItemToDTO(*created))
}

func (s *Server) getItem(c *gin.Context) {
	it, err := s.items.Get(c.Request.Context(), types.ItemID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, converters.ItemToDTO(*it))
}

func (s *Server) updatePosition(c *gin.Context) {
	var body converters.PositionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.items.Reposition(c.Request.Context(), types.ItemID(c.Param("id")), body.Bucket, *body.Position)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteItem(c *gin.Context) {
	if err := s.items.Delete(c.Request.Context(), types.ItemID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, itemservice.ErrEmptyTitle),
		errors.Is(err, itemservice.ErrTitleTooLong),
		errors.Is(err, itemservice.ErrInvalidScope),
		errors.Is(err, itemservice.ErrInvalidItemID),
		errors.Is(err, itemservice.ErrNegativePosition),
		errors.Is(err, ordering.ErrInvalidBucket),
		errors.Is(err, config.ErrUnknownBoard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
