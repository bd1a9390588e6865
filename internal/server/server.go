package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/command-center/backend/internal/action"
	"github.com/command-center/backend/internal/dashboard"
	"github.com/command-center/backend/internal/frontend"
	"github.com/command-center/backend/internal/stream"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const maxActionBody = 1 << 20

type Server struct {
	aggregator *dashboard.Aggregator
	hub        *stream.Hub
	dispatcher *action.Dispatcher
	static     fs.FS
	sendBuffer int
	engine     *gin.Engine
}

func New(aggregator *dashboard.Aggregator, hub *stream.Hub, dispatcher *action.Dispatcher, static fs.FS, sendBuffer int) *Server {
	s := &Server{
		aggregator: aggregator,
		hub:        hub,
		dispatcher: dispatcher,
		static:     static,
		sendBuffer: sendBuffer,
		engine:     gin.New(),
	}

	// Paths match exactly; "/api/dashboard/" is a 404, not a redirect.
	s.engine.RedirectTrailingSlash = false
	s.engine.RedirectFixedPath = false

	s.engine.Use(
		gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/api/events", "/api/ws"}}),
		gin.CustomRecovery(internalError),
		securityHeaders(),
		cors(),
	)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.Any("/", gin.WrapF(frontend.IndexHandler(s.static)))
	s.engine.Any("/api/dashboard", s.handleDashboard)
	s.engine.Any("/api/events", s.handleEvents)
	s.engine.Any("/api/action", s.handleAction)
	s.engine.Any("/api/ws", s.handleWS)
	s.engine.Any("/api/health", s.handleHealth)

	s.engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not found")
	})
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// cors marks every response as shareable and answers preflight requests
// before any route runs.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		c.Next()
	}
}

// internalError hides panic details from the caller; gin's recovery has
// already logged them with a stack trace.
func internalError(c *gin.Context, _ any) {
	c.String(http.StatusInternalServerError, "Internal server error")
	c.Abort()
}

func (s *Server) handleDashboard(c *gin.Context) {
	// The snapshot is assembled even if the client goes away mid-request.
	ctx := context.WithoutCancel(c.Request.Context())
	data, err := json.MarshalIndent(s.aggregator.Document(ctx), "", "  ")
	if err != nil {
		panic(err)
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleEvents(c *gin.Context) {
	err := stream.ServeSSE(c.Writer, c.Request, s.hub, s.sendBuffer)
	switch {
	case errors.Is(err, stream.ErrTooManyConnections):
		c.String(http.StatusServiceUnavailable, "Too many connections")
	case err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, stream.ErrClientClosed):
		log.Printf("sse stream ended: %v", err)
	}
}

func (s *Server) handleAction(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxActionBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, action.ErrorResult{Error: "Invalid request"})
		return
	}
	req, err := action.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, action.ErrorResult{Error: "Invalid request"})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	c.JSON(http.StatusOK, s.dispatcher.Dispatch(ctx, req))
}

func (s *Server) handleWS(c *gin.Context) {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	log.Printf("WebSocket client connected: %s", c.Request.RemoteAddr)
	err = stream.ServeWS(conn, s.hub, s.sendBuffer)
	log.Printf("WebSocket client disconnected: %s (%v)", c.Request.RemoteAddr, err)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": s.hub.ClientCount(),
	})
}

// checkOrigin accepts same-host and loopback origins, and clients that send
// no Origin header at all (non-browser tools).
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	hostname := parsed.Hostname()
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
}

// ListenAndServe serves until ctx is cancelled, then closes open streams
// and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Stream handlers block until their client is closed.
	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
