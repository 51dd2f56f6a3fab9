// Package httpserver hosts the Prometheus/OpenMetrics scrape endpoint (C10's
// external collaborator, per spec §1/§6): a static, single-route HTTP
// server with keep-alive, cleartext HTTP/2 (h2c), and TCP_NODELAY enabled,
// serving whatever Renderer.Render currently produces on every GET.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/cache"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/render"
)

// KeepAliveTimeout is the fixed keep-alive idle timeout spec §6 names.
const KeepAliveTimeout = 5 * time.Second

// Config is the subset of the prometheus configuration section this
// package consumes.
type Config struct {
	Port int
	URI  string
}

// Server hosts the scrape endpoint.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// New builds a Server. accessLog, if non-nil, receives one line per
// request (method, path, status, duration) at Info level — the "access
// log" distinct from the application log that spec §6/SPEC_FULL.md
// supplemented feature 2 calls for.
func New(cfg Config, c *cache.Cache, renderer *render.Renderer, accessLog logging.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.URI, scrapeHandler(c, renderer))

	var handler http.Handler = mux
	if accessLog != nil {
		handler = accessLogMiddleware(accessLog, handler)
	}

	h2s := &http2.Server{}
	handler = h2c.NewHandler(handler, h2s)

	return &Server{
		httpServer: &http.Server{
			Addr:        ":" + strconv.Itoa(cfg.Port),
			Handler:     handler,
			IdleTimeout: KeepAliveTimeout,
		},
	}
}

func scrapeHandler(c *cache.Cache, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body := renderer.Render(c)

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.Header().Set("Connection", "Keep-Alive")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// ListenAndServe starts accepting connections. It enables TCP_NODELAY on
// every accepted connection, the way the teacher's underlying HTTP
// dependency (net/http) otherwise leaves to OS default.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = &tcpNoDelayListener{ln.(*net.TCPListener)}
	return s.httpServer.Serve(s.listener)
}

// Shutdown gracefully stops the server, letting in-flight scrape responses
// complete, per spec §5's cancellation rules.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// tcpNoDelayListener mirrors net/http's own unexported
// tcpKeepAliveListener pattern, extended to also disable Nagle's algorithm
// on every accepted connection.
type tcpNoDelayListener struct {
	*net.TCPListener
}

func (ln *tcpNoDelayListener) Accept() (net.Conn, error) {
	conn, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = conn.SetKeepAlive(true)
	_ = conn.SetKeepAlivePeriod(3 * time.Minute)
	_ = conn.SetNoDelay(true)
	return conn, nil
}

func accessLogMiddleware(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		log.WithField("method", req.Method).
			WithField("path", req.URL.Path).
			WithField("status", rec.status).
			WithField("duration", time.Since(start)).
			Info("scrape request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
