// Package mapserver accepts the embedded map renderer over a websocket and
// attaches it to the map bridge for as long as the connection lives.
package mapserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"shop_companion/internal/config"
	"shop_companion/internal/mapbridge"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 5 * time.Second
	maxInboundSize = 64 << 10
)

type Server struct {
	addr     string
	bridge   *mapbridge.Bridge
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu              sync.RWMutex
	onReady         func()
	onStoreSelected func(storeID string)

	http *http.Server
}

func New(cfg config.Config, bridge *mapbridge.Bridge, logger *zap.Logger) *Server {
	return &Server{
		addr:   cfg.MapListenAddr,
		bridge: bridge,
		logger: logger.Named("mapserver"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The renderer page is loaded from a local file or app bundle, so
			// there is no meaningful Origin to check.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// OnReady registers fn to run each time a renderer reports it is ready.
func (s *Server) OnReady(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = fn
}

// OnStoreSelected registers fn to run when a store marker is tapped.
func (s *Server) OnStoreSelected(fn func(storeID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStoreSelected = fn
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleRenderer)
	return r
}

func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("map server listen: %w", err)
	}

	s.http = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("map server listening", zap.String("addr", ln.Addr().String()))

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("map server stopped", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"renderer":  s.bridge.Attached(),
		"transport": s.bridge.Transport().String(),
	})
}

func (s *Server) handleRenderer(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("renderer upgrade failed", zap.Error(err))
		return
	}

	c := &rendererConn{id: uuid.NewString(), ws: ws}
	logger := s.logger.With(zap.String("conn_id", c.id))

	s.bridge.Attach(c)
	logger.Info("renderer attached", zap.String("remote", r.RemoteAddr))
	defer func() {
		s.bridge.Detach(c)
		_ = ws.Close()
		logger.Info("renderer detached")
	}()

	ws.SetReadLimit(maxInboundSize)
	for {
		kind, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("renderer connection lost", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		s.dispatch(logger, data)
	}
}

func (s *Server) dispatch(logger *zap.Logger, data []byte) {
	msg, err := mapbridge.ParseInbound(data)
	if err != nil {
		logger.Warn("ignoring renderer message", zap.Error(err))
		return
	}

	s.mu.RLock()
	onReady, onStoreSelected := s.onReady, s.onStoreSelected
	s.mu.RUnlock()

	switch msg.Type {
	case mapbridge.TypeReady:
		logger.Info("renderer ready")
		if onReady != nil {
			onReady()
		}
	case mapbridge.TypeStoreSelected:
		logger.Debug("store marker selected", zap.String("store_id", msg.StoreID))
		if onStoreSelected != nil {
			onStoreSelected(msg.StoreID)
		}
	}
}

// rendererConn is the bridge handle for one websocket renderer. Both
// transports become text frames; the renderer evaluates them according to
// the transport it was configured with.
type rendererConn struct {
	id string
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *rendererConn) InjectJavaScript(script string) error {
	return c.write(script)
}

func (c *rendererConn) PostMessage(data string) error {
	return c.write(data)
}

func (c *rendererConn) write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("renderer %s: %w", c.id, err)
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("renderer %s: %w", c.id, err)
	}
	return nil
}
