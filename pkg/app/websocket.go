package app

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25 * time.Second
	WebSocketServerPingWait     = 40 * time.Second
)

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketServer is a push-only hub: clients connect, keep the socket alive with pings
// and receive every frame passed to Broadcast. Inbound text frames other than "close" are ignored.
// WebsocketServer 仅推送的 WebSocket 中心
type WebsocketServer struct {
	logger  *zap.Logger
	config  WebsocketServerConfig
	up      *gws.Upgrader
	mu      sync.RWMutex
	clients map[*gws.Conn]struct{}
}

func NewWebsocketServer(c WebsocketServerConfig, logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WebsocketServer{
		logger:  logger,
		config:  c,
		clients: make(map[*gws.Conn]struct{}),
	}
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
	return w
}

// Run upgrades the request and starts the read loop
// Run 升级连接并启动读循环
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("WebsocketServer upgrade err", zap.Error(err))
			return
		}
		go socket.ReadLoop()
	}
}

// Broadcast sends payload to every connected client
// Broadcast 向所有客户端广播
func (w *WebsocketServer) Broadcast(payload []byte) int {
	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	w.mu.RLock()
	defer w.mu.RUnlock()
	sent := 0
	for conn := range w.clients {
		if err := b.Broadcast(conn); err != nil {
			w.logger.Warn("WebsocketServer broadcast err", zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// ClientCount returns the number of live connections
func (w *WebsocketServer) ClientCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.clients)
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
	w.mu.Lock()
	w.clients[conn] = struct{}{}
	count := len(w.clients)
	w.mu.Unlock()
	w.logger.Info("WebsocketServer client connect", zap.Int("count", count))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	w.mu.Lock()
	delete(w.clients, conn)
	count := len(w.clients)
	w.mu.Unlock()
	w.logger.Info("WebsocketServer client leave", zap.Int("count", count), zap.Error(err))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
	if message.Opcode == gws.OpcodeText && message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
	}
}

// Close disconnects all clients
// Close 断开全部客户端
func (w *WebsocketServer) Close() {
	w.mu.RLock()
	conns := make([]*gws.Conn, 0, len(w.clients))
	for conn := range w.clients {
		conns = append(conns, conn)
	}
	w.mu.RUnlock()

	for _, conn := range conns {
		conn.WriteClose(1001, []byte("ServerShutdown"))
	}
}
