package notify

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FrameTypeReminder is the type field of every reminder frame
const FrameTypeReminder = "reminder"

// Broadcaster is satisfied by the websocket hub
type Broadcaster interface {
	Broadcast(payload []byte) int
}

type frame struct {
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}

// WebsocketNotifier pushes one JSON frame per notification to every client
// WebsocketNotifier 向所有 WebSocket 客户端推送通知
type WebsocketNotifier struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewWebsocketNotifier(hub Broadcaster, lg *zap.Logger) *WebsocketNotifier {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &WebsocketNotifier{hub: hub, logger: lg}
}

func (w *WebsocketNotifier) Name() string {
	return "websocket"
}

func (w *WebsocketNotifier) Notify(ctx context.Context, batch []Notification) error {
	for _, n := range batch {
		payload, err := EncodeFrame(n)
		if err != nil {
			return err
		}
		sent := w.hub.Broadcast(payload)
		w.logger.Debug("reminder frame broadcast", zap.String("reminderId", n.ReminderID), zap.Int("clients", sent))
	}
	return nil
}

// EncodeFrame 编码单条通知帧
func EncodeFrame(n Notification) ([]byte, error) {
	b, err := sonic.Marshal(frame{Type: FrameTypeReminder, Notification: n})
	if err != nil {
		return nil, errors.Wrap(err, "encode notification frame")
	}
	return b, nil
}
