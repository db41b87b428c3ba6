package question

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-uploader/internal/server"
	ws "github.com/gokatarajesh/quiz-uploader/pkg/http/ws"
)

// WSHandler serves /ws/quiz, pushing questions_added events to front-ends.
type WSHandler struct {
	svc     *Service
	hub     *ws.Hub
	metrics *Metrics
	logger  zerolog.Logger
}

func NewWSHandler(svc *Service, hub *ws.Hub, metrics *Metrics, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		svc:     svc,
		hub:     hub,
		metrics: metrics,
		logger:  logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client disconnects.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := ws.NewConnection(conn, h.logger)
	h.hub.Register(c)
	h.metrics.connOpened()
	defer func() {
		h.hub.Unregister(c.ID)
		h.metrics.connClosed()
	}()

	go c.WritePump()

	total, err := h.svc.Count(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("count for hello failed")
	}
	if hello, err := ws.NewMessage(ws.TypeHello, ws.HelloPayload{ConnectionID: c.ID.String(), Total: total}); err == nil {
		_ = c.Send(hello)
	}

	c.ReadPump(func(msg ws.Message) error {
		switch msg.Type {
		case ws.TypePing:
			return c.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
		default:
			reply, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{
				Code:    "unknown_message_type",
				Message: "unsupported message type: " + msg.Type,
			})
			if err != nil {
				return err
			}
			reply.RequestID = msg.RequestID
			return c.Send(reply)
		}
	})
}
