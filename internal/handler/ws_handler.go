package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/service"
	ws "github.com/gharsapp/ghars-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live leaderboard updates over WebSocket.
type WSHandler struct {
	rdb            *redis.Client
	studentService *service.StudentService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, studentService *service.StudentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:            rdb,
		studentService: studentService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// LeaderboardStream godoc
// WS /ws/v1/leaderboard
// Upgrades to WebSocket and pushes the full leaderboard snapshot on
// connect and whenever a point mutation changes the standings.
func (h *WSHandler) LeaderboardStream(c *gin.Context) {
	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	// Both the read loop below and the subscription goroutine write to
	// this connection; ws.Conn serializes those writes.
	conn := ws.NewConn(raw)
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("Leaderboard client connected")

	if err := h.sendSnapshot(ctx, conn); err != nil {
		return
	}

	// Point mutations publish on the updates channel; each message means
	// the standings may have shifted, so re-push the snapshot.
	sub := h.rdb.Subscribe(ctx, config.CacheKey.LeaderboardChannel())
	defer sub.Close()

	go func() {
		for range sub.Channel() {
			if err := h.sendSnapshot(ctx, conn); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("Unexpected close")
			} else {
				h.log.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case ws.ActionRefresh:
			if err := h.sendSnapshot(ctx, conn); err != nil {
				return
			}
		default:
			h.log.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) sendSnapshot(ctx context.Context, conn *ws.Conn) error {
	students, err := h.studentService.Leaderboard(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Leaderboard snapshot error")
		ws.WriteError(conn, "snapshot unavailable")
		return err
	}
	return ws.WriteTyped(conn, ws.SnapshotResponse{Event: ws.EventSnapshot, Leaderboard: students})
}
