package websocket

import "github.com/gharsapp/ghars-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventSnapshot Event = "snapshot"
	EventPong     Event = "pong"
)

// SnapshotResponse carries the full leaderboard ranking. Sent on connect
// and whenever the standings change.
type SnapshotResponse struct {
	Event       Event           `json:"event"`
	Leaderboard []model.Student `json:"leaderboard"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
