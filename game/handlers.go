package game

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Handler struct {
	service  *Service
	hub      *Hub
	deliver  Deliverer
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(service *Service, hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		deliver: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are filtered by the server's allowlist middleware
			// before the request reaches the upgrade.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })
	r.GET("/rooms", h.ListRoomsHandler)
	r.GET("/ws", h.SocketHandler)
}

// ListRoomsHandler serves the same summary list as the getRooms socket
// action, for lobby pages that poll before connecting.
func (h *Handler) ListRoomsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.service.ListRooms())
}

// SocketHandler upgrades the connection, assigns the player id, runs the
// pumps, and on any disconnect removes the player from their room.
func (h *Handler) SocketHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	sess := newSession(id, NewWebsocketConnection(conn))
	h.hub.add(sess)
	go sess.writePump()

	h.deliver.Deliver(id, EventConnected, ConnectedPayload{ID: id})
	h.log.Debug().Str("player", id).Msg("connection established")

	sess.readPump(func(data []byte) {
		h.dispatch(id, data)
	})

	h.hub.remove(id)
	h.service.LeaveOrDisconnect(id)
	h.log.Debug().Str("player", id).Msg("connection closed")
}

// bind unmarshals an action payload, reporting a format error to the sender
// on failure.
func (h *Handler) bind(playerID string, data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		h.deliver.Deliver(playerID, EventError, ErrorPayload{Code: "invalid-request-format"})
		return false
	}
	return true
}

// dispatch routes one inbound envelope to its service action. Failures go
// back to the sender only, as an error event carrying the code.
func (h *Handler) dispatch(playerID string, raw []byte) {
	var env ClientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.deliver.Deliver(playerID, EventError, ErrorPayload{Code: "invalid-request-format"})
		return
	}

	var err error
	switch env.Event {
	case ActionCreateRoom:
		var req CreateRoomRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		var code string
		code, err = h.service.CreateRoom(req.RoomName, req.IsPasswordProtected, req.Password, req.MaxPlayers, req.HostName, req.HostAvatar, playerID)
		if err == nil {
			h.deliver.Deliver(playerID, EventRoomCreated, RoomCreatedPayload{Code: code})
		}

	case ActionJoinRoom:
		var req JoinRoomRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		_, err = h.service.JoinRoom(req.RoomCode, req.Password, req.PlayerName, req.PlayerAvatar, playerID)

	case ActionGetRooms:
		h.deliver.Deliver(playerID, EventRoomList, h.service.ListRooms())

	case ActionGetRoomInfo:
		var req RoomCodeRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		var snap RoomSnapshot
		snap, err = h.service.GetRoomInfo(req.RoomCode, playerID)
		if err == nil {
			h.deliver.Deliver(playerID, EventRoomInfo, snap)
		}

	case ActionSetChoosingCategory:
		var req RoomCodeRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		var categories map[string][]string
		categories, err = h.service.SetChoosingCategory(req.RoomCode, playerID)
		if err == nil {
			h.deliver.Deliver(playerID, EventCategories, categories)
		}

	case ActionStartRound:
		var req StartRoundRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		err = h.service.StartRound(req.RoomCode, req.Region, req.BannedCategories, playerID)

	case ActionVote:
		var req VoteRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		err = h.service.Vote(req.RoomCode, playerID, req.AccusedID)

	case ActionNextRound:
		var req RoomCodeRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		err = h.service.NextRound(req.RoomCode, playerID)

	case ActionSkipRound:
		var req RoomCodeRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		err = h.service.SkipRound(req.RoomCode, playerID)

	case ActionChat:
		var req ChatRequest
		if !h.bind(playerID, env.Data, &req) {
			return
		}
		err = h.service.Chat(req.RoomCode, playerID, req.Text)

	default:
		h.deliver.Deliver(playerID, EventError, ErrorPayload{Code: "unknown-event"})
		return
	}

	if err != nil {
		h.deliver.Deliver(playerID, EventError, ErrorPayload{Code: err.Error()})
		h.log.Debug().Str("player", playerID).Str("action", env.Event).Str("code", err.Error()).Msg("action failed")
	}
}
