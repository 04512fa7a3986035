package game

import "encoding/json"

// Client-to-server action names, matching the original transport events.
const (
	ActionCreateRoom          = "createRoom"
	ActionJoinRoom            = "joinRoom"
	ActionGetRooms            = "getRooms"
	ActionGetRoomInfo         = "getRoomInfo"
	ActionSetChoosingCategory = "setChoosingCategory"
	ActionStartRound          = "startRound"
	ActionVote                = "vote"
	ActionNextRound           = "nextRound"
	ActionSkipRound           = "skipRound"
	ActionChat                = "chat"
)

// Server-to-client event names.
const (
	EventConnected   = "connected"
	EventRoomCreated = "roomCreated"
	EventRoomList    = "roomList"
	EventRoomInfo    = "roomInfo"
	EventCategories  = "categories"
	EventRoundResult = "roundResult"
	EventChat        = "chat"
	EventError       = "error"
)

type ClientEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ServerEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type CreateRoomRequest struct {
	RoomName            string `json:"roomName"`
	IsPasswordProtected bool   `json:"isPasswordProtected"`
	Password            string `json:"password"`
	MaxPlayers          int    `json:"maxPlayers"`
	HostName            string `json:"hostName"`
	HostAvatar          string `json:"hostAvatar"`
}

type JoinRoomRequest struct {
	RoomCode     string `json:"roomCode"`
	Password     string `json:"password"`
	PlayerName   string `json:"playerName"`
	PlayerAvatar string `json:"playerAvatar"`
}

type RoomCodeRequest struct {
	RoomCode string `json:"roomCode"`
}

type StartRoundRequest struct {
	RoomCode         string   `json:"roomCode"`
	Region           string   `json:"region"`
	BannedCategories []string `json:"bannedCategories"`
}

type VoteRequest struct {
	RoomCode  string `json:"roomCode"`
	AccusedID string `json:"accusedId"`
}

type ChatRequest struct {
	RoomCode string `json:"roomCode"`
	Text     string `json:"text"`
}

type ChatMessage struct {
	From string `json:"from"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type ErrorPayload struct {
	Code string `json:"code"`
}

type ConnectedPayload struct {
	ID string `json:"id"`
}

type RoomCreatedPayload struct {
	Code string `json:"code"`
}

type RoundResultPayload struct {
	AccusedID      string `json:"accusedId"`
	ImpostorCaught bool   `json:"impostorCaught"`
}
