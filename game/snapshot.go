package game

// PlayerView never carries credential material; it is safe to send to any
// member of the room.
type PlayerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	IsHost bool   `json:"isHost"`
	Score  int    `json:"score"`
}

type RoundView struct {
	Round     int    `json:"round"`
	Category  string `json:"category,omitempty"`
	Word      string `json:"word,omitempty"`
	VotesCast int    `json:"votesCast"`
	State     Phase  `json:"state"`
}

type RoomSnapshot struct {
	RoomName         string       `json:"roomName"`
	Players          []PlayerView `json:"players"`
	MaxPlayers       int          `json:"maxPlayers"`
	BannedCategories []string     `json:"bannedCategories"`
	Region           string       `json:"region,omitempty"`
	GameState        RoundView    `json:"gameState"`
}

// RoomSummary is the lobby-list view: counts only, no round or player detail.
type RoomSummary struct {
	Code                string `json:"code"`
	RoomName            string `json:"roomName"`
	IsPasswordProtected bool   `json:"isPasswordProtected"`
	MaxPlayers          int    `json:"maxPlayers"`
	CurrentPlayers      int    `json:"currentPlayers"`
}

// snapshotFor builds the room view for one recipient. The word is recomputed
// per viewer on every call: the impostor always sees the mask, everyone else
// the real word. Must be called with the room lock held.
func (r *Room) snapshotFor(viewerID string) RoomSnapshot {
	players := make([]PlayerView, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerView{
			ID:     p.ID,
			Name:   p.Name,
			Avatar: p.Avatar,
			IsHost: p.IsHost,
			Score:  p.Score,
		}
	}

	round := RoundView{
		Round:     r.round.Number,
		VotesCast: len(r.round.Votes),
		State:     r.round.Phase,
	}
	if r.round.Word != "" {
		round.Category = r.round.Category
		if viewerID == r.round.ImpostorID {
			round.Word = maskedWord
		} else {
			round.Word = r.round.Word
		}
	}

	banned := make([]string, len(r.round.BannedCategories))
	copy(banned, r.round.BannedCategories)

	return RoomSnapshot{
		RoomName:         r.name,
		Players:          players,
		MaxPlayers:       r.maxPlayers,
		BannedCategories: banned,
		Region:           r.round.Region,
		GameState:        round,
	}
}

// summary must be called with the room lock held.
func (r *Room) summary() RoomSummary {
	return RoomSummary{
		Code:                r.code,
		RoomName:            r.name,
		IsPasswordProtected: r.passwordProtected,
		MaxPlayers:          r.maxPlayers,
		CurrentPlayers:      len(r.players),
	}
}
