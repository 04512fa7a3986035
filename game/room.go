package game

import "sync"

type Phase string

const (
	PhaseWaiting          Phase = "WAITING"
	PhaseChoosingCategory Phase = "CHOOSING_CATEGORY"
	PhasePlaying          Phase = "PLAYING"
	PhaseEnd              Phase = "END"
	PhaseSkipped          Phase = "SKIPPED"
)

// maskedWord is what the impostor sees wherever other members see the word.
const maskedWord = "???"

type Player struct {
	ID     string
	Name   string
	Avatar string
	IsHost bool
	Score  int
}

type RoundState struct {
	Number           int
	Region           string
	BannedCategories []string
	Category         string
	Word             string
	ImpostorID       string
	Votes            map[string]string
	Phase            Phase
}

// Room is a live game session. All fields except code and the password
// digest are guarded by mu; those two are immutable after creation.
type Room struct {
	mu sync.Mutex

	code              string
	name              string
	passwordProtected bool
	credentialDigest  string
	maxPlayers        int

	// closed is set when the registry drops the room; a caller that
	// resolved the pointer before removal must not mutate it further.
	closed bool

	players []*Player
	round   RoundState
}

func newRoom(name string, passwordProtected bool, credentialDigest string, maxPlayers int, host *Player) *Room {
	host.IsHost = true
	return &Room{
		name:              name,
		passwordProtected: passwordProtected,
		credentialDigest:  credentialDigest,
		maxPlayers:        maxPlayers,
		players:           []*Player{host},
		round: RoundState{
			Number: 1,
			Votes:  make(map[string]string),
			Phase:  PhaseWaiting,
		},
	}
}

func (r *Room) playerIndex(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) player(id string) *Player {
	if i := r.playerIndex(id); i >= 0 {
		return r.players[i]
	}
	return nil
}

func (r *Room) isFull() bool {
	return len(r.players) >= r.maxPlayers
}

func (r *Room) isHost(id string) bool {
	p := r.player(id)
	return p != nil && p.IsHost
}

// removePlayer deletes the player, drops any votes cast by or against them,
// and promotes the longest-tenured remaining member if the host left.
// Returns the promoted player's id, if any, and whether the id was a member.
func (r *Room) removePlayer(id string) (promotedID string, ok bool) {
	idx := r.playerIndex(id)
	if idx < 0 {
		return "", false
	}
	wasHost := r.players[idx].IsHost
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	delete(r.round.Votes, id)
	for voter, accused := range r.round.Votes {
		if accused == id {
			delete(r.round.Votes, voter)
		}
	}

	if wasHost && len(r.players) > 0 {
		r.players[0].IsHost = true
		promotedID = r.players[0].ID
	}
	return promotedID, true
}

// assignWord starts a playing round with a fresh word, impostor and empty
// vote map. The round counter is bumped on every assignment except the very
// first one in the room's lifetime.
func (r *Room) assignWord(category, word, impostorID string) {
	if r.round.ImpostorID != "" {
		r.round.Number++
	}
	r.round.Category = category
	r.round.Word = word
	r.round.ImpostorID = impostorID
	r.round.Votes = make(map[string]string)
	r.round.Phase = PhasePlaying
}
