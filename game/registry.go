package game

import (
	"math/rand"
	"sync"
)

const (
	roomCodeLength   = 6
	roomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Registry owns the live rooms and the player-to-room membership index used
// to resolve disconnects without scanning every room.
//
// Lock ordering: a room's mutex may be taken while holding nothing, and the
// registry mutex may be taken while holding a room mutex, never the other
// way around. Methods that read the registry and then lock a room must drop
// the registry lock first.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	members map[string]string
	intn    func(n int) int
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		members: make(map[string]string),
		intn:    rand.Intn,
	}
}

// generateCode retries until the code is not taken. With 36^6 combinations
// collisions are rare at any realistic room count. Caller holds mu.
func (reg *Registry) generateCode() string {
	buf := make([]byte, roomCodeLength)
	for {
		for i := range buf {
			buf[i] = roomCodeAlphabet[reg.intn(len(roomCodeAlphabet))]
		}
		code := string(buf)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}

// insert assigns a fresh code to the room, registers it, and indexes the
// host's membership. Returns the code.
func (reg *Registry) insert(room *Room, hostID string) string {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.generateCode()
	room.code = code
	reg.rooms[code] = room
	reg.members[hostID] = code
	return code
}

func (reg *Registry) get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// roomOf resolves a player's room through the membership index.
func (reg *Registry) roomOf(playerID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	code, ok := reg.members[playerID]
	if !ok {
		return nil, false
	}
	room, ok := reg.rooms[code]
	return room, ok
}

// bind indexes a player's membership. Called with the room lock held, right
// after the player is appended, so index and membership stay in step.
func (reg *Registry) bind(playerID string, room *Room) {
	reg.mu.Lock()
	reg.members[playerID] = room.code
	reg.mu.Unlock()
}

// release unbinds a departed player and, when the room has just become
// empty, removes the room entirely. Called with the room lock held.
func (reg *Registry) release(room *Room, playerID string) (removedRoom bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.members, playerID)
	if len(room.players) == 0 {
		room.closed = true
		delete(reg.rooms, room.code)
		return true
	}
	return false
}

// list snapshots every live room's summary. Room locks are taken one at a
// time after the registry lock is dropped.
func (reg *Registry) list() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		if !room.closed {
			summaries = append(summaries, room.summary())
		}
		room.mu.Unlock()
	}
	return summaries
}
