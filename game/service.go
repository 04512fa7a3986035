package game

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/FunnyValentin/palabra-secreta-websocket-server/words"
)

const (
	// MaxPlayersLimit caps a room's configured capacity.
	MaxPlayersLimit = 20
	// MinPlayersToStart is the smallest group a round makes sense for.
	MinPlayersToStart = 3
)

// Service is the action surface between the transport and the room state.
// Every method validates, mutates exactly one room under its lock, and hands
// the resulting per-recipient snapshots to the Deliverer after unlocking.
type Service struct {
	registry  *Registry
	hasher    PasswordHasher
	corpus    WordCorpus
	picker    WordPicker
	deliverer Deliverer
	log       zerolog.Logger
	intn      func(n int) int
}

func NewService(registry *Registry, hasher PasswordHasher, corpus WordCorpus, picker WordPicker, deliverer Deliverer, log zerolog.Logger) *Service {
	return &Service{
		registry:  registry,
		hasher:    hasher,
		corpus:    corpus,
		picker:    picker,
		deliverer: deliverer,
		log:       log,
		intn:      rand.Intn,
	}
}

type delivery struct {
	to      string
	event   string
	payload any
}

// roomInfoDeliveries builds one masked snapshot per member. Caller holds the
// room lock.
func roomInfoDeliveries(room *Room) []delivery {
	out := make([]delivery, 0, len(room.players))
	for _, p := range room.players {
		out = append(out, delivery{to: p.ID, event: EventRoomInfo, payload: room.snapshotFor(p.ID)})
	}
	return out
}

func (s *Service) send(deliveries []delivery) {
	for _, d := range deliveries {
		s.deliverer.Deliver(d.to, d.event, d.payload)
	}
}

// CreateRoom allocates a room with the creator as sole member and host, and
// returns its code.
func (s *Service) CreateRoom(roomName string, passwordProtected bool, password string, maxPlayers int, hostName, hostAvatar, hostID string) (string, error) {
	if maxPlayers > MaxPlayersLimit {
		return "", ErrInvalidParameters
	}
	if roomName == "" || hostName == "" || maxPlayers <= 0 {
		return "", ErrInvalidParameters
	}

	digest := ""
	if passwordProtected {
		var err error
		digest, err = s.hasher.Hash(password)
		if err != nil {
			return "", ErrInvalidParameters
		}
	}

	host := &Player{ID: hostID, Name: hostName, Avatar: hostAvatar}
	room := newRoom(roomName, passwordProtected, digest, maxPlayers, host)
	code := s.registry.insert(room, hostID)

	s.log.Info().Str("code", code).Str("host", hostID).Msg("room created")
	return code, nil
}

// JoinRoom validates in order: room exists, idempotent re-join, capacity,
// password. Credential comparison runs between two lock sections so the
// CPU-bound hash never holds the room lock; membership and capacity are
// re-checked after it.
func (s *Service) JoinRoom(roomCode, password, playerName, playerAvatar, playerID string) (RoomSnapshot, error) {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if playerName == "" {
		return RoomSnapshot{}, ErrInvalidParameters
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if room.player(playerID) != nil {
		snap := room.snapshotFor(playerID)
		room.mu.Unlock()
		s.deliverer.Deliver(playerID, EventRoomInfo, snap)
		return snap, nil
	}
	if room.isFull() {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomFull
	}
	protected := room.passwordProtected
	digest := room.credentialDigest
	room.mu.Unlock()

	if protected {
		match, err := s.hasher.Compare(digest, password)
		if err != nil || !match {
			return RoomSnapshot{}, ErrInvalidCredential
		}
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if room.player(playerID) != nil {
		snap := room.snapshotFor(playerID)
		room.mu.Unlock()
		s.deliverer.Deliver(playerID, EventRoomInfo, snap)
		return snap, nil
	}
	if room.isFull() {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomFull
	}

	room.players = append(room.players, &Player{ID: playerID, Name: playerName, Avatar: playerAvatar})
	s.registry.bind(playerID, room)
	snap := room.snapshotFor(playerID)
	deliveries := roomInfoDeliveries(room)
	room.mu.Unlock()

	s.send(deliveries)
	s.log.Info().Str("code", roomCode).Str("player", playerID).Msg("player joined")
	return snap, nil
}

func (s *Service) ListRooms() []RoomSummary {
	return s.registry.list()
}

// GetRoomInfo returns the caller's masked view of their room.
func (s *Service) GetRoomInfo(roomCode, callerID string) (RoomSnapshot, error) {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed {
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if room.player(callerID) == nil {
		return RoomSnapshot{}, ErrNotMember
	}
	return room.snapshotFor(callerID), nil
}

// LeaveOrDisconnect removes the player from whatever room they occupy. The
// last member leaving destroys the room; a departing host is succeeded by
// the longest-tenured remaining member.
func (s *Service) LeaveOrDisconnect(playerID string) {
	room, ok := s.registry.roomOf(playerID)
	if !ok {
		return
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return
	}
	promotedID, removed := room.removePlayer(playerID)
	if !removed {
		room.mu.Unlock()
		return
	}
	code := room.code
	roomGone := s.registry.release(room, playerID)
	var deliveries []delivery
	if !roomGone {
		deliveries = roomInfoDeliveries(room)
	}
	room.mu.Unlock()

	if roomGone {
		s.log.Info().Str("code", code).Msg("room removed, no players left")
		return
	}
	if promotedID != "" {
		s.log.Info().Str("code", code).Str("player", promotedID).Msg("host promoted")
	}
	s.send(deliveries)
}

// SetChoosingCategory moves the room into category choice and returns the
// corpus structure for the host to browse. Refused while a word is live.
func (s *Service) SetChoosingCategory(roomCode, callerID string) (map[string][]string, error) {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return nil, ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if room.player(callerID) == nil {
		room.mu.Unlock()
		return nil, ErrNotMember
	}
	if !room.isHost(callerID) {
		room.mu.Unlock()
		return nil, ErrNotHost
	}
	if room.round.Phase == PhasePlaying {
		room.mu.Unlock()
		return nil, ErrWrongPhase
	}

	room.round.Phase = PhaseChoosingCategory
	deliveries := roomInfoDeliveries(room)
	room.mu.Unlock()

	s.send(deliveries)
	return s.corpus.CategoriesByRegion(), nil
}

// StartRound runs the round-start algorithm from CHOOSING_CATEGORY: select
// category and word for the region outside the banned set, pick an impostor
// by index, reset votes, and broadcast each member their masked view.
// A nil bannedCategories keeps the room's stored exclusions.
func (s *Service) StartRound(roomCode, region string, bannedCategories []string, callerID string) error {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	if room.player(callerID) == nil {
		room.mu.Unlock()
		return ErrNotMember
	}
	if !room.isHost(callerID) {
		room.mu.Unlock()
		return ErrNotHost
	}
	if room.round.Phase != PhaseChoosingCategory {
		room.mu.Unlock()
		return ErrWrongPhase
	}
	if !s.corpus.HasRegion(region) {
		room.mu.Unlock()
		return ErrInvalidRegion
	}
	if len(room.players) < MinPlayersToStart {
		room.mu.Unlock()
		return ErrInsufficientPlayers
	}

	banned := room.round.BannedCategories
	if bannedCategories != nil {
		banned = bannedCategories
	}

	err := s.assignNewWord(room, region, banned)
	if err != nil {
		room.mu.Unlock()
		return err
	}
	room.round.Region = region
	room.round.BannedCategories = banned
	deliveries := roomInfoDeliveries(room)
	number := room.round.Number
	room.mu.Unlock()

	s.send(deliveries)
	s.log.Info().Str("code", roomCode).Int("round", number).Msg("round started")
	return nil
}

// assignNewWord picks category, word and impostor and flips the room into
// PLAYING. No state is touched if selection fails. Caller holds the room
// lock.
func (s *Service) assignNewWord(room *Room, region string, banned []string) error {
	category, word, err := s.picker.Pick(region, banned)
	if err != nil {
		switch {
		case errors.Is(err, words.ErrNoCategories):
			return ErrNoCategoriesAvailable
		case errors.Is(err, words.ErrUnknownRegion):
			return ErrInvalidRegion
		default:
			return err
		}
	}
	impostor := room.players[s.intn(len(room.players))]
	room.assignWord(category, word, impostor.ID)
	return nil
}

// NextRound replays the round-start algorithm with the stored region and
// banned categories, from END or SKIPPED.
func (s *Service) NextRound(roomCode, callerID string) error {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	if room.player(callerID) == nil {
		room.mu.Unlock()
		return ErrNotMember
	}
	if !room.isHost(callerID) {
		room.mu.Unlock()
		return ErrNotHost
	}
	if room.round.Phase != PhaseEnd && room.round.Phase != PhaseSkipped {
		room.mu.Unlock()
		return ErrWrongPhase
	}
	if len(room.players) < MinPlayersToStart {
		room.mu.Unlock()
		return ErrInsufficientPlayers
	}

	err := s.assignNewWord(room, room.round.Region, room.round.BannedCategories)
	if err != nil {
		room.mu.Unlock()
		return err
	}
	deliveries := roomInfoDeliveries(room)
	number := room.round.Number
	room.mu.Unlock()

	s.send(deliveries)
	s.log.Info().Str("code", roomCode).Int("round", number).Msg("round started")
	return nil
}

// SkipRound abandons the live word without resolving votes. Word and
// impostor stay assigned so the next round bumps the counter as usual.
func (s *Service) SkipRound(roomCode, callerID string) error {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	if room.player(callerID) == nil {
		room.mu.Unlock()
		return ErrNotMember
	}
	if !room.isHost(callerID) {
		room.mu.Unlock()
		return ErrNotHost
	}
	if room.round.Phase != PhasePlaying {
		room.mu.Unlock()
		return ErrWrongPhase
	}

	room.round.Phase = PhaseSkipped
	deliveries := roomInfoDeliveries(room)
	room.mu.Unlock()

	s.send(deliveries)
	return nil
}

// Vote records (or overwrites) the voter's accusation. The vote that
// completes the set triggers resolution; every earlier vote just re-sends
// snapshots so clients can show progress.
func (s *Service) Vote(roomCode, voterID, accusedID string) error {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	if room.player(voterID) == nil || room.player(accusedID) == nil {
		room.mu.Unlock()
		return ErrNotMember
	}
	if room.round.Phase != PhasePlaying {
		room.mu.Unlock()
		return ErrWrongPhase
	}

	room.recordVote(voterID, accusedID)

	var deliveries []delivery
	resolved := room.allVotesIn()
	if resolved {
		outcome := room.resolveVotes()
		deliveries = roomInfoDeliveries(room)
		result := RoundResultPayload{AccusedID: outcome.AccusedID, ImpostorCaught: outcome.ImpostorCaught}
		for _, p := range room.players {
			deliveries = append(deliveries, delivery{to: p.ID, event: EventRoundResult, payload: result})
		}
	} else {
		deliveries = roomInfoDeliveries(room)
	}
	room.mu.Unlock()

	s.send(deliveries)
	if resolved {
		s.log.Info().Str("code", roomCode).Msg("round resolved")
	}
	return nil
}

// Chat relays a message to every member of the sender's room. No room state
// is involved.
func (s *Service) Chat(roomCode, fromID, text string) error {
	room, ok := s.registry.get(roomCode)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	sender := room.player(fromID)
	if sender == nil {
		room.mu.Unlock()
		return ErrNotMember
	}
	msg := ChatMessage{From: sender.ID, Name: sender.Name, Text: text}
	deliveries := make([]delivery, 0, len(room.players))
	for _, p := range room.players {
		deliveries = append(deliveries, delivery{to: p.ID, event: EventChat, payload: msg})
	}
	room.mu.Unlock()

	s.send(deliveries)
	return nil
}
