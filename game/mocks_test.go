package game

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// --- NetworkSession ---

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNetworkSession) Close(errCode string) {
	m.Called(errCode)
}

// --- WordPicker ---

type MockWordPicker struct {
	mock.Mock
}

func (m *MockWordPicker) Pick(region string, banned []string) (string, string, error) {
	args := m.Called(region, banned)
	return args.String(0), args.String(1), args.Error(2)
}

// --- Deliverer ---

// fakeDeliverer records every delivery so tests can assert per-recipient
// views, which mock.Called argument matching is too clumsy for.
type fakeDeliverer struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	to      string
	event   string
	payload any
}

func (f *fakeDeliverer) Deliver(playerID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, capturedEvent{to: playerID, event: event, payload: payload})
}

func (f *fakeDeliverer) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

func (f *fakeDeliverer) eventsFor(playerID, event string) []capturedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []capturedEvent
	for _, e := range f.events {
		if e.to == playerID && e.event == event {
			out = append(out, e)
		}
	}
	return out
}

// lastSnapshot returns the most recent roomInfo delivered to the player.
func (f *fakeDeliverer) lastSnapshot(playerID string) (RoomSnapshot, bool) {
	events := f.eventsFor(playerID, EventRoomInfo)
	if len(events) == 0 {
		return RoomSnapshot{}, false
	}
	snap, ok := events[len(events)-1].payload.(RoomSnapshot)
	return snap, ok
}

// --- PasswordHasher ---

// fakeHasher stands in for argon2id so unit tests stay fast; the real
// hasher is covered in the crypto package.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "digest:" + password, nil
}

func (fakeHasher) Compare(hash, password string) (bool, error) {
	return hash == "digest:"+password, nil
}

// --- WordCorpus ---

type fakeCorpus struct{}

func (fakeCorpus) HasRegion(region string) bool {
	return region == "Argentina" || region == "Internacional"
}

func (fakeCorpus) CategoriesByRegion() map[string][]string {
	return map[string][]string{
		"Argentina":     {"Comidas", "Lugares"},
		"Internacional": {"Animales", "Comidas"},
	}
}

// fixedPicker always selects the same category and word.
type fixedPicker struct {
	category string
	word     string
	err      error
}

func (p fixedPicker) Pick(region string, banned []string) (string, string, error) {
	return p.category, p.word, p.err
}
