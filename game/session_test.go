package game

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReadPump_HandlesFramesUntilError(t *testing.T) {
	t.Parallel()
	mockConn := &MockNetworkSession{}
	mockConn.On("Read").Return([]byte(`{"event":"getRooms"}`), nil).Once()
	mockConn.On("Read").Return([]byte{}, assert.AnError).Once()
	mockConn.On("Close", "").Return()

	s := newSession("p1", mockConn)

	var handled [][]byte
	s.readPump(func(data []byte) {
		handled = append(handled, data)
	})

	require.Len(t, handled, 1)
	assert.Equal(t, []byte(`{"event":"getRooms"}`), handled[0])
	mockConn.AssertExpectations(t)

	select {
	case <-s.done:
	default:
		assert.Fail(t, "session must be closed after the read pump exits")
	}
}

func TestReadPump_RateLimitsFloods(t *testing.T) {
	t.Parallel()
	mockConn := &MockNetworkSession{}
	mockConn.On("Read").Return([]byte(`{}`), nil).Times(50)
	mockConn.On("Read").Return([]byte{}, assert.AnError).Once()
	mockConn.On("Close", "").Return()

	s := newSession("p1", mockConn)

	handled := 0
	s.readPump(func(data []byte) { handled++ })

	// burst of 10 passes, the rest of the flood is dropped
	assert.GreaterOrEqual(t, handled, 10)
	assert.Less(t, handled, 50)
}

func TestWritePump_DrainsInbox(t *testing.T) {
	t.Parallel()
	mockConn := &MockNetworkSession{}

	var mu sync.Mutex
	var written [][]byte
	wrote := make(chan struct{}, 8)
	mockConn.On("Write", mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		written = append(written, args.Get(0).([]byte))
		mu.Unlock()
		wrote <- struct{}{}
	}).Return(nil)
	mockConn.On("Close", "").Return()

	s := newSession("p1", mockConn)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump()
	}()

	s.deliver([]byte("uno"))
	s.deliver([]byte("dos"))

	for i := 0; i < 2; i++ {
		select {
		case <-wrote:
		case <-time.After(time.Second):
			t.Fatal("write pump did not drain the inbox")
		}
	}

	s.close()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, written, 2)
	assert.Equal(t, []byte("uno"), written[0])
	assert.Equal(t, []byte("dos"), written[1])
}

func TestDeliver_NeverBlocks(t *testing.T) {
	t.Parallel()
	mockConn := &MockNetworkSession{}
	s := newSession("p1", mockConn)

	// nobody draining the inbox: overflow must drop, not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(s.inbox)+64; i++ {
			s.deliver([]byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliver blocked on a full inbox")
	}
	assert.Len(t, s.inbox, cap(s.inbox))
}

func TestHub_DeliverWrapsEnvelope(t *testing.T) {
	t.Parallel()
	hub := NewHub(zerolog.Nop())
	mockConn := &MockNetworkSession{}
	s := newSession("p1", mockConn)
	hub.add(s)

	hub.Deliver("p1", EventRoomCreated, RoomCreatedPayload{Code: "ABC123"})

	select {
	case data := <-s.inbox:
		var env struct {
			Event string             `json:"event"`
			Data  RoomCreatedPayload `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &env))
		assert.Equal(t, EventRoomCreated, env.Event)
		assert.Equal(t, "ABC123", env.Data.Code)
	default:
		t.Fatal("nothing delivered to the session inbox")
	}

	// unknown and removed recipients are silent drops
	assert.NotPanics(t, func() {
		hub.Deliver("ghost", EventRoomCreated, nil)
		hub.remove("p1")
		hub.Deliver("p1", EventRoomCreated, nil)
	})
}
