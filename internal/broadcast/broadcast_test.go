package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

type recorderPublisher struct {
	name string
	err  error

	mu   sync.Mutex
	msgs []model.NextPrayer
}

func (p *recorderPublisher) Name() string { return p.name }

func (p *recorderPublisher) Publish(_ context.Context, msg model.NextPrayer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recorderPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

type fakeRecorder struct {
	mu      sync.Mutex
	results map[string][]error
	seconds int64
}

func (r *fakeRecorder) RecordBroadcast(sink string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = make(map[string][]error)
	}
	r.results[sink] = append(r.results[sink], err)
}

func (r *fakeRecorder) SetSecondsToNext(s int64) {
	r.mu.Lock()
	r.seconds = s
	r.mu.Unlock()
}

var loc = time.FixedZone("BDT", 6*3600)

func testTicker(t *testing.T) *prayer.Ticker {
	t.Helper()
	s, err := prayer.DefaultTimetable().Schedule()
	require.NoError(t, err)
	return prayer.NewTicker(5*time.Millisecond, func() prayer.Schedule { return s }, func() time.Time {
		return time.Date(2024, 3, 1, 15, 0, 0, 0, loc)
	})
}

func TestBroadcaster_FansOutAndSurvivesFailingSink(t *testing.T) {
	good := &recorderPublisher{name: "good"}
	bad := &recorderPublisher{name: "bad", err: errors.New("down")}
	rec := &fakeRecorder{}
	b := New(testTicker(t), rec, bad, good)

	_, ok := b.Latest()
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	require.Eventually(t, func() bool { return good.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.GreaterOrEqual(t, bad.count(), 3)
	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, "Asr", latest.Name)
	assert.Equal(t, "04:30 PM", latest.Time)
	assert.Equal(t, int64(5400), latest.SecondsRemaining)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, int64(5400), rec.seconds)
	require.NotEmpty(t, rec.results["bad"])
	assert.Error(t, rec.results["bad"][0])
	assert.NoError(t, rec.results["good"][0])
}

type fakeCounter struct {
	mu   sync.Mutex
	open int
}

func (c *fakeCounter) SocketOpened() { c.mu.Lock(); c.open++; c.mu.Unlock() }
func (c *fakeCounter) SocketClosed() { c.mu.Lock(); c.open--; c.mu.Unlock() }
func (c *fakeCounter) get() int      { c.mu.Lock(); defer c.mu.Unlock(); return c.open }

func TestHub_SendsSnapshotThenUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	initial := model.NextPrayer{Name: "Asr", Time: "04:30 PM", SecondsRemaining: 90}
	counter := &fakeCounter{}
	hub := NewHub(func() (model.NextPrayer, bool) { return initial, true }, counter)
	assert.Equal(t, "websocket", hub.Name())

	r := gin.New()
	r.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var got model.NextPrayer
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, initial.Name, got.Name)
	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, 1, counter.get())

	update := model.NextPrayer{Name: "Maghrib", Time: "06:15 PM", SecondsRemaining: 10}
	require.NoError(t, hub.Publish(context.Background(), update))

	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Maghrib", got.Name)
	assert.Equal(t, int64(10), got.SecondsRemaining)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, counter.get())
}

func TestHub_PublishWithoutClients(t *testing.T) {
	hub := NewHub(nil, nil)
	assert.NoError(t, hub.Publish(context.Background(), model.NextPrayer{Name: "Isha"}))
	hub.Close()
	assert.Equal(t, 0, hub.Count())
}
