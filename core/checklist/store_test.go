package checklist

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwneis/neishelper/core/catalog"
)

var errGateway = errors.New("gateway down")

// memGateway is a Gateway over a map that counts calls and can be made to fail.
type memGateway struct {
	mu     sync.Mutex
	blobs  map[string]string
	gets   int
	puts   int
	getErr error
	putErr error
}

func newMemGateway() *memGateway {
	return &memGateway{blobs: make(map[string]string)}
}

func (g *memGateway) Get(_ context.Context, userID string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gets++
	if g.getErr != nil {
		return "", false, g.getErr
	}
	blob, ok := g.blobs[userID]
	return blob, ok, nil
}

func (g *memGateway) Put(_ context.Context, userID, blob string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.puts++
	if g.putErr != nil {
		return g.putErr
	}
	g.blobs[userID] = blob
	return nil
}

func (g *memGateway) stored(t *testing.T, userID string) State {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	blob, ok := g.blobs[userID]
	require.Truef(t, ok, "nothing stored for %q", userID)
	state, err := Decode(blob)
	require.NoError(t, err)
	return state
}

func (g *memGateway) putCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.puts
}

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name   string
		blob   *string
		getErr error
		want   State
	}{
		{name: "absent", want: State{}},
		{name: "gateway error", getErr: errGateway, want: State{}},
		{name: "corrupt", blob: strPtr("{not json"), want: State{}},
		{name: "wrong shape", blob: strPtr(`[1,2]`), want: State{}},
		{name: "null", blob: strPtr("null"), want: State{}},
		{name: "stored", blob: strPtr(`{"a":true,"b":false}`), want: State{"a": true, "b": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newMemGateway()
			gw.getErr = tt.getErr
			if tt.blob != nil {
				gw.blobs["u"] = *tt.blob
			}
			s := NewStore(gw, "u")
			assert.Equal(t, StatusUninitialized, s.Status())

			got := s.Load(context.Background())
			s.Wait()

			assert.Equal(t, tt.want, got)
			assert.Equal(t, StatusReady, s.Status())
			assert.Equal(t, 0, gw.putCount(), "load must not save")
		})
	}
}

func TestStore_LoadOnce(t *testing.T) {
	gw := newMemGateway()
	gw.blobs["u"] = `{"a":true}`
	s := NewStore(gw, "u")

	s.Load(context.Background())
	gw.blobs["u"] = `{"b":true}`
	got := s.Load(context.Background())

	assert.Equal(t, State{"a": true}, got)
	assert.Equal(t, 1, gw.gets)
}

func TestStore_Toggle(t *testing.T) {
	gw := newMemGateway()
	s := NewStore(gw, "u")
	s.Load(context.Background())

	assert.True(t, s.Toggle("a"), "first toggle checks")
	assert.True(t, s.Checked("a"))
	assert.False(t, s.Toggle("a"), "second toggle unchecks")
	assert.False(t, s.Checked("a"))
	s.Wait()

	// the older save is dropped when the newer one is written first
	assert.GreaterOrEqual(t, gw.putCount(), 1)
	assert.LessOrEqual(t, gw.putCount(), 2)
	assert.False(t, gw.stored(t, "u").Checked("a"))
}

// heldGateway blocks the first Put until released.
type heldGateway struct {
	*memGateway
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *heldGateway) Put(ctx context.Context, userID, blob string) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.memGateway.Put(ctx, userID, blob)
}

func TestStore_Toggle_inFlightSave(t *testing.T) {
	gw := &heldGateway{memGateway: newMemGateway(), entered: make(chan struct{}), release: make(chan struct{})}
	s := NewStore(gw, "u")
	s.Load(context.Background())

	s.Toggle("a")
	<-gw.entered
	s.Toggle("a")
	close(gw.release)
	s.Wait()

	assert.Equal(t, 2, gw.putCount())
	assert.False(t, gw.stored(t, "u").Checked("a"))
}

func TestStore_DoubleToggleRestores(t *testing.T) {
	for _, initial := range []string{`{}`, `{"a":true}`, `{"a":false}`} {
		gw := newMemGateway()
		gw.blobs["u"] = initial
		s := NewStore(gw, "u")
		before := s.Load(context.Background()).Checked("a")

		s.Toggle("a")
		s.Toggle("a")
		s.Wait()

		if got := s.Checked("a"); got != before {
			t.Errorf("initial %s: Checked() after double toggle = %v, want %v", initial, got, before)
		}
	}
}

func TestStore_NoSaveBeforeReady(t *testing.T) {
	gw := newMemGateway()
	s := NewStore(gw, "u")

	s.Toggle("a")
	s.ResetScope("a")
	s.Wait()
	assert.Equal(t, 0, gw.putCount())

	s.Load(context.Background())
	s.Toggle("b")
	s.Wait()
	assert.Equal(t, 1, gw.putCount())
}

func TestStore_ResetScope(t *testing.T) {
	gw := newMemGateway()
	gw.blobs["u"] = `{"A":true,"B":true,"B1":true,"other":true}`
	s := NewStore(gw, "u")
	s.Load(context.Background())

	items := []catalog.Item{
		{ID: "A"},
		{ID: "B", SubItems: []catalog.SubItem{{ID: "B1"}}},
	}
	s.ResetScope(catalog.ScopeIDs(items)...)
	s.Wait()

	assert.Equal(t, Progress{Checked: 0, Total: 3}, Count(items, s.State()))
	// keys are deleted, not set to false
	assert.Equal(t, State{"other": true}, s.State())
	assert.Equal(t, State{"other": true}, gw.stored(t, "u"))
}

func TestStore_ResetDoesNotCascade(t *testing.T) {
	gw := newMemGateway()
	gw.blobs["u"] = `{"B":true,"B1":true}`
	s := NewStore(gw, "u")
	s.Load(context.Background())

	s.ResetScope("B")
	s.Wait()

	assert.Equal(t, State{"B1": true}, s.State())
}

func TestStore_SaveFailureIsSwallowed(t *testing.T) {
	gw := newMemGateway()
	gw.putErr = errGateway
	s := NewStore(gw, "u")
	s.Load(context.Background())

	s.Toggle("a")
	s.Wait()

	assert.True(t, s.Checked("a"), "memory stays the source of truth")
	assert.Equal(t, 1, gw.putCount())
}

func TestStore_LastSaveWins(t *testing.T) {
	gw := newMemGateway()
	s := NewStore(gw, "u")
	s.Load(context.Background())

	for i := 0; i < 50; i++ {
		s.Toggle("a")
		s.Toggle("b")
		s.Toggle("a")
	}
	s.Wait()

	assert.Equal(t, s.State(), gw.stored(t, "u"))
}

func TestStore_UnknownIDIsInert(t *testing.T) {
	gw := newMemGateway()
	s := NewStore(gw, "u")
	s.Load(context.Background())

	items := []catalog.Item{{ID: "A"}}
	s.Toggle("not-in-catalog")
	s.Wait()

	assert.True(t, s.Checked("not-in-catalog"))
	assert.Equal(t, Progress{Checked: 0, Total: 1}, Count(items, s.State()))
}

func TestStore_EndToEnd(t *testing.T) {
	gw := newMemGateway()
	s := NewStore(gw, "u")
	s.Load(context.Background())

	a := catalog.Item{ID: "A", Period: catalog.PeriodYearStart}
	b := catalog.Item{ID: "B", Period: catalog.PeriodYearStart, SubItems: []catalog.SubItem{{ID: "B1"}}}
	items := []catalog.Item{a, b}

	s.Toggle("B1")
	assert.Equal(t, State{"B1": true}, s.State())
	p := Count(items, s.State())
	assert.Equal(t, Progress{Checked: 1, Total: 3}, p)
	assert.Equal(t, 33, p.Percent())

	s.ResetScope("A", "B", "B1")
	assert.Equal(t, State{}, s.State())
	assert.Equal(t, Progress{Checked: 0, Total: 3}, Count(items, s.State()))

	s.Wait()
	assert.Equal(t, State{}, gw.stored(t, "u"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StatusUninitialized.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}

func strPtr(s string) *string { return &s }
