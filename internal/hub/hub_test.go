package hub

import (
	"context"
	"testing"
	"time"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"github.com/DoyleJ11/front-office-draft/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, session.Options{Catalog: catalog.Reference(), Seed: 1})
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newHub(t)
	reply := make(chan *session.Session, 1)

	state := engine.NewEmptyState("", true)
	h.Inbox() <- CreateSession{Code: "ZED123", State: state, Reply: reply}
	s1 := <-reply

	h.Inbox() <- GetSession{Code: "ZED123", Reply: reply}
	s2 := <-reply

	require.NotNil(t, s1)
	assert.Same(t, s1, s2)

	h.Inbox() <- EnsureSession{Code: "ZED123", State: state, Reply: reply}
	assert.Same(t, s1, <-reply)
}

func TestHub_GetUnknown_ReturnsNil(t *testing.T) {
	h := newHub(t)
	reply := make(chan *session.Session, 1)
	h.Inbox() <- GetSession{Code: "NOPE", Reply: reply}
	assert.Nil(t, <-reply)
}

func TestHub_Remove_ShutsSessionDown(t *testing.T) {
	h := newHub(t)
	reply := make(chan *session.Session, 1)
	h.Inbox() <- EnsureSession{Code: "A", State: engine.NewEmptyState("", false), Reply: reply}
	s := <-reply

	h.Inbox() <- RemoveSession{Code: "A"}

	select {
	case <-s.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatal("removed session is still running")
	}

	count := make(chan int, 1)
	h.Inbox() <- CountSessions{Reply: count}
	assert.Equal(t, 0, <-count)
}

func TestHub_Shutdown_StopsEverySession(t *testing.T) {
	h := newHub(t)
	reply := make(chan *session.Session, 1)
	var sessions []*session.Session
	for _, code := range []string{"A", "B"} {
		h.Inbox() <- CreateSession{Code: code, State: engine.NewEmptyState("", false), Reply: reply}
		sessions = append(sessions, <-reply)
	}

	h.Inbox() <- ShutdownHub{}

	dones := []<-chan struct{}{h.Done()}
	for _, s := range sessions {
		dones = append(dones, s.Done())
	}
	for _, done := range dones {
		select {
		case <-done:
		case <-time.After(200 * time.Millisecond):
			t.Fatal("shutdown did not propagate")
		}
	}
}

func TestHub_RestoresSessionFromJournal(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	opts := session.Options{Catalog: catalog.Reference(), Store: st, Journal: st, Seed: 1}

	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(ctx, opts)
	reply := make(chan *session.Session, 1)
	h.Inbox() <- EnsureSession{Code: "KEEP01", State: engine.NewEmptyState("shoestring", false), Reply: reply}
	s := <-reply
	require.NotNil(t, s)

	for _, id := range []int{1, 6} {
		errc := make(chan error, 1)
		s.Inbox() <- session.FromClient{Cmd: engine.Command{Type: engine.CmdAddItem, ItemID: id}, Reply: errc}
		require.NoError(t, <-errc)
	}
	// the session journals before it answers the next message
	view := make(chan session.View, 1)
	s.Inbox() <- session.GetState{Reply: view}
	require.Equal(t, 2, (<-view).Version)

	h.Inbox() <- ShutdownHub{}
	<-h.Done()
	cancel()

	h2 := newHubWith(t, opts)
	h2.Inbox() <- GetSession{Code: "KEEP01", Reply: reply}
	restored := <-reply
	require.NotNil(t, restored)
	assert.NotSame(t, s, restored)

	restored.Inbox() <- session.GetState{Reply: view}
	got := <-view
	assert.Equal(t, 0, got.Version)
	assert.Equal(t, "shoestring", got.State.Mode)
	assert.Equal(t, []int{1, 6}, got.State.Selected.Sorted())
	assert.InDelta(t, 5.3, got.State.Cost, 1e-9)

	// ensuring a restored code keeps its draft instead of starting over
	h2.Inbox() <- EnsureSession{Code: "KEEP01", State: engine.NewEmptyState("", false), Reply: reply}
	assert.Same(t, restored, <-reply)

	h2.Inbox() <- GetSession{Code: "NEVER1", Reply: reply}
	assert.Nil(t, <-reply)
}

func newHubWith(t *testing.T, opts session.Options) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, opts)
}
