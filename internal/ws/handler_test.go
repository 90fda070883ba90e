package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/DoyleJ11/front-office-draft/internal/hub"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"github.com/DoyleJ11/front-office-draft/internal/types"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dial(t *testing.T, rivalEnabled bool) (*websocket.Conn, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	h := hub.NewHub(ctx, session.Options{Catalog: catalog.Reference(), Seed: 3})
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.CreateSession{Code: "ABC123", State: engine.NewEmptyState("", rivalEnabled), Reply: reply}
	require.NotNil(t, <-reply)

	srv := httptest.NewServer(Handler(h, zap.NewNop()))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?code=ABC123"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn, ctx
}

func read(t *testing.T, ctx context.Context, conn *websocket.Conn) types.ServerMessage {
	t.Helper()
	var msg types.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func TestHandler_DraftOverWebsocket(t *testing.T) {
	conn, ctx := dial(t, false)

	first := read(t, ctx, conn)
	assert.Equal(t, types.MsgStateSnapshot, first.Type)
	require.NotNil(t, first.State)
	assert.Empty(t, first.State.Selected)

	for i, id := range []int{1, 6, 9} {
		require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgAddItem, ItemID: id}))
		snap := read(t, ctx, conn)
		assert.Equal(t, types.MsgStateSnapshot, snap.Type)
		assert.Equal(t, i+1, snap.Version)
	}

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgSimulate, RemoveID: 9, AddID: 5}))
	sim := read(t, ctx, conn)
	assert.Equal(t, types.MsgSwapOutcome, sim.Type)
	require.NotNil(t, sim.Swap)
	assert.Contains(t, sim.Swap.LostSecretCombos, "The Complete Package")

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgEvaluate}))
	ev := read(t, ctx, conn)
	assert.Equal(t, types.MsgEvaluation, ev.Type)
	require.NotNil(t, ev.Evaluation)
	assert.True(t, ev.Evaluation.Passed)
	assert.Equal(t, "BOW-201-M3-EDGE-01", ev.Evaluation.ClaimCode)
}

func TestHandler_ErrorsStayOnTheConnection(t *testing.T) {
	conn, ctx := dial(t, false)
	_ = read(t, ctx, conn)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{nope")))
	msg := read(t, ctx, conn)
	assert.Equal(t, types.MsgError, msg.Type)
	assert.Equal(t, "bad_json", msg.Error.Code)

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgAddItem, ItemID: 99}))
	msg = read(t, ctx, conn)
	assert.Equal(t, "unknown_item", msg.Error.Code)

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgAddItem, ItemID: 1}))
	_ = read(t, ctx, conn)
	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: types.MsgEvaluate}))
	msg = read(t, ctx, conn)
	assert.Equal(t, "requirements_not_met", msg.Error.Code)

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: "Trade"}))
	msg = read(t, ctx, conn)
	assert.Equal(t, "unknown_type", msg.Error.Code)
}

func TestHandler_UnknownSession(t *testing.T) {
	ctx := context.Background()
	h := hub.NewHub(ctx, session.Options{Catalog: catalog.Reference()})
	srv := httptest.NewServer(Handler(h, zap.NewNop()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?code=NOPE"
	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
