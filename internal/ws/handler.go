package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/DoyleJ11/front-office-draft/internal/hub"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"github.com/DoyleJ11/front-office-draft/internal/types"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

var errSessionClosed = errors.New("session closed")

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := randID(6)
		log := log.With(zap.String("session", code), zap.String("client", clientID))

		s.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() {
			select {
			case s.Inbox() <- session.Leave{ClientID: clientID}:
			case <-s.Done():
			}
		}()

		// Replies to queries share the writer with snapshots so one
		// goroutine owns every write.
		replies := make(chan types.ServerMessage, 8)

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			writer(writeCtx, conn, out, replies, log)
		}()
		send := func(m types.ServerMessage) bool {
			select {
			case replies <- m:
				return true
			case <-writerDone:
				return false
			}
		}

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("websocket read ended", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				if !send(types.ServerMessage{Type: types.MsgError, Error: &types.ErrorView{Code: "bad_json", Message: "bad json"}}) {
					return
				}
				continue
			}

			msg, err := handle(r.Context(), s, cm)
			if errors.Is(err, errSessionClosed) {
				return
			}
			if err != nil {
				em := types.ErrorMessage(err)
				msg = &em
			}
			if msg != nil && !send(*msg) {
				return
			}
		}
	}
}

// handle forwards one client message to the session and returns the reply
// to write, if any. Successful commands reply through the snapshot stream.
func handle(ctx context.Context, s *session.Session, cm types.ClientMessage) (*types.ServerMessage, error) {
	if cmd, ok := cm.Command(); ok {
		reply := make(chan error, 1)
		s.Inbox() <- session.FromClient{Cmd: cmd, Reply: reply}
		return nil, await(ctx, s, reply)
	}

	switch cm.Type {
	case types.MsgEvaluate:
		reply := make(chan session.EvalReply, 1)
		s.Inbox() <- session.Evaluate{Reply: reply}
		ev, err := awaitValue(ctx, s, reply)
		if err != nil {
			return nil, err
		}
		if ev.Err != nil {
			return nil, ev.Err
		}
		return &types.ServerMessage{
			Type:       types.MsgEvaluation,
			Version:    ev.Version,
			Evaluation: types.NewEvaluationView(ev.Evaluation),
			Discovery:  types.NewDiscoveryView(ev.Discovery),
		}, nil

	case types.MsgSimulate:
		reply := make(chan session.SimReply, 1)
		s.Inbox() <- session.Simulate{RemoveID: cm.RemoveID, AddID: cm.AddID, Reply: reply}
		sim, err := awaitValue(ctx, s, reply)
		if err != nil {
			return nil, err
		}
		if sim.Err != nil {
			return nil, sim.Err
		}
		return &types.ServerMessage{
			Type:    types.MsgSwapOutcome,
			Version: sim.Version,
			Swap:    types.NewSwapView(sim.Outcome),
		}, nil
	}

	return &types.ServerMessage{Type: types.MsgError, Error: &types.ErrorView{Code: "unknown_type", Message: "unknown type"}}, nil
}

func await(ctx context.Context, s *session.Session, reply <-chan error) error {
	err, werr := awaitValue(ctx, s, reply)
	if werr != nil {
		return werr
	}
	return err
}

func awaitValue[T any](ctx context.Context, s *session.Session, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-s.Done():
		return zero, errSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func writer(ctx context.Context, conn *websocket.Conn, out <-chan session.Snapshot, replies <-chan types.ServerMessage, log *zap.Logger) {
	for {
		var msg types.ServerMessage
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-out:
			if !ok {
				// Dropped as a slow client or the session ended.
				conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}
			msg = types.ServerMessage{
				Type:    types.MsgStateSnapshot,
				Version: snap.Version,
				State:   types.NewStateView(snap.State),
				Events:  types.NewEventViews(snap.Events),
			}
		case msg = <-replies:
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			log.Error("failed to encode server message", zap.Error(err))
			continue
		}
		wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = conn.Write(wctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			log.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
