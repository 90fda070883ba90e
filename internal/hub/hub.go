package hub

import (
	"context"

	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Code  string
	State engine.State
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	State engine.State // only used if creation happens
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type CountSessions struct {
	Reply chan int
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub maps join codes to live sessions. Every session it creates shares
// opts, so they all draft from the same catalog and record to the same store.
// With a journal configured, a code unknown in memory is restored from its
// event log before the hub treats it as new.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	opts     session.Options
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, opts session.Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the hub has shut down.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				msg.Reply <- h.ensure(msg.Code, msg.State)

			case GetSession:
				msg.Reply <- h.lookup(msg.Code) // May be nil

			case EnsureSession:
				msg.Reply <- h.ensure(msg.Code, msg.State)

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Inbox() <- session.Shutdown{}
					delete(h.sessions, msg.Code)
				}

			case CountSessions:
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) ensure(code string, state engine.State) *session.Session {
	if s := h.lookup(code); s != nil {
		return s
	}
	if j := h.opts.Journal; j != nil {
		if err := j.StartLog(h.ctx, code, state); err != nil {
			h.logger().Warn("failed to start session journal", zap.String("code", code), zap.Error(err))
		}
	}
	return h.start(code, state)
}

// lookup finds a live session, falling back to the journal.
func (h *Hub) lookup(code string) *session.Session {
	if s := h.sessions[code]; s != nil {
		return s
	}
	j := h.opts.Journal
	if j == nil {
		return nil
	}
	log, ok, err := j.LoadLog(h.ctx, code)
	if err != nil {
		h.logger().Warn("failed to load session journal", zap.String("code", code), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	h.logger().Info("session restored", zap.String("code", code), zap.Int("events", len(log.Events)))
	return h.start(code, engine.Restore(h.opts.Catalog, log))
}

func (h *Hub) start(code string, state engine.State) *session.Session {
	opts := h.opts
	opts.Code = code
	s := session.New(h.ctx, state, opts)
	h.sessions[code] = s
	return s
}

func (h *Hub) logger() *zap.Logger {
	if h.opts.Logger == nil {
		return zap.NewNop()
	}
	return h.opts.Logger
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		// sessions also watch h.ctx; don't block on one that already stopped
		select {
		case s.Inbox() <- session.Shutdown{}:
		case <-s.Done():
		}
	}
	clear(h.sessions)
	h.cancel()
}
