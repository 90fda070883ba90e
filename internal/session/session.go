package session

import (
	"context"
	"math/rand/v2"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"go.uber.org/zap"
)

type Msg interface{ isSessionMsg() }

// FromClient applies a command. Reply, when set, receives the command's
// error (nil on success) before any snapshot is broadcast.
type FromClient struct {
	Cmd   engine.Command
	Reply chan error
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Evaluate struct {
	Reply chan EvalReply
}

func (Evaluate) isSessionMsg() {}

type Simulate struct {
	RemoveID int // 0 for none
	AddID    int // 0 for none
	Reply    chan SimReply
}

func (Simulate) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
	Events  []engine.Event
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type EvalReply struct {
	Version    int // state version the evaluation was computed against
	Evaluation engine.Evaluation
	Discovery  engine.Discovery
	Err        error
}

type SimReply struct {
	Version int
	Outcome engine.SwapOutcome
	Err     error
}

type Options struct {
	Catalog *catalog.Catalog
	Store   engine.RecordStore // optional
	Journal engine.Journal     // optional; accepted events are appended under Code
	Code    string
	Logger  *zap.Logger // optional
	Rand    engine.Rand // optional; overrides Seed
	Seed    uint64      // 0 seeds from the runtime
}

// Session owns one player's draft state. Every message is handled on the
// session's goroutine, so each evaluation sees exactly one state version.
type Session struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	cat     *catalog.Catalog
	store   engine.RecordStore
	journal engine.Journal
	code    string
	rng     engine.Rand
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, initial engine.State, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		cat:     opts.Catalog,
		store:   opts.Store,
		journal: opts.Journal,
		code:    opts.Code,
		rng:     rng,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: s.version, State: s.state}

			case Leave:
				delete(s.clients, msg.ClientID)

			case FromClient:
				events, newState, err := engine.Apply(s.cat, s.state, msg.Cmd, s.rng)
				if msg.Reply != nil {
					msg.Reply <- err
				}
				if err != nil {
					s.log.Debug("command rejected", zap.String("type", string(msg.Cmd.Type)),
						zap.Int("item", msg.Cmd.ItemID), zap.Error(err))
					break
				}
				if len(events) == 0 {
					break
				}
				s.state = newState
				s.version++
				s.persist(events)
				s.broadcast(Snapshot{Version: s.version, State: s.state, Events: events})

			case Evaluate:
				msg.Reply <- s.evaluate()

			case Simulate:
				out, err := s.state.Simulate(s.cat, engine.Swap{RemoveID: msg.RemoveID, AddID: msg.AddID})
				msg.Reply <- SimReply{Version: s.version, Outcome: out, Err: err}

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.state,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) evaluate() EvalReply {
	reply := EvalReply{Version: s.version}
	reply.Evaluation, reply.Err = engine.Evaluate(s.cat, s.state.Mode, s.state.Selected)
	if reply.Err != nil || s.store == nil {
		return reply
	}

	d, err := engine.Record(s.ctx, s.store, reply.Evaluation)
	if err != nil {
		// the score stands even if bookkeeping fails
		s.log.Warn("failed to record evaluation", zap.Error(err))
	}
	reply.Discovery = d
	for _, name := range d.NewCombos {
		s.log.Info("secret combo discovered", zap.String("combo", name))
	}
	return reply
}

func (s *Session) persist(events []engine.Event) {
	if s.journal == nil {
		return
	}
	if err := s.journal.AppendEvents(s.ctx, s.code, events); err != nil {
		// the live draft goes on; only a restart would lose these events
		s.log.Warn("failed to journal events", zap.String("code", s.code), zap.Error(err))
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

// Inbox exposes the inbox so tests or the WS layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }
