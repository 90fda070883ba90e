package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/DoyleJ11/front-office-draft/internal/hub"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"github.com/DoyleJ11/front-office-draft/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Records is the read side of the record store.
type Records interface {
	engine.RecordStore
	Discovered(ctx context.Context) ([]string, error)
}

type API struct {
	hub          *hub.Hub
	cat          *catalog.Catalog
	records      Records // may be nil
	log          *zap.Logger
	rivalEnabled bool
}

func NewAPI(h *hub.Hub, cat *catalog.Catalog, records Records, log *zap.Logger, rivalEnabled bool) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{hub: h, cat: cat, records: records, log: log, rivalEnabled: rivalEnabled}
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createSessionRequest struct {
	Mode  string `json:"mode"`
	Rival *bool  `json:"rival,omitempty"`
}

func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, &types.ErrorView{Code: "bad_json", Message: err.Error()})
			return
		}
	}
	mode, err := a.cat.Mode(req.Mode)
	if err != nil {
		a.fail(w, err)
		return
	}
	rival := a.rivalEnabled
	if req.Rival != nil {
		rival = *req.Rival
	}

	var code string
	for {
		c, err := GenerateCode()
		if err != nil {
			http.Error(w, "failed to generate code", http.StatusInternalServerError)
			return
		}
		reply := make(chan *session.Session, 1)
		a.hub.Inbox() <- hub.GetSession{Code: c, Reply: reply}
		if <-reply == nil {
			code = c
			break
		}
		a.log.Debug("collision on code, regenerating")
	}

	reply := make(chan *session.Session, 1)
	a.hub.Inbox() <- hub.EnsureSession{Code: code, State: engine.NewEmptyState(mode.Name, rival), Reply: reply}
	if <-reply == nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	a.log.Info("session created", zap.String("code", code), zap.String("mode", mode.Name), zap.Bool("rival", rival))

	writeJSON(w, http.StatusCreated, struct {
		Code string `json:"code"`
		Mode string `json:"mode"`
	}{Code: code, Mode: mode.Name})
}

func (a *API) Catalog(w http.ResponseWriter, r *http.Request) {
	mode, err := a.cat.Mode(r.URL.Query().Get("mode"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewCatalogView(a.cat, mode))
}

func (a *API) Modes(w http.ResponseWriter, r *http.Request) {
	out := make([]types.ModeView, 0, len(a.cat.Modes))
	for _, m := range a.cat.Modes {
		out = append(out, types.NewModeView(m))
	}
	writeJSON(w, http.StatusOK, out)
}

type buildRequest struct {
	Mode     string `json:"mode"`
	ItemIDs  []int  `json:"item_ids"`
	RemoveID int    `json:"remove_id,omitempty"`
	AddID    int    `json:"add_id,omitempty"`
}

// build replays ids as AddItem commands so a one-shot request is held to
// the same rules as a live draft.
func (a *API) build(req buildRequest) (engine.State, error) {
	s := engine.NewEmptyState(req.Mode, false)
	if _, err := a.cat.Mode(req.Mode); err != nil {
		return s, err
	}
	for _, id := range req.ItemIDs {
		_, next, err := engine.Apply(a.cat, s, engine.Command{Type: engine.CmdAddItem, ItemID: id}, nil)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

func (a *API) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, &types.ErrorView{Code: "bad_json", Message: err.Error()})
		return
	}
	s, err := a.build(req)
	if err != nil {
		a.fail(w, err)
		return
	}
	ev, err := engine.Evaluate(a.cat, s.Mode, s.Selected)
	if err != nil {
		a.fail(w, err)
		return
	}

	resp := types.ServerMessage{Type: types.MsgEvaluation, Evaluation: types.NewEvaluationView(ev)}
	if a.records != nil {
		d, err := engine.Record(r.Context(), a.records, ev)
		if err != nil {
			a.log.Warn("failed to record evaluation", zap.Error(err))
		}
		resp.Discovery = types.NewDiscoveryView(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) Simulate(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, &types.ErrorView{Code: "bad_json", Message: err.Error()})
		return
	}
	s, err := a.build(req)
	if err != nil {
		a.fail(w, err)
		return
	}
	out, err := s.Simulate(a.cat, engine.Swap{RemoveID: req.RemoveID, AddID: req.AddID})
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ServerMessage{Type: types.MsgSwapOutcome, Swap: types.NewSwapView(out)})
}

type recordsResponse struct {
	Mode       string   `json:"mode"`
	BestScore  *float64 `json:"best_score,omitempty"`
	Discovered []string `json:"discovered"`
}

func (a *API) Records(w http.ResponseWriter, r *http.Request) {
	if a.records == nil {
		http.Error(w, "records are disabled", http.StatusNotFound)
		return
	}
	mode, err := a.cat.Mode(chi.URLParam(r, "mode"))
	if err != nil {
		a.fail(w, err)
		return
	}

	resp := recordsResponse{Mode: mode.Name}
	best, ok, err := a.records.BestScore(r.Context(), mode.Name)
	if err != nil {
		a.fail(w, err)
		return
	}
	if ok {
		resp.BestScore = &best
	}
	if resp.Discovered, err = a.records.Discovered(r.Context()); err != nil {
		a.fail(w, err)
		return
	}
	if resp.Discovered == nil {
		resp.Discovered = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func statusFor(code string) int {
	switch code {
	case "unknown_item", "unknown_mode", "unsupported_command":
		return http.StatusBadRequest
	case "already_selected", "claimed_by_rival", "mode_locked":
		return http.StatusConflict
	case "internal":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func (a *API) fail(w http.ResponseWriter, err error) {
	v := types.NewErrorView(err)
	status := statusFor(v.Code)
	if status == http.StatusInternalServerError {
		a.log.Error("request failed", zap.Error(err))
		v.Message = "internal error"
	}
	writeError(w, status, v)
}

func writeError(w http.ResponseWriter, status int, v *types.ErrorView) {
	writeJSON(w, status, struct {
		Error *types.ErrorView `json:"error"`
	}{Error: v})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
