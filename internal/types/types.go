package types

import "github.com/DoyleJ11/front-office-draft/internal/engine"

// Client message types.
const (
	MsgAddItem    = "AddItem"
	MsgRemoveItem = "RemoveItem"
	MsgClear      = "Clear"
	MsgSetMode    = "SetMode"
	MsgEvaluate   = "Evaluate"
	MsgSimulate   = "Simulate"
)

// Server message types.
const (
	MsgStateSnapshot = "StateSnapshot"
	MsgEvaluation    = "Evaluation"
	MsgSwapOutcome   = "SwapOutcome"
	MsgError         = "Error"
)

type ClientMessage struct {
	Type     string `json:"type"`
	ItemID   int    `json:"item_id,omitempty"`
	Mode     string `json:"mode,omitempty"`
	RemoveID int    `json:"remove_id,omitempty"`
	AddID    int    `json:"add_id,omitempty"`
}

// Command maps a state-changing client message to an engine command.
// Evaluate and Simulate are queries and report false.
func (m ClientMessage) Command() (engine.Command, bool) {
	switch m.Type {
	case MsgAddItem:
		return engine.Command{Type: engine.CmdAddItem, ItemID: m.ItemID}, true
	case MsgRemoveItem:
		return engine.Command{Type: engine.CmdRemoveItem, ItemID: m.ItemID}, true
	case MsgClear:
		return engine.Command{Type: engine.CmdClear}, true
	case MsgSetMode:
		return engine.Command{Type: engine.CmdSetMode, Mode: m.Mode}, true
	default:
		return engine.Command{}, false
	}
}

type ServerMessage struct {
	Type       string          `json:"type"`
	Version    int             `json:"version,omitempty"`
	State      *StateView      `json:"state,omitempty"`
	Events     []EventView     `json:"events,omitempty"`
	Evaluation *EvaluationView `json:"evaluation,omitempty"`
	Discovery  *DiscoveryView  `json:"discovery,omitempty"`
	Swap       *SwapView       `json:"swap,omitempty"`
	Error      *ErrorView      `json:"error,omitempty"`
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: NewErrorView(err)}
}
