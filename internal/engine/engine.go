package engine

import (
	"fmt"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

// State is one player's draft: the items they picked, the items the rival
// claimed, and the challenge mode in force. Callers own it; Apply returns a
// new State and never mutates the one it was given.
type State struct {
	Mode         string
	Selected     IDSet
	Rival        IDSet
	Cost         float64
	RivalEnabled bool
}

type CommandType string

const (
	CmdAddItem    CommandType = "AddItem"
	CmdRemoveItem CommandType = "RemoveItem"
	CmdClear      CommandType = "Clear"
	CmdSetMode    CommandType = "SetMode"
)

type Command struct {
	Type   CommandType
	ItemID int
	Mode   string
}

/*
	CmdAddItem    -> EvtItemAdded -> EvtRivalClaimed | EvtRivalExhausted (rival enabled only)
	CmdRemoveItem -> EvtItemRemoved
	CmdClear      -> EvtSelectionCleared
	CmdSetMode    -> EvtModeChanged
*/

type EventType string

const (
	EvtItemAdded        EventType = "ItemAdded"
	EvtItemRemoved      EventType = "ItemRemoved"
	EvtSelectionCleared EventType = "SelectionCleared"
	EvtModeChanged      EventType = "ModeChanged"
	EvtRivalClaimed     EventType = "RivalClaimed"
	EvtRivalExhausted   EventType = "RivalExhausted"
)

type Event struct {
	Type   EventType
	ItemID int
	Mode   string
}

func Apply(cat *catalog.Catalog, s State, cmd Command, rng Rand) ([]Event, State, error) {
	mode, err := cat.Mode(s.Mode)
	if err != nil {
		return nil, s, err
	}

	switch cmd.Type {
	case CmdAddItem:
		if err := canAdd(cat, s, mode, cmd.ItemID); err != nil {
			return nil, s, err
		}

		selected := s.Selected.With(cmd.ItemID)
		cost := costOf(cat, selected)
		if exceeds(cost, mode.BudgetLimit) {
			return nil, s, &BudgetError{Cost: cost, Limit: mode.BudgetLimit, Shortfall: cost - mode.BudgetLimit}
		}

		newState := s.clone()
		newState.Selected = selected
		newState.Cost = cost
		events := []Event{{Type: EvtItemAdded, ItemID: cmd.ItemID}}

		// The rival answers every player pick, synchronously.
		if s.RivalEnabled {
			pick, ok := NextPick(cat, mode, newState.Selected.Union(newState.Rival), rng)
			if !ok {
				events = append(events, Event{Type: EvtRivalExhausted})
			} else {
				newState.Rival = newState.Rival.With(pick.ID)
				events = append(events, Event{Type: EvtRivalClaimed, ItemID: pick.ID})
			}
		}
		return events, newState, nil

	case CmdRemoveItem:
		if !s.Selected.Has(cmd.ItemID) {
			return nil, s, fmt.Errorf("%w: %d", ErrNotSelected, cmd.ItemID)
		}
		newState := s.clone()
		newState.Selected = s.Selected.Without(cmd.ItemID)
		newState.Cost = costOf(cat, newState.Selected)
		return []Event{{Type: EvtItemRemoved, ItemID: cmd.ItemID}}, newState, nil

	case CmdClear:
		if len(s.Selected) == 0 {
			return nil, s, nil
		}
		// Rival claims survive a clear; there is no stealing back.
		newState := s.clone()
		newState.Selected = IDSet{}
		newState.Cost = 0
		return []Event{{Type: EvtSelectionCleared}}, newState, nil

	case CmdSetMode:
		if len(s.Selected) > 0 {
			return nil, s, ErrModeLocked
		}
		next, err := cat.Mode(cmd.Mode)
		if err != nil {
			return nil, s, err
		}
		newState := s.clone()
		newState.Mode = next.Name
		return []Event{{Type: EvtModeChanged, Mode: next.Name}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// Reduce replays an event log from an empty state.
func Reduce(cat *catalog.Catalog, mode string, rivalEnabled bool, events []Event) State {
	s := NewEmptyState(mode, rivalEnabled)
	for _, event := range events {
		switch event.Type {
		case EvtItemAdded:
			s.Selected[event.ItemID] = struct{}{}
		case EvtItemRemoved:
			delete(s.Selected, event.ItemID)
		case EvtSelectionCleared:
			s.Selected = IDSet{}
		case EvtModeChanged:
			s.Mode = event.Mode
		case EvtRivalClaimed:
			s.Rival[event.ItemID] = struct{}{}
		}
	}
	s.Cost = costOf(cat, s.Selected)
	return s
}

func canAdd(cat *catalog.Catalog, s State, mode catalog.ChallengeMode, id int) error {
	it, ok := cat.Item(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if mode.Hides(it) {
		return fmt.Errorf("%w: %s", ErrItemHidden, it.Name)
	}
	if s.Selected.Has(id) {
		return fmt.Errorf("%w: %s", ErrAlreadySelected, it.Name)
	}
	if s.Rival.Has(id) {
		return fmt.Errorf("%w: %s", ErrClaimedByRival, it.Name)
	}
	return nil
}

func (s State) clone() State {
	c := s
	c.Selected = s.Selected.Clone()
	c.Rival = s.Rival.Clone()
	return c
}
