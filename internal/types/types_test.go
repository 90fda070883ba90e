package types

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMessage_Command(t *testing.T) {
	tests := []struct {
		msg    ClientMessage
		want   engine.Command
		wantOK bool
	}{
		{ClientMessage{Type: MsgAddItem, ItemID: 4}, engine.Command{Type: engine.CmdAddItem, ItemID: 4}, true},
		{ClientMessage{Type: MsgRemoveItem, ItemID: 4}, engine.Command{Type: engine.CmdRemoveItem, ItemID: 4}, true},
		{ClientMessage{Type: MsgClear}, engine.Command{Type: engine.CmdClear}, true},
		{ClientMessage{Type: MsgSetMode, Mode: "shoestring"}, engine.Command{Type: engine.CmdSetMode, Mode: "shoestring"}, true},
		{ClientMessage{Type: MsgEvaluate}, engine.Command{}, false},
		{ClientMessage{Type: "Trade"}, engine.Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg.Type, func(t *testing.T) {
			got, ok := tt.msg.Command()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "unknown_item", ErrorCode(fmt.Errorf("%w: 42", engine.ErrUnknownItem)))
	assert.Equal(t, "budget_exceeded", ErrorCode(&engine.BudgetError{Cost: 11, Limit: 10, Shortfall: 1}))
	assert.Equal(t, "unknown_mode", ErrorCode(fmt.Errorf("%w: %q", catalog.ErrUnknownMode, "x")))
	assert.Equal(t, "internal", ErrorCode(fmt.Errorf("boom")))

	v := NewErrorView(&engine.BudgetError{Cost: 11, Limit: 10, Shortfall: 1})
	assert.InDelta(t, 1.0, v.Shortfall, 1e-9)
}

func TestRequirementErrorView(t *testing.T) {
	cat := catalog.Reference()
	mode, err := cat.Mode("")
	require.NoError(t, err)

	err = engine.Validate(cat, engine.NewIDSet(1), mode)
	require.Error(t, err)

	v := NewErrorView(err)
	assert.Equal(t, "requirements_not_met", v.Code)
	assert.Equal(t, cat.Requirements.Message, v.Hint)
}

func TestCatalogView_HidesSecretsAndHiddenItems(t *testing.T) {
	cat := catalog.Reference()
	mode, err := cat.Mode("old-school")
	require.NoError(t, err)

	v := NewCatalogView(cat, mode)
	assert.Len(t, v.Items, 6)
	assert.Len(t, v.Synergies, len(cat.Synergies))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	for _, sc := range cat.SecretCombos {
		assert.NotContains(t, string(data), sc.Name)
	}
}

func TestStateView_SortsIDs(t *testing.T) {
	s := engine.NewEmptyState("standard", true)
	s.Selected = engine.NewIDSet(7, 1, 4)
	s.Rival = engine.NewIDSet(5)

	v := NewStateView(s)
	assert.Equal(t, []int{1, 4, 7}, v.Selected)
	assert.Equal(t, []int{5}, v.Rival)
}

func TestSwapView_EmptyListsMarshalAsArrays(t *testing.T) {
	data, err := json.Marshal(NewSwapView(engine.SwapOutcome{Status: engine.SwapOverBudget, Shortfall: 0.5}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"gained_effects":[]`)
	assert.Contains(t, string(data), `"status":"over_budget"`)
}
