package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	modeName, catalogPath, dbPath = "", "", ""
	removeID, addID, seed = 0, 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--mode", "old-school")
	require.NoError(t, err)
	assert.Contains(t, out, "Veteran Scout")
	assert.NotContains(t, out, "Elite Data Scientist")
	assert.NotContains(t, out, "The Complete Package")
}

func TestEvaluateCommand(t *testing.T) {
	out, err := run(t, "evaluate", "1", "6", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "PASSED. Claim code: BOW-201-M3-EDGE-01")

	out, err = run(t, "evaluate", "3", "9", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Not there yet.")
	assert.Contains(t, out, "hint:")

	_, err = run(t, "evaluate", "7")
	assert.ErrorContains(t, err, "insufficient hires")
}

func TestEvaluateCommand_RecordsToDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "records.db")

	out, err := run(t, "evaluate", "1", "6", "9", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "New secret combo discovered: The Complete Package")

	out, err = run(t, "records", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Secret combos discovered: 1 of 3")
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "1", "3", "6", "--remove", "3", "--add", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "+ synergies: ML Engineer + Tech Stack")

	_, err = run(t, "simulate", "1", "6")
	assert.Error(t, err)
}

func TestDraftCommand_RivalAnswers(t *testing.T) {
	out, err := run(t, "draft", "1", "6", "9", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "you:   Elite Data Scientist")
	assert.Contains(t, out, "rival: ")
}
