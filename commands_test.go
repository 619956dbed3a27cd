package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestAnalyze_FullSet(t *testing.T) {
	out, err := run(t, "analyze", "--colors", "4", "--length", "3", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "64 candidates, best guess AAB: worst case 3 more turns")
}

func TestAnalyze_AfterTurnWithGuess(t *testing.T) {
	out, err := run(t, "analyze", "--colors", "4", "--length", "3", "--turn", "ACB=1B2W", "--guess", "AAB")
	require.NoError(t, err)
	assert.Contains(t, out, "3 candidates, guess AAB: worst case 1 more turns")
}

func TestPlay_GivenSecret(t *testing.T) {
	out, err := run(t, "play", "ABC", "--colors", "4", "--length", "3", "--strategy", "exhaustive")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "secret: ABC (white yellow pink)"), out)
	assert.Contains(t, out, "solved in")
}

func TestPlay_Daily(t *testing.T) {
	out, err := run(t, "play", "--daily", "--colors", "4", "--length", "3", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "solved in")
}

func TestSimulate(t *testing.T) {
	out, err := run(t, "simulate", "--colors", "4", "--length", "3", "--all", "--progress=false",
		"--strategy", "exhaustive", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "games:      64 (64 won)")
	assert.Contains(t, out, "mean turns: 3.2969")
	assert.Contains(t, out, "min/max:    1/4")
}

func TestCommands_InvalidInput(t *testing.T) {
	_, err := run(t, "play", "ABX", "--colors", "4", "--length", "3")
	assert.ErrorIs(t, err, code.ErrUnknownColor)

	_, err = run(t, "analyze", "--strategy", "genetic")
	assert.Error(t, err)

	_, err = run(t, "analyze", "--colors", "4", "--length", "3", "--turn", "ACB")
	assert.Error(t, err)
}

func TestNarrow(t *testing.T) {
	space, err := code.NewSpace(code.LetterPalette(4), 3)
	require.NoError(t, err)

	set, err := narrow(space, []string{"ACB=1B2W"})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Size())

	_, err = narrow(space, []string{"ACB=1B2W", "ABC=0B0W"})
	assert.ErrorIs(t, err, candidates.ErrEmptyCandidateSet)

	_, err = narrow(space, []string{"ACB=2B1W"})
	assert.ErrorIs(t, err, code.ErrInvariantViolation)
}
