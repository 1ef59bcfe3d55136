package workflow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Machine.Step: adjacency enforcement
// ──────────────────────────────────────────────────────────────────────────────

func TestSampleRequestMachine_AllowedTransitions(t *testing.T) {
	m := workflow.SampleRequestMachine
	cases := []struct{ from, to string }{
		{workflow.StatusPending, workflow.StatusContacted},
		{workflow.StatusPending, workflow.StatusShipped},
		{workflow.StatusPending, workflow.StatusCancelled},
		{workflow.StatusContacted, workflow.StatusShipped},
		{workflow.StatusContacted, workflow.StatusCancelled},
	}
	for _, tc := range cases {
		changed, err := m.Step(tc.from, tc.to)
		require.NoError(t, err, "%s -> %s must be allowed", tc.from, tc.to)
		assert.True(t, changed)
	}
}

func TestSampleRequestMachine_RejectedTransitions(t *testing.T) {
	m := workflow.SampleRequestMachine
	cases := []struct{ from, to string }{
		{workflow.StatusShipped, workflow.StatusPending},    // no rewinding
		{workflow.StatusCancelled, workflow.StatusShipped},  // terminal stays terminal
		{workflow.StatusShipped, workflow.StatusContacted},  // no rewinding
		{workflow.StatusContacted, workflow.StatusPending},  // no rewinding
		{workflow.StatusPending, workflow.StatusDelivered},  // order-only status
		{workflow.StatusPending, "misplaced"},               // unknown status
	}
	for _, tc := range cases {
		changed, err := m.Step(tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s must be rejected", tc.from, tc.to)
		assert.False(t, changed)
	}
}

func TestOrderMachine_HappyPathAndCancellation(t *testing.T) {
	m := workflow.OrderMachine

	// pending -> preparing -> shipped -> delivered
	path := []string{workflow.StatusPending, workflow.StatusPreparing, workflow.StatusShipped, workflow.StatusDelivered}
	for i := 0; i < len(path)-1; i++ {
		changed, err := m.Step(path[i], path[i+1])
		require.NoError(t, err, "%s -> %s is the happy path", path[i], path[i+1])
		assert.True(t, changed)
	}

	// Cancellation is reachable from every non-terminal stage before shipping.
	for _, from := range []string{workflow.StatusPending, workflow.StatusPreparing} {
		_, err := m.Step(from, workflow.StatusCancelled)
		require.NoError(t, err, "%s must be cancellable", from)
	}

	// A shipped order can no longer be cancelled, only delivered.
	_, err := m.Step(workflow.StatusShipped, workflow.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Re-submitting the current status (double-click, retried request) is a
// no-op, not an error.
func TestStep_SameStatusIsNoOp(t *testing.T) {
	for _, m := range []workflow.Machine{workflow.SampleRequestMachine, workflow.OrderMachine} {
		changed, err := m.Step(workflow.StatusPending, workflow.StatusPending)
		require.NoError(t, err)
		assert.False(t, changed, "re-setting the same status must report no change")

		// Even a terminal status tolerates a same-status re-submit.
		changed, err = m.Step(workflow.StatusCancelled, workflow.StatusCancelled)
		require.NoError(t, err)
		assert.False(t, changed)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, workflow.SampleRequestMachine.Terminal(workflow.StatusShipped))
	assert.True(t, workflow.OrderMachine.Terminal(workflow.StatusDelivered))
	assert.False(t, workflow.OrderMachine.Terminal(workflow.StatusShipped),
		"shipped is terminal for sample requests but not for orders")
}

// ──────────────────────────────────────────────────────────────────────────────
// AppendNote: audit trail accumulation
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendNote_Accumulates(t *testing.T) {
	note := workflow.AppendNote("", "customer asked to delay")
	assert.Equal(t, "customer asked to delay", note, "first reason needs no delimiter")

	note = workflow.AppendNote(note, "shipped with DHL")
	parts := strings.Split(note, "\n"+workflow.NoteDelimiter+"\n")
	require.Len(t, parts, 2, "two reasons separated by one delimiter")
	assert.Equal(t, "customer asked to delay", parts[0], "prior history is preserved verbatim")
	assert.Equal(t, "shipped with DHL", parts[1])
}

func TestAppendNote_EmptyReasonLeavesNoteUntouched(t *testing.T) {
	assert.Equal(t, "history", workflow.AppendNote("history", ""))
	assert.Equal(t, "history", workflow.AppendNote("history", "   "))
}
