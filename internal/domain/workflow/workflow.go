// Package workflow models the request/order status machines. Statuses are
// plain strings with adjacency maps rather than a closed type: the order
// label set has already grown once (preparing, delivered) and is expected to
// keep growing.
package workflow

import (
	"strings"

	"github.com/lokumhouse/sweets-api/internal/domain"
)

// Sample request statuses.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

// Additional order statuses.
const (
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
)

// Machine maps a status to the statuses reachable from it. A status absent
// from the map (or with an empty list) is terminal.
type Machine map[string][]string

// SampleRequestMachine: pending -> {contacted, shipped, cancelled},
// contacted -> {shipped, cancelled}; shipped and cancelled are terminal.
var SampleRequestMachine = Machine{
	StatusPending:   {StatusContacted, StatusShipped, StatusCancelled},
	StatusContacted: {StatusShipped, StatusCancelled},
	StatusShipped:   {},
	StatusCancelled: {},
}

// OrderMachine: pending -> preparing -> shipped -> delivered, with
// cancellation from any non-terminal stage.
var OrderMachine = Machine{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Known reports whether the machine knows the status at all.
func (m Machine) Known(status string) bool {
	_, ok := m[status]
	return ok
}

// Terminal reports whether no transition leaves the status.
func (m Machine) Terminal(status string) bool {
	return len(m[status]) == 0
}

// Step validates a transition. Re-setting the current status is a harmless
// no-op (changed=false, nil error); a transition not in the adjacency list
// returns ErrInvalidTransition.
func (m Machine) Step(current, next string) (changed bool, err error) {
	if next == current {
		return false, nil
	}
	if !m.Known(current) || !m.Known(next) {
		return false, domain.ErrInvalidTransition
	}
	for _, allowed := range m[current] {
		if allowed == next {
			return true, nil
		}
	}
	return false, domain.ErrInvalidTransition
}

// NoteDelimiter separates appended reasons in the audit note.
const NoteDelimiter = "---"

// AppendNote appends a reason to an existing audit note, separated by a
// delimiter line. Prior history is never overwritten; an empty reason leaves
// the note untouched.
func AppendNote(existing, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return reason
	}
	return existing + "\n" + NoteDelimiter + "\n" + reason
}
