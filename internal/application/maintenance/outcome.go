package maintenance

import "fmt"

// ApplyState distinguishes how far a multi-step operation got. Partial states
// are reported, not rolled back: the store may hold an intermediate state and
// the outcome says exactly which step committed.
type ApplyState string

const (
	Fully     ApplyState = "fully_applied"
	Partially ApplyState = "partially_applied"
	None      ApplyState = "not_applied"
)

// BranchResult one step of a multi-step operation (e.g. the NULL-image branch
// of the visibility sweep).
type BranchResult struct {
	Name    string
	Matched int64 // rows matched/updated, or would-be count in dry-run
	Err     error
}

// Outcome is the result every maintenance operation returns. In dry-run mode
// it carries the would-be change set and nothing was written.
type Outcome struct {
	Op       string
	DryRun   bool
	State    ApplyState
	Branches []BranchResult
	Details  []string
}

// Changed sums matched rows across branches.
func (o *Outcome) Changed() int64 {
	var total int64
	for _, b := range o.Branches {
		total += b.Matched
	}
	return total
}

// String renders a one-line summary for CLI output.
func (o *Outcome) String() string {
	mode := "apply"
	if o.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s [%s]: %s, %d row(s)", o.Op, mode, o.State, o.Changed())
}
