package entity

import "time"

// SampleRequest is a lead's or account's request for product samples.
// Items live in sample_request_items referencing the header's ID; the header
// is inserted first and left in place if item insertion fails (reported as a
// partial application, see maintenance.Outcome).
type SampleRequest struct {
	ID          string
	FirmaID     string // originating account; empty when the origin is a lead
	LeadID      string // originating waitlist/lead record; empty when FirmaID is set
	Status      string // see workflow.SampleRequestStatuses
	Note        string // audit trail; reasons are appended, never overwritten
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SampleRequestItem is one requested product line.
type SampleRequestItem struct {
	ID        string
	RequestID string
	ProductID string
	Quantity  int
}
