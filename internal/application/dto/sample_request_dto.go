package dto

import "time"

// RequestItem one product line in a sample request.
type RequestItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSampleRequestRequest payload. Items must be non-empty and exactly one
// origin (firma_id or lead_id) must be provided.
type CreateSampleRequestRequest struct {
	FirmaID string        `json:"firma_id,omitempty"`
	LeadID  string        `json:"lead_id,omitempty"`
	Items   []RequestItem `json:"items"`
	Note    string        `json:"note,omitempty"`
}

// CreateSampleRequestResponse creation result. Phase reports how far the
// two-phase write got: "header" means items failed after the header was
// committed (the header is left in place).
type CreateSampleRequestResponse struct {
	ID    string `json:"id"`
	Phase string `json:"phase"` // "complete" | "header"
}

// TransitionRequest a status transition with an optional reason. A supplied
// reason is appended to the audit note, never overwriting prior history.
type TransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// SampleRequestResponse request representation.
type SampleRequestResponse struct {
	ID        string        `json:"id"`
	FirmaID   string        `json:"firma_id,omitempty"`
	LeadID    string        `json:"lead_id,omitempty"`
	Status    string        `json:"status"`
	Note      string        `json:"note,omitempty"`
	Items     []RequestItem `json:"items,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SampleRequestListResponse paged request list.
type SampleRequestListResponse struct {
	Items []SampleRequestResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
