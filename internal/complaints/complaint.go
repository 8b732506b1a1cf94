// Package complaints implements the complaint domain: intake with enrichment,
// filtered listing, paginated search, and status updates.
package complaints

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/enrichment"
)

// Status is the triage state of a complaint.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Statuses lists every valid Status.
var Statuses = []Status{StatusOpen, StatusClosed}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Complaint is a stored complaint with its enrichment labels.
type Complaint struct {
	ID        uuid.UUID            `json:"id"`
	Text      string               `json:"text"`
	Status    Status               `json:"status"`
	Sentiment enrichment.Sentiment `json:"sentiment"`
	Category  enrichment.Category  `json:"category"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateCommand carries the text of a new complaint.
type CreateCommand struct {
	Text string `json:"text"`
}

// UpdateStatusCommand carries the target status of a complaint.
type UpdateStatusCommand struct {
	Status Status `json:"status"`
}
