package complaints

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/triage/pkg/query"
	"github.com/JaimeStill/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "complaints", "c").
	Project("id", "ID").
	Project("text", "Text").
	Project("status", "Status").
	Project("sentiment", "Sentiment").
	Project("category", "Category").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returning = "id, text, status, sentiment, category, created_at, updated_at"

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows complaint queries. Nil fields are ignored.
// FromTimestamp is a window in seconds: only complaints created within the
// last FromTimestamp seconds match. Zero means no window.
type Filters struct {
	Status        *Status `json:"status,omitempty"`
	FromTimestamp *int    `json:"from_timestamp,omitempty"`
}

// Validate rejects unknown statuses and negative windows.
func (f Filters) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidFilter, *f.Status)
	}
	if f.FromTimestamp != nil && *f.FromTimestamp < 0 {
		return fmt.Errorf("%w: from_timestamp must not be negative", ErrInvalidFilter)
	}
	return nil
}

// maxWindow is the largest window in seconds that fits in a time.Duration.
const maxWindow = math.MaxInt64 / int64(time.Second)

// Since returns the lower bound on created_at implied by FromTimestamp, or nil.
// Windows too large for a time.Duration reach back past any stored complaint
// and impose no bound.
func (f Filters) Since(now time.Time) *time.Time {
	if f.FromTimestamp == nil || *f.FromTimestamp == 0 || int64(*f.FromTimestamp) > maxWindow {
		return nil
	}
	since := now.UTC().Add(-time.Duration(*f.FromTimestamp) * time.Second)
	return &since
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	return b.
		WhereEquals("Status", status).
		WhereSince("CreatedAt", f.Since(time.Now()))
}

// FiltersFromQuery extracts and validates filters from URL query parameters.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}

	if v := values.Get("from_timestamp"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("%w: from_timestamp must be an integer", ErrInvalidFilter)
		}
		f.FromTimestamp = &n
	}

	return f, f.Validate()
}

func scanComplaint(s repository.Scanner) (Complaint, error) {
	var c Complaint
	err := s.Scan(
		&c.ID,
		&c.Text,
		&c.Status,
		&c.Sentiment,
		&c.Category,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
