package complaints

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/pkg/pagination"
)

// System defines the public contract for complaint domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Complaint, error)
	List(ctx context.Context, filters Filters) ([]Complaint, error)

	Search(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Complaint], error)

	Find(ctx context.Context, id uuid.UUID) (*Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd UpdateStatusCommand) (*Complaint, error)
}
