package complaints

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/enrichment"
	"github.com/JaimeStill/triage/pkg/pagination"
	"github.com/JaimeStill/triage/pkg/query"
	"github.com/JaimeStill/triage/pkg/repository"
)

// Enricher labels complaint text with a sentiment and a category.
// Implementations never fail; they fall back to default labels instead.
type Enricher interface {
	Enrich(ctx context.Context, text string) enrichment.Result
}

var domainErrors = repository.Errors{
	NotFound: ErrNotFound,
	Invalid:  ErrInvalidStatus,
}

type repo struct {
	db         *sql.DB
	enricher   Enricher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a complaint repository implementing the System interface.
func New(
	db *sql.DB,
	enricher Enricher,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		enricher:   enricher,
		logger:     logger.With("system", "complaints"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

// Create enriches the complaint text and stores the complaint in a single insert.
// Nothing is written when ctx ends while enrichment is in flight.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Complaint, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, ErrEmptyText
	}

	labels := r.enricher.Enrich(ctx, cmd.Text)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	q := `
		INSERT INTO complaints (text, status, sentiment, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	args := []any{
		cmd.Text,
		string(StatusOpen),
		string(labels.Sentiment),
		string(labels.Category),
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Complaint, error) {
		return repository.QueryOne(ctx, tx, q, args, scanComplaint)
	})

	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}

	r.logger.Info(
		"complaint created",
		"id", c.ID,
		"sentiment", c.Sentiment,
		"category", c.Category,
	)
	return &c, nil
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Complaint, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanComplaint)
	if err != nil {
		return nil, fmt.Errorf("query complaints: %w", err)
	}
	return items, nil
}

func (r *repo) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Complaint], error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count complaints: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanComplaint)
	if err != nil {
		return nil, fmt.Errorf("query complaints: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanComplaint)
	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}
	return &c, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd UpdateStatusCommand) (*Complaint, error) {
	if !cmd.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	q := `
		UPDATE complaints
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + returning

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Complaint, error) {
		return repository.QueryOne(ctx, tx, q, []any{string(cmd.Status), id}, scanComplaint)
	})

	if err != nil {
		return nil, repository.MapError(err, domainErrors)
	}

	r.logger.Info("complaint status updated", "id", c.ID, "status", c.Status)
	return &c, nil
}
