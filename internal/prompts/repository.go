package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promptstash/promptstash/pkg/pagination"
	"github.com/promptstash/promptstash/pkg/query"
	"github.com/promptstash/promptstash/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	ownerID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OwnerID", ownerID).
		WhereContains("Title", page.Search)

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.Limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, ownerID string, id uuid.UUID) (*Prompt, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", id).
		WhereEquals("OwnerID", ownerID).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrTitleTooLong)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Prompt, error) {
	cmd = cmd.normalized()
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	p, err := r.insert(ctx, ownerID, cmd)
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt created", "id", p.ID, "type", p.Type, "owner", ownerID)
	return p, nil
}

// Combine implements the recombination save path: up to three owner-scoped
// source prompts are resolved and composed via buildCombined. The write
// carries TypeCombined and skips the type enum; the insert is a single
// independent statement, not transactionally linked to the source reads.
func (r *repo) Combine(ctx context.Context, ownerID string, cmd CombineCommand) (*Prompt, error) {
	var sources [3]*Prompt

	for i, id := range []*uuid.UUID{cmd.CharacterID, cmd.BackgroundID, cmd.PoseID} {
		if id == nil {
			continue
		}
		source, err := r.Find(ctx, ownerID, *id)
		if err != nil {
			return nil, err
		}
		sources[i] = source
	}

	create, err := buildCombined(cmd, sources)
	if err != nil {
		return nil, err
	}

	if err := create.validateCombined(); err != nil {
		return nil, err
	}

	p, err := r.insert(ctx, ownerID, create)
	if err != nil {
		return nil, err
	}

	r.logger.Info("combined prompt created", "id", p.ID, "owner", ownerID)
	return p, nil
}

func (r *repo) Update(ctx context.Context, ownerID string, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	create := CreateCommand(cmd).normalized()
	if err := create.validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE prompts
		SET title = $1, prompt = $2, type = $3, image = $4, tags = $5, updated_at = now()
		WHERE id = $6 AND owner_id = $7
		RETURNING id, title, prompt, type, image, owner_id, tags, created_at, updated_at`

	args := []any{
		create.Title,
		create.Prompt,
		create.Type,
		create.Image,
		tagsJSON(create.Tags),
		id,
		ownerID,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrTitleTooLong)
	}

	r.logger.Info("prompt updated", "id", p.ID, "owner", ownerID)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM prompts WHERE id = $1 AND owner_id = $2",
			id, ownerID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate, ErrTitleTooLong)
	}

	r.logger.Info("prompt deleted", "id", id, "owner", ownerID)
	return nil
}

// DistinctTags folds the owner's tag arrays into a sorted, duplicate-free
// list. The fold is done here rather than in a database-specific pipeline
// to keep the contract portable across storage engines.
func (r *repo) DistinctTags(ctx context.Context, ownerID string) ([]string, error) {
	q := "SELECT p.tags FROM public.prompts p WHERE p.owner_id = $1"

	rows, err := repository.QueryMany(ctx, r.db, q, []any{ownerID}, scanTags)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	return foldTags(rows), nil
}

func (r *repo) insert(ctx context.Context, ownerID string, cmd CreateCommand) (*Prompt, error) {
	q := `
		INSERT INTO prompts(title, prompt, type, image, owner_id, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, prompt, type, image, owner_id, tags, created_at, updated_at`

	args := []any{
		cmd.Title,
		cmd.Prompt,
		cmd.Type,
		cmd.Image,
		ownerID,
		tagsJSON(cmd.Tags),
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrTitleTooLong)
	}
	return &p, nil
}
