package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptstash/promptstash/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
// Every operation takes the owner identifier as a mandatory parameter,
// making it structurally impossible to reach the store without an owner
// filter.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		ownerID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, ownerID string, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, ownerID string, cmd CreateCommand) (*Prompt, error)
	Combine(ctx context.Context, ownerID string, cmd CombineCommand) (*Prompt, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	DistinctTags(ctx context.Context, ownerID string) ([]string, error)
}
