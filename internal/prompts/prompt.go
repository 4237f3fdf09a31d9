// Package prompts implements the prompt library domain for PromptStash.
// It provides types, data access, and HTTP handlers for owner-scoped
// prompt storage, tag/type filtering, pagination, and recombination.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt represents a stored prompt owned by a single user.
// Tags are ordered and may contain duplicates; elements are trimmed and
// never empty.
type Prompt struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Type      Type      `json:"type"`
	Image     *string   `json:"image,omitempty"`
	OwnerID   string    `json:"ownerId"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCommand carries the user-editable fields for creating a prompt.
// The owner is never part of the command; it is taken from the
// authenticated caller.
type CreateCommand struct {
	Title  string   `json:"title"`
	Prompt string   `json:"prompt"`
	Type   Type     `json:"type"`
	Image  *string  `json:"image,omitempty"`
	Tags   []string `json:"tags"`
}

// UpdateCommand carries a full replacement of the user-editable fields.
type UpdateCommand struct {
	Title  string   `json:"title"`
	Prompt string   `json:"prompt"`
	Type   Type     `json:"type"`
	Image  *string  `json:"image,omitempty"`
	Tags   []string `json:"tags"`
}

// CombineCommand carries the inputs for the recombination save path.
// Source prompts are resolved owner-scoped; their text is joined with
// ", " in character, background, pose order. Title and Prompt override
// the generated values when present; Tags defaults to
// ["combined", "generated"].
type CombineCommand struct {
	CharacterID  *uuid.UUID `json:"characterId,omitempty"`
	BackgroundID *uuid.UUID `json:"backgroundId,omitempty"`
	PoseID       *uuid.UUID `json:"poseId,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Prompt       *string    `json:"prompt,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}
