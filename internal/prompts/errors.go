package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations. ErrNotFound covers both absent and
// foreign-owned records; the two cases are deliberately indistinguishable.
var (
	ErrNotFound       = errors.New("prompt not found")
	ErrDuplicate      = errors.New("prompt already exists")
	ErrInvalidID      = errors.New("invalid prompt id")
	ErrInvalidBody    = errors.New("invalid request body")
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = errors.New("title cannot exceed 100 characters")
	ErrPromptRequired = errors.New("prompt is required")
	ErrInvalidType    = errors.New("type must be Character, Background, or Pose")
	ErrEmptyTag       = errors.New("tags cannot be empty")
	ErrNoSources      = errors.New("combine requires at least one source prompt")
)

// Generic store-failure messages surfaced on 500 responses. The underlying
// error is logged and never included.
var (
	ErrListFailed   = errors.New("failed to fetch prompts")
	ErrFindFailed   = errors.New("failed to fetch prompt")
	ErrCreateFailed = errors.New("failed to create prompt")
	ErrUpdateFailed = errors.New("failed to update prompt")
	ErrDeleteFailed = errors.New("failed to delete prompt")
	ErrTagsFailed   = errors.New("failed to fetch tags")
)

var validationErrs = []error{
	ErrInvalidID,
	ErrInvalidBody,
	ErrTitleRequired,
	ErrTitleTooLong,
	ErrPromptRequired,
	ErrInvalidType,
	ErrEmptyTag,
	ErrNoSources,
}

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	for _, verr := range validationErrs {
		if errors.Is(err, verr) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
