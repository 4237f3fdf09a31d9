package prompts

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const maxTitleLength = 100

// normalized returns a copy with schema trimming applied: title, prompt,
// type, and tag elements are whitespace-trimmed; a blank image collapses
// to nil.
func (c CreateCommand) normalized() CreateCommand {
	c.Title = strings.TrimSpace(c.Title)
	c.Prompt = strings.TrimSpace(c.Prompt)
	c.Type = Type(strings.TrimSpace(string(c.Type)))
	c.Image = trimImage(c.Image)
	c.Tags = trimTags(c.Tags)
	return c
}

// validate enforces the schema rules for the primary create/update path,
// including the type enum.
func (c CreateCommand) validate() error {
	if err := validateFields(c.Title, c.Prompt, c.Tags); err != nil {
		return err
	}
	if !slices.Contains(Types(), c.Type) {
		return ErrInvalidType
	}
	return nil
}

// validateCombined enforces the schema rules for the combine path. The
// type enum is deliberately not checked; everything else applies.
func (c CreateCommand) validateCombined() error {
	return validateFields(c.Title, c.Prompt, c.Tags)
}

func validateFields(title, promptText string, tags []string) error {
	if title == "" {
		return ErrTitleRequired
	}
	// The limit is varchar(100): characters, not bytes.
	if utf8.RuneCountInString(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if promptText == "" {
		return ErrPromptRequired
	}
	if slices.Contains(tags, "") {
		return ErrEmptyTag
	}
	return nil
}

func trimImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	trimmed := make([]string, len(tags))
	for i, tag := range tags {
		trimmed[i] = strings.TrimSpace(tag)
	}
	return trimmed
}
