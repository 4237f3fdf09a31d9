package prompts

import (
	"fmt"
	"slices"
	"strings"
)

var (
	combineDefaultTags = []string{"combined", "generated"}
	combineSlotNames   = [3]string{"Character", "Background", "Pose"}
)

// buildCombined composes the write command for a recombination. Sources are
// positional in character, background, pose order; nil slots are skipped.
// Source text joins with ", "; the generated title lists each slot's source
// title, falling back to the slot name. Explicit Title, Prompt, and Tags on
// the command take precedence over the generated values.
func buildCombined(cmd CombineCommand, sources [3]*Prompt) (CreateCommand, error) {
	var parts []string
	titles := combineSlotNames

	for i, source := range sources {
		if source == nil {
			continue
		}
		parts = append(parts, source.Prompt)
		titles[i] = source.Title
	}

	text := strings.Join(parts, ", ")
	if cmd.Prompt != nil && strings.TrimSpace(*cmd.Prompt) != "" {
		text = *cmd.Prompt
	}
	if text == "" {
		return CreateCommand{}, ErrNoSources
	}

	title := fmt.Sprintf("Combined: %s + %s + %s", titles[0], titles[1], titles[2])
	if cmd.Title != nil && strings.TrimSpace(*cmd.Title) != "" {
		title = *cmd.Title
	}

	tags := cmd.Tags
	if len(tags) == 0 {
		tags = slices.Clone(combineDefaultTags)
	}

	return CreateCommand{
		Title:  title,
		Prompt: text,
		Type:   TypeCombined,
		Tags:   tags,
	}.normalized(), nil
}
