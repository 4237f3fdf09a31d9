package prompts

import (
	"encoding/json"
	"net/url"
	"slices"
	"strings"

	"github.com/promptstash/promptstash/pkg/query"
	"github.com/promptstash/promptstash/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("prompt", "Prompt").
	Project("type", "Type").
	Project("image", "Image").
	Project("owner_id", "OwnerID").
	Project("tags", "Tags").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Result ordering is a fixed contract: newest first.
var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prompt queries.
// Types matches any of the given values (disjunctive); Tags requires a
// prompt to carry every given value (conjunctive).
type Filters struct {
	Types []string `json:"types,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if len(f.Types) > 0 {
		values := make([]any, len(f.Types))
		for i, t := range f.Types {
			values[i] = t
		}
		b.WhereIn("Type", values)
	}

	if len(f.Tags) > 0 {
		doc, _ := json.Marshal(f.Tags)
		b.WhereContainsAll("Tags", doc)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Both parameters carry comma-delimited lists and may also be repeated.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		Types: splitParams(values["types"]),
		Tags:  splitParams(values["tags"]),
	}
}

func splitParams(params []string) []string {
	var out []string
	for _, param := range params {
		for _, part := range strings.Split(param, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	var tags []byte

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Prompt,
		&p.Type,
		&p.Image,
		&p.OwnerID,
		&tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return p, err
	}
	return p, nil
}

func tagsJSON(tags []string) []byte {
	if tags == nil {
		tags = []string{}
	}
	doc, _ := json.Marshal(tags)
	return doc
}

// foldTags flattens per-prompt tag lists into one sorted, duplicate-free list.
func foldTags(rows [][]string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, row := range rows {
		for _, tag := range row {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	slices.Sort(tags)
	return tags
}

func scanTags(s repository.Scanner) ([]string, error) {
	var raw []byte
	if err := s.Scan(&raw); err != nil {
		return nil, err
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
