package prompts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/promptstash/promptstash/pkg/pagination"
)

func source(title, text string) *Prompt {
	return &Prompt{Title: title, Prompt: text}
}

func strPtr(s string) *string { return &s }

func TestBuildCombined(t *testing.T) {
	character := source("Storm mage", "a mage wreathed in lightning")
	background := source("Ruined keep", "a crumbling castle at dusk")
	pose := source("Mid-cast", "arms raised, casting")

	tests := []struct {
		name       string
		cmd        CombineCommand
		sources    [3]*Prompt
		wantTitle  string
		wantPrompt string
		wantTags   []string
		wantErr    error
	}{
		{
			name:       "all three sources join in order",
			sources:    [3]*Prompt{character, background, pose},
			wantTitle:  "Combined: Storm mage + Ruined keep + Mid-cast",
			wantPrompt: "a mage wreathed in lightning, a crumbling castle at dusk, arms raised, casting",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name:       "missing slots fall back to slot names",
			sources:    [3]*Prompt{nil, background, nil},
			wantTitle:  "Combined: Character + Ruined keep + Pose",
			wantPrompt: "a crumbling castle at dusk",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name: "explicit title overrides generated",
			cmd:  CombineCommand{Title: strPtr("My combo")},
			sources: [3]*Prompt{
				character, nil, nil,
			},
			wantTitle:  "My combo",
			wantPrompt: "a mage wreathed in lightning",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name:       "blank title override ignored",
			cmd:        CombineCommand{Title: strPtr("   ")},
			sources:    [3]*Prompt{character, nil, nil},
			wantTitle:  "Combined: Storm mage + Background + Pose",
			wantPrompt: "a mage wreathed in lightning",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name:       "explicit prompt overrides joined text",
			cmd:        CombineCommand{Prompt: strPtr("hand-edited text")},
			sources:    [3]*Prompt{character, background, nil},
			wantTitle:  "Combined: Storm mage + Ruined keep + Pose",
			wantPrompt: "hand-edited text",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name:       "explicit prompt alone suffices",
			cmd:        CombineCommand{Prompt: strPtr("standalone text")},
			sources:    [3]*Prompt{},
			wantTitle:  "Combined: Character + Background + Pose",
			wantPrompt: "standalone text",
			wantTags:   []string{"combined", "generated"},
		},
		{
			name:       "explicit tags override defaults",
			cmd:        CombineCommand{Tags: []string{"scene"}},
			sources:    [3]*Prompt{character, nil, nil},
			wantTitle:  "Combined: Storm mage + Background + Pose",
			wantPrompt: "a mage wreathed in lightning",
			wantTags:   []string{"scene"},
		},
		{
			name:    "no sources and no text",
			cmd:     CombineCommand{},
			sources: [3]*Prompt{},
			wantErr: ErrNoSources,
		},
		{
			name:    "blank prompt override with no sources",
			cmd:     CombineCommand{Prompt: strPtr("   ")},
			sources: [3]*Prompt{},
			wantErr: ErrNoSources,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildCombined(tt.cmd, tt.sources)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}

			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Prompt != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", got.Prompt, tt.wantPrompt)
			}
			if got.Type != TypeCombined {
				t.Errorf("type = %q, want Combined", got.Type)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("tags = %v, want %v", got.Tags, tt.wantTags)
			}
		})
	}
}

func TestBuildCombinedDefaultTagsAreCopied(t *testing.T) {
	got, err := buildCombined(CombineCommand{Prompt: strPtr("text")}, [3]*Prompt{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got.Tags[0] = "mutated"
	if combineDefaultTags[0] != "combined" {
		t.Error("default tag slice was mutated by a composed command")
	}
}

func TestCombineWithoutSourcesSkipsStore(t *testing.T) {
	sys := New(
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 30, MaxPageSize: 100},
	)

	// A nil connection would panic on any store access; reaching the
	// sentinel proves the empty command short-circuits before the insert.
	_, err := sys.Combine(context.Background(), "user_1", CombineCommand{})
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Combine() err = %v, want %v", err, ErrNoSources)
	}
}

func TestFoldTags(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want []string
	}{
		{
			name: "no rows",
			rows: nil,
			want: []string{},
		},
		{
			name: "dedupes across rows",
			rows: [][]string{
				{"magic", "fantasy"},
				{"fantasy", "dark"},
			},
			want: []string{"dark", "fantasy", "magic"},
		},
		{
			name: "dedupes within a row",
			rows: [][]string{
				{"twin", "twin", "solo"},
			},
			want: []string{"solo", "twin"},
		},
		{
			name: "sorts unsorted input",
			rows: [][]string{
				{"zebra", "apple", "mango"},
			},
			want: []string{"apple", "mango", "zebra"},
		},
		{
			name: "empty rows skipped",
			rows: [][]string{
				{},
				{"only"},
				{},
			},
			want: []string{"only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := foldTags(tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("foldTags(%v) = %v, want %v", tt.rows, got, tt.want)
			}
		})
	}
}
