package mentions

import (
	"context"
	"strings"
	"testing"

	"msghub/internal/models"
)

// fakeDirectory is an in-memory Directory for extractor tests
type fakeDirectory struct {
	users       []models.User
	listCalls   int
	lookupCalls int
}

func (d *fakeDirectory) ListAllNames(ctx context.Context) ([]string, error) {
	d.listCalls++
	names := make([]string, 0, len(d.users))
	for _, u := range d.users {
		names = append(names, u.Username)
	}
	return names, nil
}

func (d *fakeDirectory) FindByNameCaseInsensitive(ctx context.Context, name string) (*models.User, error) {
	d.lookupCalls++
	for i := range d.users {
		if strings.EqualFold(d.users[i].Username, name) {
			return &d.users[i], nil
		}
	}
	return nil, nil
}

func directoryWith(names ...string) *fakeDirectory {
	d := &fakeDirectory{}
	for i, name := range names {
		d.users = append(d.users, models.User{ID: int64(i + 1), Username: name})
	}
	return d
}

func mentionedNames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		text       string
		want       []string
	}{
		{
			name:       "single token mention",
			registered: []string{"alice", "bob"},
			text:       "hey @alice, did you see this?",
			want:       []string{"alice"},
		},
		{
			name:       "case insensitive",
			registered: []string{"Alice"},
			text:       "ping @ALICE please",
			want:       []string{"Alice"},
		},
		{
			name:       "trailing punctuation does not block match",
			registered: []string{"bob"},
			text:       "thanks @bob!",
			want:       []string{"bob"},
		},
		{
			name:       "mention at end of string",
			registered: []string{"bob"},
			text:       "cc @bob",
			want:       []string{"bob"},
		},
		{
			name:       "multi-word display name",
			registered: []string{"John Smith"},
			text:       "@John Smith, nice!",
			want:       []string{"John Smith"},
		},
		{
			name:       "multi-word name does not produce a spurious token match",
			registered: []string{"John Smith", "John"},
			text:       "@John Smith, nice!",
			// "John" still matches as a full name followed by a space,
			// but the token "John" must not be resolved separately on
			// top of the two full-name matches.
			want: []string{"John Smith", "John"},
		},
		{
			name:       "name embedded in a longer word is not matched",
			registered: []string{"John"},
			text:       "ask @Johnny about it",
			want:       nil,
		},
		{
			name:       "token sharing a prefix with a matched name still resolves",
			registered: []string{"John Smith", "Johnny"},
			text:       "@John Smith and @Johnny should both see this",
			want:       []string{"John Smith", "Johnny"},
		},
		{
			name:       "duplicate mentions collapse",
			registered: []string{"alice"},
			text:       "@alice @alice @ALICE",
			want:       []string{"alice"},
		},
		{
			name:       "unregistered token resolves to nothing",
			registered: []string{"alice"},
			text:       "hello @stranger",
			want:       nil,
		},
		{
			name:       "text without mentions",
			registered: []string{"alice"},
			text:       "no tags in here",
			want:       nil,
		},
		{
			name:       "adjacent mentions",
			registered: []string{"alice", "bob"},
			text:       "@alice @bob",
			want:       []string{"alice", "bob"},
		},
		{
			name:       "underscore and digits in token",
			registered: []string{"dev_ops42"},
			text:       "escalating to @dev_ops42 now",
			want:       []string{"dev_ops42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := directoryWith(tt.registered...)
			extractor := NewExtractor(dir)

			users, err := extractor.ExtractMentions(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("ExtractMentions() error = %v", err)
			}

			got := mentionedNames(users)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractMentions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractMentions()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractMentionsEmptyText(t *testing.T) {
	dir := directoryWith("alice")
	extractor := NewExtractor(dir)

	users, err := extractor.ExtractMentions(context.Background(), "   ")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Expected no mentions for blank text, got %v", mentionedNames(users))
	}
	if dir.listCalls != 0 || dir.lookupCalls != 0 {
		t.Errorf("Directory should not be queried for blank text (list=%d lookup=%d)", dir.listCalls, dir.lookupCalls)
	}
}

func TestExtractMentionsNoRegisteredUsers(t *testing.T) {
	dir := &fakeDirectory{}
	extractor := NewExtractor(dir)

	users, err := extractor.ExtractMentions(context.Background(), "ping @anyone at all")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Expected no mentions with empty directory, got %v", mentionedNames(users))
	}
	if dir.lookupCalls != 0 {
		t.Errorf("No lookups expected with empty directory, got %d", dir.lookupCalls)
	}
}

func TestExtractMentionIDsMatchesExtractMentions(t *testing.T) {
	texts := []string{
		"hey @alice and @John Smith, look at @bob_2",
		"@John Smith@alice",
		"nothing here",
		"@ALICE! @johnny?",
	}

	for _, text := range texts {
		dir := directoryWith("alice", "John Smith", "bob_2", "Johnny")
		extractor := NewExtractor(dir)
		ctx := context.Background()

		users, err := extractor.ExtractMentions(ctx, text)
		if err != nil {
			t.Fatalf("ExtractMentions(%q) error = %v", text, err)
		}
		ids, err := extractor.ExtractMentionIDs(ctx, text)
		if err != nil {
			t.Fatalf("ExtractMentionIDs(%q) error = %v", text, err)
		}

		if len(ids) != len(users) {
			t.Fatalf("ID count %d != user count %d for %q", len(ids), len(users), text)
		}
		for i, u := range users {
			if ids[i] != u.ID {
				t.Errorf("ids[%d] = %d, want %d for %q", i, ids[i], u.ID, text)
			}
		}
	}
}
