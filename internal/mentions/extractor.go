package mentions

import (
	"context"
	"regexp"
	"strings"

	"msghub/internal/models"
)

// Directory is the user lookup surface the extractor resolves against.
// Implemented by repository.UserRepository.
type Directory interface {
	ListAllNames(ctx context.Context) ([]string, error)
	FindByNameCaseInsensitive(ctx context.Context, name string) (*models.User, error)
}

// tokenPattern matches a generic @word mention. The \w+ run is maximal,
// so the token is always bounded by whitespace, punctuation or end of
// string on the right.
var tokenPattern = regexp.MustCompile(`@(\w+)`)

// Extractor resolves @-mentions in free text against the user directory.
//
// It scans in two passes. The first pass matches every registered
// display name literally after an @, which is the only way to catch
// multi-word names like "@John Smith". The second pass picks up plain
// @word tokens that the first pass did not already consume and resolves
// them by exact lookup. Scanning full names first keeps a multi-word
// name's leading token from being resolved as a separate mention.
type Extractor struct {
	directory Directory
}

func NewExtractor(directory Directory) *Extractor {
	return &Extractor{directory: directory}
}

// span is a half-open byte range of text consumed by a full-name match.
type span struct {
	start, end int
}

// ExtractMentions returns the distinct users tagged in text, in the
// order they were first found. An unresolved token is not an error;
// empty text returns nil without touching the directory.
func (e *Extractor) ExtractMentions(ctx context.Context, text string) ([]models.User, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	names, err := e.directory.ListAllNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	var found []models.User
	seen := make(map[int64]bool)
	var consumed []span

	// Pass 1: full display names, case-insensitive, with a trailing
	// boundary so "@John Smith," matches but "@Johnny" does not match
	// the name "John".
	for _, name := range names {
		re, err := regexp.Compile(`(?i)(@` + regexp.QuoteMeta(name) + `)([^0-9A-Za-z_]|$)`)
		if err != nil {
			continue
		}
		matches := re.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}

		user, err := e.directory.FindByNameCaseInsensitive(ctx, name)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}

		for _, m := range matches {
			// m[2]:m[3] is the "@name" capture group.
			consumed = append(consumed, span{start: m[2], end: m[3]})
		}
		if !seen[user.ID] {
			seen[user.ID] = true
			found = append(found, *user)
		}
	}

	// Pass 2: single @word tokens. A token whose @ sits inside a span
	// consumed by a full-name match is already explained by that match;
	// everything else gets an exact case-insensitive lookup.
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if insideSpan(consumed, m[0]) {
			continue
		}
		token := text[m[2]:m[3]]
		user, err := e.directory.FindByNameCaseInsensitive(ctx, token)
		if err != nil {
			return nil, err
		}
		if user == nil || seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		found = append(found, *user)
	}

	return found, nil
}

// ExtractMentionIDs is ExtractMentions returning identifiers. It goes
// through the same resolution pass, so the two entry points can never
// disagree on a given text.
func (e *Extractor) ExtractMentionIDs(ctx context.Context, text string) ([]int64, error) {
	users, err := e.ExtractMentions(ctx, text)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func insideSpan(spans []span, pos int) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}
