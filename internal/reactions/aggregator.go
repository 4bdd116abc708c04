package reactions

import (
	"sort"

	"msghub/internal/models"
)

// Grouped is the emoji-keyed aggregation of individual reactions that
// gets broadcast instead of raw reaction events, keeping the wire
// payload bounded no matter how many users reacted.
type Grouped struct {
	Emoji   string  `json:"emoji"`
	Count   int     `json:"count"`
	UserIDs []int64 `json:"user_ids"`
}

// Group collapses raw reactions into per-emoji groups ordered by
// descending count; groups with equal counts keep the order in which
// their emoji first appeared in the input, so the result is stable and
// deterministic. The counts always sum to len(reactions).
func Group(reactions []models.Reaction) []Grouped {
	byEmoji := make(map[string]*Grouped)
	var order []string

	for _, r := range reactions {
		g, ok := byEmoji[r.Emoji]
		if !ok {
			g = &Grouped{Emoji: r.Emoji}
			byEmoji[r.Emoji] = g
			order = append(order, r.Emoji)
		}
		g.Count++
		g.UserIDs = append(g.UserIDs, r.UserID)
	}

	grouped := make([]Grouped, 0, len(order))
	for _, emoji := range order {
		grouped = append(grouped, *byEmoji[emoji])
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Count > grouped[j].Count
	})
	return grouped
}
