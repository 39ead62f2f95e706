package domain

// Recommendation is the chosen store plus the copy shown alongside it.
type Recommendation struct {
	Store       string
	Description string
	Category    string
	Keywords    []string
	LogoURL     string
	Address     string
}

// TagScore counts how often each taste type appeared in a quiz tag
// vector, echoed back to the client in test mode.
type TagScore map[string]int

// ScoreTags folds a tag vector into frequency counts.
func ScoreTags(tags []string) TagScore {
	if len(tags) == 0 {
		return nil
	}
	score := make(TagScore, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		score[tag]++
	}
	return score
}
