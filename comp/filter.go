package comp

import "strings"

// FilterParticipants returns the participants matching the query with a
// case-insensitive substring match across team name, email and the joined
// member names. A blank query matches everyone. Filtering is purely
// local; it never triggers a fetch.
func FilterParticipants(participants []Participant, query string) []Participant {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return participants
	}
	matched := make([]Participant, 0, len(participants))
	for _, p := range participants {
		team := strings.ToLower(p.TeamName)
		email := strings.ToLower(p.Email)
		members := strings.ToLower(strings.Join(p.Members, " "))
		if strings.Contains(team, query) ||
			strings.Contains(email, query) ||
			strings.Contains(members, query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// ApplySubsetOrder splices a reordered subset back into the full list by
// identity: the slots of full occupied by members of the subset are
// rewritten in the subset's new order, everything else stays put. Used
// when reordering within a filtered view.
func ApplySubsetOrder(full, subset []Participant) []Participant {
	inSubset := make(map[string]bool, len(subset))
	for _, p := range subset {
		inSubset[p.ID] = true
	}
	result := make([]Participant, len(full))
	copy(result, full)
	next := 0
	for i, p := range result {
		if inSubset[p.ID] && next < len(subset) {
			result[i] = subset[next]
			next++
		}
	}
	return result
}

// MoveParticipant moves the element at index from to index to, shifting
// the elements in between. Out-of-range indices leave the slice alone.
func MoveParticipant(ps []Participant, from, to int) []Participant {
	if from < 0 || from >= len(ps) || to < 0 || to >= len(ps) || from == to {
		return ps
	}
	result := make([]Participant, 0, len(ps))
	result = append(result, ps[:from]...)
	result = append(result, ps[from+1:]...)
	result = append(result[:to], append([]Participant{ps[from]}, result[to:]...)...)
	return result
}
