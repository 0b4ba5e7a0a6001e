package devserver

import (
	"math"
	"sort"
	"time"

	"github.com/damrufest/judgeboard/comp"
)

// buildLeaderboard aggregates every judge's submissions into the ranked
// list the client renders. Only participants with at least one score set
// appear; the roster size still feeds the metadata.
func (s *Store) buildLeaderboard(competitionID string, limit int, sortBy comp.SortKey) (comp.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return comp.Leaderboard{}, newErrCompetitionNotFound()
	}

	entries := make([]comp.LeaderboardEntry, 0, len(c.participants))
	for _, p := range c.participants {
		sets := c.scores[p.ID]
		if len(sets) == 0 {
			continue
		}
		entries = append(entries, s.buildEntry(p, sets))
	}

	sortEntries(entries, sortBy)

	n := len(entries)
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Percentile = math.Round(float64(n-i-1) / float64(n) * 100)
	}

	meta := buildMetadata(entries, len(c.participants))

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return comp.Leaderboard{Entries: entries, Metadata: meta}, nil
}

func (s *Store) buildEntry(p comp.Participant, sets map[string]*scoreSet) comp.LeaderboardEntry {
	entry := comp.LeaderboardEntry{
		ID:          p.ID,
		Participant: p,
		Judges:      make([]comp.JudgeBreakdown, 0, len(sets)),
	}

	var sum, max float64
	var latest time.Time
	for judgeID, set := range sets {
		var total float64
		for _, v := range set.values {
			total += v.Value
		}
		sum += total
		if total > max {
			max = total
		}
		if set.submittedAt.After(latest) {
			latest = set.submittedAt
		}

		name := ""
		if acc, ok := s.accounts[judgeID]; ok {
			name = acc.Name
		}
		entry.Judges = append(entry.Judges, comp.JudgeBreakdown{
			JudgeID:     judgeID,
			JudgeName:   name,
			Total:       total,
			SubmittedAt: set.submittedAt,
			Criteria:    append([]comp.ScoreEntry(nil), set.values...),
		})
	}
	sort.Slice(entry.Judges, func(i, j int) bool {
		return entry.Judges[i].SubmittedAt.Before(entry.Judges[j].SubmittedAt)
	})

	entry.Scores = comp.AggregateScores{
		Average:    round1(sum / float64(len(sets))),
		Maximum:    max,
		TotalSum:   sum,
		JudgeCount: len(sets),
	}
	return entry
}

// sortEntries orders descending by the chosen metric. Ties break on the
// participant label so that ordering is stable across requests.
func sortEntries(entries []comp.LeaderboardEntry, sortBy comp.SortKey) {
	metric := func(e comp.LeaderboardEntry) float64 {
		switch sortBy {
		case comp.SortTotalSum:
			return e.Scores.TotalSum
		case comp.SortMaxScore:
			return e.Scores.Maximum
		case comp.SortLatest:
			return float64(lastSubmission(e).UnixNano())
		default: // avgTotal
			return e.Scores.Average
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		mi, mj := metric(entries[i]), metric(entries[j])
		if mi != mj {
			return mi > mj
		}
		return entries[i].Participant.DisplayName() < entries[j].Participant.DisplayName()
	})
}

func lastSubmission(e comp.LeaderboardEntry) time.Time {
	var latest time.Time
	for _, j := range e.Judges {
		if j.SubmittedAt.After(latest) {
			latest = j.SubmittedAt
		}
	}
	return latest
}

func buildMetadata(entries []comp.LeaderboardEntry, rosterSize int) comp.LeaderboardMeta {
	meta := comp.LeaderboardMeta{TotalParticipants: rosterSize}
	if len(entries) == 0 {
		return meta
	}
	var sum float64
	for _, e := range entries {
		sum += e.Scores.Average
		if e.Scores.Average > meta.Statistics.HighestScore {
			meta.Statistics.HighestScore = e.Scores.Average
		}
	}
	meta.Statistics.AverageScore = round1(sum / float64(len(entries)))
	if rosterSize > 0 {
		meta.Statistics.CompletionRate = math.Round(float64(len(entries)) / float64(rosterSize) * 100)
	}
	return meta
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
