package comp

import "time"

// SortKey selects the server-side ordering of a leaderboard. The client
// never re-sorts locally; the server-chosen order is authoritative.
type SortKey string

const (
	SortAvgTotal SortKey = "avgTotal"
	SortTotalSum SortKey = "totalSum"
	SortMaxScore SortKey = "maxScore"
	SortLatest   SortKey = "latest"
)

// SortKeys lists the selectable sort orders in display order.
var SortKeys = []SortKey{SortAvgTotal, SortTotalSum, SortMaxScore, SortLatest}

func (k SortKey) Label() string {
	switch k {
	case SortAvgTotal:
		return "Average Score"
	case SortTotalSum:
		return "Total Sum"
	case SortMaxScore:
		return "Highest Score"
	case SortLatest:
		return "Most Recent"
	}
	return string(k)
}

// AggregateScores are the per-participant statistics computed upstream
// across all judges' submissions.
type AggregateScores struct {
	Average    float64 `json:"average"`
	Maximum    float64 `json:"maximum"`
	TotalSum   float64 `json:"totalSum"`
	JudgeCount int     `json:"judgeCount"`
}

// JudgeBreakdown is one judge's full score set for a participant, shown
// when a leaderboard entry is expanded.
type JudgeBreakdown struct {
	JudgeID     string       `json:"judgeId"`
	JudgeName   string       `json:"judgeName"`
	Total       float64      `json:"score"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Criteria    []ScoreEntry `json:"criteriaScores"`
}

type LeaderboardEntry struct {
	ID          string           `json:"id"`
	Participant Participant      `json:"participant"`
	Scores      AggregateScores  `json:"scores"`
	Rank        int              `json:"rank"`
	Percentile  float64          `json:"percentile"`
	Judges      []JudgeBreakdown `json:"allJudgeScores"`
}

type LeaderboardStats struct {
	HighestScore   float64 `json:"highestScore"`
	AverageScore   float64 `json:"averageScore"`
	CompletionRate float64 `json:"completionRate"`
}

type LeaderboardMeta struct {
	TotalParticipants int              `json:"totalParticipants"`
	Statistics        LeaderboardStats `json:"statistics"`
}

type Leaderboard struct {
	Entries  []LeaderboardEntry `json:"leaderboard"`
	Metadata LeaderboardMeta    `json:"metadata"`
}
