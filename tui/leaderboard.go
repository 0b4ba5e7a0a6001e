package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
)

type leaderboardState int

const (
	leaderboardStateLoading leaderboardState = iota
	leaderboardStateReady
	leaderboardStateFailed
)

type boardMode int

const (
	boardModePodium boardMode = iota
	boardModeTable
)

const (
	leaderboardTopN     = 10
	leaderboardExtended = 50
	podiumSize          = 3
)

type leaderboardModel struct {
	api         *apiclient.Client
	competition *comp.Competition

	state    leaderboardState
	mode     boardMode
	board    *comp.Leaderboard
	sortKey  comp.SortKey
	limit    int
	cursor   int
	expanded map[string]bool
	errMsg   string
	spin     spinner.Model
}

type leaderboardLoadedMsg struct {
	board *comp.Leaderboard
	err   error
}

func newLeaderboardModel(api *apiclient.Client, competition *comp.Competition) leaderboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return leaderboardModel{
		api:         api,
		competition: competition,
		state:       leaderboardStateLoading,
		mode:        boardModePodium,
		sortKey:     comp.SortAvgTotal,
		limit:       leaderboardTopN,
		expanded:    map[string]bool{},
		spin:        s,
	}
}

func (m leaderboardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m leaderboardModel) load() tea.Cmd {
	api, compID, limit, sortKey := m.api, m.competition.ID, m.limit, m.sortKey
	return func() tea.Msg {
		board, err := api.GetLeaderboard(context.Background(), compID, limit, sortKey)
		return leaderboardLoadedMsg{board: board, err: err}
	}
}

func (m leaderboardModel) reload() (leaderboardModel, tea.Cmd) {
	m.state = leaderboardStateLoading
	return m, tea.Batch(m.spin.Tick, m.load())
}

// visibleCount is how many entries the cursor can reach in the active
// mode. The podium only ever holds the first three.
func (m leaderboardModel) visibleCount() int {
	if m.board == nil {
		return 0
	}
	n := len(m.board.Entries)
	if m.mode == boardModePodium && n > podiumSize {
		return podiumSize
	}
	return n
}

func (m leaderboardModel) clampCursor() leaderboardModel {
	if n := m.visibleCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// nextSortKey cycles through the server's sort modes in a fixed order.
func nextSortKey(k comp.SortKey) comp.SortKey {
	for i, key := range comp.SortKeys {
		if key == k {
			return comp.SortKeys[(i+1)%len(comp.SortKeys)]
		}
	}
	return comp.SortAvgTotal
}

func (m leaderboardModel) Update(msg tea.Msg) (leaderboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardLoadedMsg:
		if msg.err != nil {
			if apiclient.IsUnauthorized(msg.err) {
				return m, func() tea.Msg { return loggedOutMsg{} }
			}
			m.state = leaderboardStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = leaderboardStateReady
		m.board = msg.board
		return m.clampCursor(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			compID := m.competition.ID
			return m, func() tea.Msg { return backToDetailMsg{competitionID: compID} }
		case "r":
			return m.reload()
		case "s":
			m.sortKey = nextSortKey(m.sortKey)
			return m.reload()
		case "v":
			if m.mode == boardModePodium {
				m.mode = boardModeTable
			} else {
				m.mode = boardModePodium
			}
			return m.clampCursor(), nil
		case "t":
			if m.limit == leaderboardTopN {
				m.limit = leaderboardExtended
			} else {
				m.limit = leaderboardTopN
			}
			return m.reload()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.visibleCount()-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.board != nil && m.cursor < m.visibleCount() {
				id := m.board.Entries[m.cursor].ID
				m.expanded[id] = !m.expanded[id]
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m leaderboardModel) View() string {
	header := titleStyle.Render("Leaderboard: "+m.competition.Title) + "  " +
		badgeStyle.Render(m.sortKey.Label()) + "\n\n"

	switch m.state {
	case leaderboardStateLoading:
		return header + m.spin.View() + " Loading...\n"
	case leaderboardStateFailed:
		return header + errorStyle.Render("Error: "+m.errMsg) + "\n\n" +
			helpStyle.Render("r to retry, esc to go back") + "\n"
	}

	s := header
	entries := m.board.Entries
	switch {
	case len(entries) == 0:
		s += "No scores submitted yet.\n"
	case m.mode == boardModePodium:
		s += m.podiumView(entries)
	default:
		s += m.tableView(entries)
	}

	meta := m.board.Metadata
	s += fmt.Sprintf("\n%s\n", helpStyle.Render(fmt.Sprintf(
		"%d participants | top %.1f | avg %.1f | %.0f%% scored",
		meta.TotalParticipants, meta.Statistics.HighestScore,
		meta.Statistics.AverageScore, meta.Statistics.CompletionRate)))

	s += helpStyle.Render(fmt.Sprintf(
		"enter expand judges, v podium/table, s sort, t top %d/%d, r refresh, esc back",
		leaderboardTopN, leaderboardExtended)) + "\n"
	return s
}

// podiumView draws the medal block for up to the first three entries.
// Entries expand in place, sharing expansion state with the table.
func (m leaderboardModel) podiumView(entries []comp.LeaderboardEntry) string {
	medals := []string{"1st", "2nd", "3rd"}
	maxTotal := comp.MaxTotal(m.competition.Criteria)
	s := ""
	for i := 0; i < len(entries) && i < podiumSize; i++ {
		e := entries[i]
		marker := "  "
		if i == m.cursor {
			marker = selectedStyle.Render("> ")
		}
		pct := comp.ProgressPercent(metricOf(e, m.sortKey), maxTotal)
		s += marker + medalStyle(i).Render(fmt.Sprintf("%s %s", medals[i], e.Participant.DisplayName())) +
			fmt.Sprintf("  %.1f  pctl %.0f  %s %3d%%\n", metricOf(e, m.sortKey), e.Percentile, progressBar(pct), pct)
		s += m.judgesView(e)
	}
	return s
}

func (m leaderboardModel) tableView(entries []comp.LeaderboardEntry) string {
	maxTotal := comp.MaxTotal(m.competition.Criteria)
	s := ""
	for i, e := range entries {
		pct := comp.ProgressPercent(metricOf(e, m.sortKey), maxTotal)
		line := fmt.Sprintf("%2d. %-24s avg %6.1f  sum %6.1f  %d judges  pctl %3.0f  %s %3d%%",
			e.Rank, e.Participant.DisplayName(),
			e.Scores.Average, e.Scores.TotalSum, e.Scores.JudgeCount,
			e.Percentile, progressBar(pct), pct)
		if i == m.cursor {
			s += selectedStyle.Render("> ") + line + "\n"
		} else {
			s += "  " + line + "\n"
		}
		s += m.judgesView(e)
	}
	return s
}

func (m leaderboardModel) judgesView(e comp.LeaderboardEntry) string {
	if !m.expanded[e.ID] {
		return ""
	}
	s := ""
	for _, j := range e.Judges {
		s += fmt.Sprintf("      %-24s %6.1f  %s\n",
			j.JudgeName, j.Total, helpStyle.Render(j.SubmittedAt.Format("Jan 2 15:04")))
	}
	return s
}

// progressBar renders pct as a ten segment bar.
func progressBar(pct int) string {
	filled := pct / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// metricOf picks the displayed headline number to match the active sort.
func metricOf(e comp.LeaderboardEntry, key comp.SortKey) float64 {
	switch key {
	case comp.SortMaxScore:
		return e.Scores.Maximum
	case comp.SortTotalSum:
		return e.Scores.TotalSum
	default:
		return e.Scores.Average
	}
}
