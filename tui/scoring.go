package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
)

type scoringState int

const (
	scoringStateLoading scoringState = iota
	scoringStateForm
	scoringStateSubmitting
	scoringStateFailed
)

type scoringModel struct {
	api         *apiclient.Client
	competition *comp.Competition
	participant comp.Participant

	state      scoringState
	matrix     *comp.ScoringMatrix
	inputs     []textinput.Model
	fieldErrs  []string
	focusIndex int
	errMsg     string
	spin       spinner.Model
}

type matrixLoadedMsg struct {
	matrix *comp.ScoringMatrix
	err    error
}

type scoresSubmittedMsg struct{ err error }

// open prepares a fresh form for one participant. Edits never outlive
// the form: cancelling discards them and each participant starts over
// from the server's matrix.
func (m scoringModel) open(api *apiclient.Client, competition *comp.Competition, participant comp.Participant) scoringModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return scoringModel{
		api:         api,
		competition: competition,
		participant: participant,
		state:       scoringStateLoading,
		spin:        s,
	}
}

func (m scoringModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m scoringModel) load() tea.Cmd {
	compID, pid := m.competition.ID, m.participant.ID
	api := m.api
	return func() tea.Msg {
		matrix, err := api.GetScoringMatrix(context.Background(), compID, pid)
		return matrixLoadedMsg{matrix: matrix, err: err}
	}
}

// formatScore renders a seeded value the way a judge would type it.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m scoringModel) buildForm() scoringModel {
	seeded := comp.SeedInputs(*m.matrix)

	m.inputs = make([]textinput.Model, len(m.matrix.Criteria))
	m.fieldErrs = make([]string, len(m.matrix.Criteria))
	for i, c := range m.matrix.Criteria {
		ti := textinput.New()
		ti.CharLimit = 8
		ti.Width = 8
		ti.Prompt = ""
		ti.SetValue(formatScore(seeded[c.Name]))
		m.inputs[i] = ti
	}
	m.focusIndex = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.state = scoringStateForm
	return m
}

func (m scoringModel) Update(msg tea.Msg) (scoringModel, tea.Cmd) {
	switch msg := msg.(type) {
	case matrixLoadedMsg:
		if msg.err != nil {
			if apiclient.IsUnauthorized(msg.err) {
				return m, func() tea.Msg { return loggedOutMsg{} }
			}
			m.state = scoringStateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.matrix = msg.matrix
		return m.buildForm(), textinput.Blink

	case scoresSubmittedMsg:
		if msg.err != nil {
			m.state = scoringStateForm
			m.errMsg = msg.err.Error()
			return m, nil
		}
		compID := m.competition.ID
		return m, func() tea.Msg { return backToDetailMsg{competitionID: compID} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m scoringModel) handleKey(msg tea.KeyMsg) (scoringModel, tea.Cmd) {
	switch m.state {
	case scoringStateFailed:
		switch msg.String() {
		case "r":
			m.state = scoringStateLoading
			return m, tea.Batch(m.spin.Tick, m.load())
		case "esc", "q":
			compID := m.competition.ID
			return m, func() tea.Msg { return backToDetailMsg{competitionID: compID} }
		}
		return m, nil
	case scoringStateForm:
	default:
		return m, nil
	}

	switch msg.String() {
	case "esc":
		compID := m.competition.ID
		return m, func() tea.Msg { return backToDetailMsg{competitionID: compID} }
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.focusIndex == len(m.inputs)-1 {
			return m.submit()
		}
		return m.focus(m.focusIndex + 1), textinput.Blink
	case "shift+tab", "up":
		return m.focus(m.focusIndex - 1), textinput.Blink
	case "ctrl+s":
		return m.submit()
	}

	if m.focusIndex >= 0 && m.focusIndex < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		m.fieldErrs[m.focusIndex] = ""
		return m, cmd
	}
	return m, nil
}

func (m scoringModel) focus(i int) scoringModel {
	if len(m.inputs) == 0 {
		return m
	}
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focusIndex = i
	m.inputs[i].Focus()
	return m
}

// currentValues parses every input, recording per-field errors. The
// bool reports whether the whole form is valid.
func (m *scoringModel) currentValues() (map[string]float64, bool) {
	values := make(map[string]float64, len(m.inputs))
	ok := true
	for i, c := range m.matrix.Criteria {
		v, err := comp.ParseScore(m.inputs[i].Value(), c.MaxScore)
		if err != nil {
			m.fieldErrs[i] = err.Error()
			ok = false
			continue
		}
		m.fieldErrs[i] = ""
		values[c.Name] = v
	}
	return values, ok
}

func (m scoringModel) submit() (scoringModel, tea.Cmd) {
	values, ok := m.currentValues()
	if !ok {
		m.errMsg = "Fix the highlighted scores first"
		return m, nil
	}

	entries := make([]comp.ScoreEntry, len(m.matrix.Criteria))
	for i, c := range m.matrix.Criteria {
		entries[i] = comp.ScoreEntry{Criterion: c.Name, Value: values[c.Name]}
	}
	m.state = scoringStateSubmitting
	m.errMsg = ""

	api, compID, pid := m.api, m.competition.ID, m.participant.ID
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return scoresSubmittedMsg{err: api.SubmitScores(context.Background(), compID, pid, entries)}
	})
}

func (m scoringModel) View() string {
	header := titleStyle.Render("Scoring "+m.participant.DisplayName()) + "  " +
		helpStyle.Render(m.competition.Title) + "\n\n"

	switch m.state {
	case scoringStateLoading:
		return header + m.spin.View() + " Loading score sheet...\n"
	case scoringStateFailed:
		return header + errorStyle.Render("Error: "+m.errMsg) + "\n\n" +
			helpStyle.Render("r to retry, esc to go back") + "\n"
	case scoringStateSubmitting:
		return header + m.spin.View() + " Submitting...\n"
	}

	s := header
	if len(m.matrix.ExistingScores) > 0 {
		s += helpStyle.Render("Editing a previous submission; submitting replaces it.") + "\n\n"
	}

	// Live total over the fields that currently parse.
	preview := make(map[string]float64, len(m.inputs))
	for i, c := range m.matrix.Criteria {
		if v, err := comp.ParseScore(m.inputs[i].Value(), c.MaxScore); err == nil {
			preview[c.Name] = v
		}
	}
	total := comp.Total(m.matrix.Criteria, preview)
	max := comp.MaxTotal(m.matrix.Criteria)

	for i, c := range m.matrix.Criteria {
		label := fmt.Sprintf("%-20s (0-%g)", c.Name, c.MaxScore)
		s += fmt.Sprintf("%s %s", label, m.inputs[i].View())
		if m.fieldErrs[i] != "" {
			s += "  " + errorStyle.Render(m.fieldErrs[i])
		}
		s += "\n"
	}

	s += fmt.Sprintf("\nTotal: %s / %g (%d%%)\n",
		valueStyle.Render(fmt.Sprintf("%g", total)), max, comp.ProgressPercent(total, max))

	if m.errMsg != "" {
		s += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}
	s += "\n" + helpStyle.Render("tab next, enter on last or ctrl+s submit, esc cancel") + "\n"
	return s
}
