package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
)

type createState int

const (
	createStateForm createState = iota
	createStateSubmitting
)

type createModel struct {
	api *apiclient.Client

	state       createState
	title       textinput.Model
	description textinput.Model
	criteria    textinput.Model
	compType    comp.CompetitionType
	focusIndex  int
	errMsg      string
	spin        spinner.Model
}

type createDoneMsg struct {
	created *comp.Competition
	err     error
}

func newCreateModel(api *apiclient.Client) createModel {
	title := textinput.New()
	title.Placeholder = "competition name"
	title.CharLimit = 64
	title.Width = 40
	title.Prompt = ""
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = 200
	description.Width = 40
	description.Prompt = ""

	criteria := textinput.New()
	criteria.Placeholder = "Code:50, Design:30"
	criteria.CharLimit = 200
	criteria.Width = 40
	criteria.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return createModel{
		api:         api,
		title:       title,
		description: description,
		criteria:    criteria,
		compType:    comp.TypeTeam,
		spin:        s,
	}
}

func (m createModel) Init() tea.Cmd {
	return textinput.Blink
}

// parseCriteriaSpec turns "Code:50, Design:30" into criteria. Names must
// be unique and every max score positive.
func parseCriteriaSpec(raw string) ([]comp.Criterion, error) {
	var criteria []comp.Criterion
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, maxRaw, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("%q is not name:maxScore", part)
		}
		name = strings.TrimSpace(name)
		maxScore, err := strconv.ParseFloat(strings.TrimSpace(maxRaw), 64)
		if err != nil || maxScore <= 0 {
			return nil, fmt.Errorf("%q needs a positive max score", name)
		}
		if name == "" {
			return nil, fmt.Errorf("criterion %q is missing a name", part)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("criterion %q appears twice", name)
		}
		seen[strings.ToLower(name)] = true
		criteria = append(criteria, comp.Criterion{Name: name, MaxScore: maxScore})
	}
	if len(criteria) == 0 {
		return nil, fmt.Errorf("at least one criterion is required, e.g. Code:50")
	}
	return criteria, nil
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createDoneMsg:
		if msg.err != nil {
			m.state = createStateForm
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return backToListMsg{} }

	case tea.KeyMsg:
		if m.state == createStateSubmitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToListMsg{} }
		case "tab", "down":
			return m.focus(m.focusIndex + 1), textinput.Blink
		case "shift+tab", "up":
			return m.focus(m.focusIndex - 1), textinput.Blink
		case "left", "right":
			// The type row has no text input; arrows toggle it.
			if m.focusIndex == 2 {
				if m.compType == comp.TypeTeam {
					m.compType = comp.TypeSolo
				} else {
					m.compType = comp.TypeTeam
				}
				return m, nil
			}
		case "enter":
			if m.focusIndex < 3 {
				return m.focus(m.focusIndex + 1), textinput.Blink
			}
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.description, cmd = m.description.Update(msg)
	cmds = append(cmds, cmd)
	m.criteria, cmd = m.criteria.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m createModel) focus(i int) createModel {
	if i < 0 {
		i = 0
	}
	if i > 3 {
		i = 3
	}
	m.focusIndex = i
	m.title.Blur()
	m.description.Blur()
	m.criteria.Blur()
	switch i {
	case 0:
		m.title.Focus()
	case 1:
		m.description.Focus()
	case 3:
		m.criteria.Focus()
	}
	return m
}

func (m createModel) submit() (createModel, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" {
		m.errMsg = "Name is required"
		return m, nil
	}
	criteria, err := parseCriteriaSpec(m.criteria.Value())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	input := apiclient.CreateCompetitionInput{
		Title:       title,
		Description: strings.TrimSpace(m.description.Value()),
		Type:        m.compType,
		Criteria:    criteria,
	}
	m.state = createStateSubmitting
	m.errMsg = ""
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		created, err := m.api.CreateCompetition(context.Background(), input)
		return createDoneMsg{created: created, err: err}
	})
}

func (m createModel) View() string {
	s := titleStyle.Render("New competition") + "\n\n"
	s += "Name:        " + m.title.View() + "\n"
	s += "Description: " + m.description.View() + "\n"

	typeRow := string(m.compType)
	if m.focusIndex == 2 {
		typeRow = selectedStyle.Render("< " + typeRow + " >")
	} else {
		typeRow = valueStyle.Render(typeRow)
	}
	s += "Type:        " + typeRow + "\n"
	s += "Criteria:    " + m.criteria.View() + "\n"

	if m.state == createStateSubmitting {
		s += "\n" + m.spin.View() + " Creating...\n"
	} else if m.errMsg != "" {
		s += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}

	s += "\n" + helpStyle.Render("tab next field, enter submit on last, esc cancel") + "\n"
	return s
}
