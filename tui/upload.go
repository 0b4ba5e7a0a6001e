package tui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wailsapp/mimetype"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
)

type uploadState int

const (
	uploadStateEnterPath uploadState = iota
	uploadStateConfirm
	uploadStateUploading
	uploadStateDone
)

type uploadModel struct {
	api         *apiclient.Client
	competition *comp.Competition

	state     uploadState
	pathInput textinput.Model
	path      string
	contents  []byte
	errMsg    string
	success   bool
	spin      spinner.Model
}

type uploadResultMsg struct{ err error }

func newUploadModel(api *apiclient.Client, competition *comp.Competition) uploadModel {
	ti := textinput.New()
	ti.Placeholder = "roster.csv"
	ti.CharLimit = 256
	ti.Width = 48
	ti.Prompt = ""
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return uploadModel{
		api:         api,
		competition: competition,
		state:       uploadStateEnterPath,
		pathInput:   ti,
		spin:        s,
	}
}

func (m uploadModel) Init() tea.Cmd {
	return textinput.Blink
}

// readRoster loads and sniffs the file before anything leaves the
// machine; only CSV-looking content is offered for upload.
func (m uploadModel) readRoster(path string) (uploadModel, tea.Cmd) {
	abs, err := filepath.Abs(path)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	contents, err := os.ReadFile(abs)
	if err != nil {
		m.errMsg = fmt.Sprintf("cannot read %s: %v", abs, err)
		return m, nil
	}
	mType := mimetype.Detect(contents)
	if mType != nil && !mType.Is("text/csv") && !mType.Is("text/plain") {
		m.errMsg = fmt.Sprintf("%s looks like %s, not a CSV roster", filepath.Base(abs), mType.String())
		return m, nil
	}

	m.path = abs
	m.contents = contents
	m.errMsg = ""
	m.state = uploadStateConfirm
	m.pathInput.Blur()
	return m, nil
}

func (m uploadModel) Update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		m.state = uploadStateDone
		m.success = msg.err == nil
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case uploadStateEnterPath:
			switch msg.Type {
			case tea.KeyEsc:
				return m, m.backCmd()
			case tea.KeyEnter:
				path := strings.TrimSpace(m.pathInput.Value())
				if path == "" {
					m.errMsg = "Enter a file path"
					return m, nil
				}
				return m.readRoster(path)
			}
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd

		case uploadStateConfirm:
			switch msg.String() {
			case "y", "Y":
				m.state = uploadStateUploading
				return m, tea.Batch(m.spin.Tick, m.upload())
			case "n", "N", "esc":
				m.state = uploadStateEnterPath
				m.pathInput.Focus()
				return m, textinput.Blink
			}

		case uploadStateDone:
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				if m.success {
					return m, m.backCmd()
				}
				m.state = uploadStateEnterPath
				m.errMsg = ""
				m.pathInput.Focus()
				return m, textinput.Blink
			}
		}
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m uploadModel) backCmd() tea.Cmd {
	compID := m.competition.ID
	return func() tea.Msg { return backToDetailMsg{competitionID: compID} }
}

func (m uploadModel) upload() tea.Cmd {
	api, compID := m.api, m.competition.ID
	name, contents := filepath.Base(m.path), m.contents
	return func() tea.Msg {
		err := api.UploadParticipants(context.Background(), compID, name, bytes.NewReader(contents))
		return uploadResultMsg{err: err}
	}
}

func (m uploadModel) View() string {
	s := titleStyle.Render("Upload roster") + "  " + helpStyle.Render(m.competition.Title) + "\n\n"
	s += helpStyle.Render("CSV columns: teamName, members (separated by ;), email") + "\n\n"

	switch m.state {
	case uploadStateEnterPath:
		s += "File: " + m.pathInput.View() + "\n"
		if m.errMsg != "" {
			s += "\n" + errorStyle.Render(m.errMsg) + "\n"
		}
		s += "\n" + helpStyle.Render("enter to continue, esc to cancel") + "\n"
	case uploadStateConfirm:
		s += fmt.Sprintf("Upload %s (%d bytes)? (y/n)\n", valueStyle.Render(m.path), len(m.contents))
	case uploadStateUploading:
		s += m.spin.View() + " Uploading...\n"
	case uploadStateDone:
		if m.success {
			s += selectedStyle.Render("Roster uploaded.") + " Press enter to continue.\n"
		} else {
			s += errorStyle.Render("Upload failed: "+m.errMsg) + "\nPress enter to try again.\n"
		}
	}
	return s
}
