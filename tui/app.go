// Package tui is the terminal dashboard for the judging backend. The
// root model owns the session and hands the screen to one sub-model at
// a time; sub-models talk to the backend through commands and navigate
// by emitting messages the root model switches on.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/session"
)

type screen int

const (
	screenResolving screen = iota
	screenLogin
	screenList
	screenCreate
	screenDetail
	screenScoring
	screenLeaderboard
	screenUpload
)

// Navigation messages emitted by sub-models.
type (
	sessionResolvedMsg struct{}
	loggedInMsg        struct{}
	loggedOutMsg       struct{}

	openCompetitionMsg struct{ id string }
	openCreateMsg      struct{}
	openScoringMsg     struct {
		competition *comp.Competition
		participant comp.Participant
	}
	openLeaderboardMsg struct{ competition *comp.Competition }
	openUploadMsg      struct{ competition *comp.Competition }

	backToListMsg   struct{}
	backToDetailMsg struct{ competitionID string }
)

type App struct {
	api     *apiclient.Client
	session *session.Store

	screen      screen
	login       loginModel
	list        listModel
	create      createModel
	detail      detailModel
	scoring     scoringModel
	leaderboard leaderboardModel
	upload      uploadModel
}

func NewApp(api *apiclient.Client, sess *session.Store) App {
	return App{api: api, session: sess, screen: screenResolving}
}

// Init blocks every screen behind the initial session lookup so a
// returning session never flashes the login form.
func (a App) Init() tea.Cmd {
	return func() tea.Msg {
		a.session.Resolve(context.Background())
		return sessionResolvedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case sessionResolvedMsg:
		if a.session.IsAuthenticated() {
			return a.showList()
		}
		a.screen = screenLogin
		a.login = newLoginModel(a.session)
		return a, a.login.Init()

	case loggedInMsg:
		return a.showList()

	case loggedOutMsg:
		a.screen = screenLogin
		a.login = newLoginModel(a.session)
		return a, a.login.Init()

	case openCompetitionMsg:
		return a.showDetail(msg.id)

	case openCreateMsg:
		a.screen = screenCreate
		a.create = newCreateModel(a.api)
		return a, a.create.Init()

	case openScoringMsg:
		a.screen = screenScoring
		a.scoring = a.scoring.open(a.api, msg.competition, msg.participant)
		return a, a.scoring.Init()

	case openLeaderboardMsg:
		a.screen = screenLeaderboard
		a.leaderboard = newLeaderboardModel(a.api, msg.competition)
		return a, a.leaderboard.Init()

	case openUploadMsg:
		a.screen = screenUpload
		a.upload = newUploadModel(a.api, msg.competition)
		return a, a.upload.Init()

	case backToListMsg:
		return a.showList()

	case backToDetailMsg:
		return a.showDetail(msg.competitionID)
	}

	switch a.screen {
	case screenLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	case screenList:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	case screenCreate:
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		return a, cmd
	case screenDetail:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	case screenScoring:
		var cmd tea.Cmd
		a.scoring, cmd = a.scoring.Update(msg)
		return a, cmd
	case screenLeaderboard:
		var cmd tea.Cmd
		a.leaderboard, cmd = a.leaderboard.Update(msg)
		return a, cmd
	case screenUpload:
		var cmd tea.Cmd
		a.upload, cmd = a.upload.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) View() string {
	switch a.screen {
	case screenResolving:
		return "Connecting...\n"
	case screenLogin:
		return a.login.View()
	case screenList:
		return a.list.View()
	case screenCreate:
		return a.create.View()
	case screenDetail:
		return a.detail.View()
	case screenScoring:
		return a.scoring.View()
	case screenLeaderboard:
		return a.leaderboard.View()
	case screenUpload:
		return a.upload.View()
	}
	return ""
}

func (a App) showList() (tea.Model, tea.Cmd) {
	a.screen = screenList
	a.list = newListModel(a.api, a.session)
	return a, a.list.Init()
}

func (a App) showDetail(competitionID string) (tea.Model, tea.Cmd) {
	a.screen = screenDetail
	a.detail = newDetailModel(a.api, a.session, competitionID)
	return a, a.detail.Init()
}
