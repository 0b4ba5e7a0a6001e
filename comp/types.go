package comp

import "time"

// Role is the viewer's role as reported by the backend session.
type Role string

const (
	RoleProducer Role = "producer"
	RoleDirector Role = "director"
	RoleAdmin    Role = "admin"
	RoleJudge    Role = "judge"
)

// CanManage reports whether the role may create/delete competitions,
// manage rosters and reorder participants.
func (r Role) CanManage() bool {
	return r == RoleProducer || r == RoleDirector || r == RoleAdmin
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type CompetitionType string

const (
	TypeSolo CompetitionType = "solo"
	TypeTeam CompetitionType = "team"
)

// Criterion is a named, capped scoring dimension. Names are stable
// identifiers within a competition; input fields and submitted scores
// are matched to criteria by name.
type Criterion struct {
	Name     string  `json:"name"`
	MaxScore float64 `json:"maxScore"`
}

type UserRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Competition struct {
	ID           string          `json:"id"`
	Title        string          `json:"name"`
	Description  string          `json:"description"`
	Type         CompetitionType `json:"type"`
	Criteria     []Criterion     `json:"criteria"`
	Judges       []JudgeRef      `json:"judges"`
	CreatedBy    *UserRef        `json:"createdBy,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	Participants int             `json:"participantCount"`
}

type Participant struct {
	ID         string   `json:"id"`
	TeamName   string   `json:"teamName,omitempty"`
	Members    []string `json:"members"`
	Email      string   `json:"email,omitempty"`
	UploadedBy string   `json:"uploadedBy,omitempty"`
}

// DisplayName picks the label shown for a participant: team name if set,
// otherwise the first member.
func (p Participant) DisplayName() string {
	if p.TeamName != "" {
		return p.TeamName
	}
	if len(p.Members) > 0 {
		return p.Members[0]
	}
	return "Participant"
}

// ScoreEntry is a single submitted value for one criterion.
type ScoreEntry struct {
	Criterion string  `json:"criterion"`
	Value     float64 `json:"value"`
}

// ScoringMatrix is what a judge needs to score one participant: the
// competition's criteria plus any score set this judge already submitted.
type ScoringMatrix struct {
	Criteria       []Criterion  `json:"criteria"`
	ExistingScores []ScoreEntry `json:"existingScores"`
}
