package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/damrufest/judgeboard/comp"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// account pairs a wire-level user with its credential hash. Hashes stay
// inside the store; they never appear on the wire.
type account struct {
	comp.User
	passwordHash []byte
}

// scoreSet is one judge's submitted values for one participant. A judge
// holds at most one scoreSet per participant; resubmission replaces it.
type scoreSet struct {
	values      []comp.ScoreEntry
	submittedAt time.Time
}

type competition struct {
	comp.Competition
	participants []comp.Participant
	// participantID -> judgeID -> score set
	scores map[string]map[string]*scoreSet
}

// Store keeps everything in memory. It exists so the client has a
// faithful backend to develop and test against; nothing survives a
// restart and that is the point.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*account // by user ID
	emailIndex   map[string]string   // lower(email) -> user ID
	competitions map[string]*competition
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:     map[string]*account{},
		emailIndex:   map[string]string{},
		competitions: map[string]*competition{},
		now:          time.Now,
	}
}

func (s *Store) AddAccount(name, email string, role comp.Role, passwordHash []byte) comp.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := comp.User{ID: uuid.New().String(), Name: name, Email: email, Role: role}
	s.accounts[u.ID] = &account{User: u, passwordHash: passwordHash}
	s.emailIndex[strings.ToLower(email)] = u.ID
	return u
}

func (s *Store) accountByEmail(email string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return s.accounts[id], true
}

func (s *Store) userByID(id string) (comp.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return comp.User{}, false
	}
	return acc.User, true
}

func (s *Store) createCompetition(title, description string, typ comp.CompetitionType, criteria []comp.Criterion, creator comp.User) comp.Competition {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &competition{
		Competition: comp.Competition{
			ID:          uuid.New().String(),
			Title:       title,
			Description: description,
			Type:        typ,
			Criteria:    criteria,
			Judges:      []comp.JudgeRef{},
			CreatedBy:   &comp.UserRef{ID: creator.ID, Name: creator.Name, Email: creator.Email},
			CreatedAt:   s.now(),
		},
		scores: map[string]map[string]*scoreSet{},
	}
	s.competitions[c.ID] = c
	return c.snapshot()
}

// snapshot copies the wire-visible part of a competition. Callers must
// hold at least a read lock.
func (c *competition) snapshot() comp.Competition {
	out := c.Competition
	out.Criteria = append([]comp.Criterion(nil), c.Criteria...)
	out.Judges = append([]comp.JudgeRef(nil), c.Judges...)
	out.Participants = len(c.participants)
	return out
}

func (s *Store) listCompetitions() []comp.Competition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comps := maps.Values(s.competitions)
	sort.Slice(comps, func(i, j int) bool {
		return comps[i].CreatedAt.Before(comps[j].CreatedAt)
	})
	out := make([]comp.Competition, len(comps))
	for i, c := range comps {
		out[i] = c.snapshot()
	}
	return out
}

func (s *Store) getCompetition(id string) (comp.Competition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[id]
	if !ok {
		return comp.Competition{}, false
	}
	return c.snapshot(), true
}

func (s *Store) deleteCompetition(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[id]; !ok {
		return false
	}
	delete(s.competitions, id)
	return true
}

// addJudge assigns a user as judge, idempotently.
func (s *Store) addJudge(competitionID string, u comp.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return false
	}
	for _, j := range c.Judges {
		if j.ID == u.ID {
			return true
		}
	}
	c.Judges = append(c.Judges, comp.JudgeRef{ID: u.ID, Name: u.Name, Email: u.Email})
	return true
}

func (s *Store) addCriteria(competitionID string, criteria []comp.Criterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return newErrCompetitionNotFound()
	}
	existing := map[string]bool{}
	for _, cr := range c.Criteria {
		existing[cr.Name] = true
	}
	for _, cr := range criteria {
		if strings.TrimSpace(cr.Name) == "" {
			return newErrInvalidCriterion("name must not be empty")
		}
		if cr.MaxScore <= 0 {
			return newErrInvalidCriterion("max score must be positive")
		}
		if existing[cr.Name] {
			return newErrDuplicateCriterion(cr.Name)
		}
		existing[cr.Name] = true
	}
	c.Criteria = append(c.Criteria, criteria...)
	return nil
}

func (s *Store) listParticipants(competitionID string) ([]comp.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return nil, false
	}
	return append([]comp.Participant(nil), c.participants...), true
}

func (s *Store) addParticipants(competitionID string, ps []comp.Participant, uploader comp.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return false
	}
	for i := range ps {
		ps[i].ID = uuid.New().String()
		ps[i].UploadedBy = uploader.ID
	}
	c.participants = append(c.participants, ps...)
	return true
}

func (s *Store) deleteParticipant(competitionID, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return newErrCompetitionNotFound()
	}
	for i, p := range c.participants {
		if p.ID == participantID {
			c.participants = append(c.participants[:i], c.participants[i+1:]...)
			delete(c.scores, participantID)
			return nil
		}
	}
	return newErrParticipantNotFound()
}

// reorderParticipants rewrites the roster order. IDs missing from the
// request keep their relative position at the end; unknown IDs are
// ignored.
func (s *Store) reorderParticipants(competitionID string, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return newErrCompetitionNotFound()
	}
	byID := make(map[string]comp.Participant, len(c.participants))
	for _, p := range c.participants {
		byID[p.ID] = p
	}
	reordered := make([]comp.Participant, 0, len(c.participants))
	seen := map[string]bool{}
	for _, id := range order {
		if p, ok := byID[id]; ok && !seen[id] {
			reordered = append(reordered, p)
			seen[id] = true
		}
	}
	for _, p := range c.participants {
		if !seen[p.ID] {
			reordered = append(reordered, p)
		}
	}
	c.participants = reordered
	return nil
}

func (s *Store) scoringMatrix(competitionID, participantID, judgeID string) (comp.ScoringMatrix, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return comp.ScoringMatrix{}, newErrCompetitionNotFound()
	}
	if !c.hasParticipant(participantID) {
		return comp.ScoringMatrix{}, newErrParticipantNotFound()
	}
	matrix := comp.ScoringMatrix{
		Criteria:       append([]comp.Criterion(nil), c.Criteria...),
		ExistingScores: []comp.ScoreEntry{},
	}
	if set, ok := c.scores[participantID][judgeID]; ok {
		matrix.ExistingScores = append(matrix.ExistingScores, set.values...)
	}
	return matrix, nil
}

func (c *competition) hasParticipant(id string) bool {
	for _, p := range c.participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// submitScores stores a judge's score set for a participant, replacing
// any previous submission by the same judge. Every criterion must be
// covered exactly once and every value must sit inside [0, max].
func (s *Store) submitScores(competitionID, participantID, judgeID string, scores []comp.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return newErrCompetitionNotFound()
	}
	if !c.hasParticipant(participantID) {
		return newErrParticipantNotFound()
	}

	maxByName := make(map[string]float64, len(c.Criteria))
	for _, cr := range c.Criteria {
		maxByName[cr.Name] = cr.MaxScore
	}
	seen := map[string]bool{}
	for _, sc := range scores {
		max, ok := maxByName[sc.Criterion]
		if !ok {
			return newErrInvalidScore("unknown criterion " + sc.Criterion)
		}
		if seen[sc.Criterion] {
			return newErrInvalidScore("criterion " + sc.Criterion + " scored twice")
		}
		if sc.Value < 0 || sc.Value > max {
			return newErrInvalidScore("value out of range for " + sc.Criterion)
		}
		seen[sc.Criterion] = true
	}
	if len(seen) != len(c.Criteria) {
		return newErrInvalidScore("every criterion needs exactly one value")
	}

	if c.scores[participantID] == nil {
		c.scores[participantID] = map[string]*scoreSet{}
	}
	c.scores[participantID][judgeID] = &scoreSet{
		values:      append([]comp.ScoreEntry(nil), scores...),
		submittedAt: s.now(),
	}
	return nil
}
