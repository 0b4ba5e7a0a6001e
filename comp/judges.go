package comp

import "encoding/json"

// JudgeRef is a competition's judge as it appears on the wire. Depending
// on backend revision the judges array holds either raw identity strings
// or fully expanded judge records; both decode into this struct.
type JudgeRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (j *JudgeRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*j = JudgeRef{ID: id}
		return nil
	}

	var full struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	id = full.ID
	if id == "" {
		id = full.MongoID
	}
	*j = JudgeRef{ID: id, Name: full.Name, Email: full.Email}
	return nil
}

// HasJudge reports whether the user is already assigned as a judge of
// this competition.
func (c *Competition) HasJudge(userID string) bool {
	if userID == "" {
		return false
	}
	for _, j := range c.Judges {
		if j.ID == userID {
			return true
		}
	}
	return false
}
