package apiclient

import (
	"context"
	"fmt"

	"github.com/damrufest/judgeboard/comp"
)

// GetScoringMatrix fetches the criteria plus any score set the calling
// judge already submitted for the participant.
func (c *Client) GetScoringMatrix(ctx context.Context, competitionID, participantID string) (*comp.ScoringMatrix, error) {
	var matrix comp.ScoringMatrix
	path := fmt.Sprintf("/competitions/%s/participants/%s/matrix", competitionID, participantID)
	if err := c.getJson(ctx, path, &matrix); err != nil {
		return nil, err
	}
	return &matrix, nil
}

// SubmitScores posts one value per criterion for the participant.
// Resubmitting replaces the judge's previous score set.
func (c *Client) SubmitScores(ctx context.Context, competitionID, participantID string, scores []comp.ScoreEntry) error {
	body := map[string][]comp.ScoreEntry{"scores": scores}
	path := fmt.Sprintf("/competitions/%s/participants/%s/scores", competitionID, participantID)
	return c.postJson(ctx, path, body, nil)
}
