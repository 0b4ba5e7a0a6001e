package apiclient

import (
	"context"
	"fmt"

	"github.com/damrufest/judgeboard/comp"
)

// ListCompetitions fetches the competitions visible to the session's
// role. Scoping happens server-side.
func (c *Client) ListCompetitions(ctx context.Context) ([]comp.Competition, error) {
	var data struct {
		Competitions []comp.Competition `json:"competitions"`
	}
	if err := c.getJson(ctx, "/competitions", &data); err != nil {
		return nil, err
	}
	return data.Competitions, nil
}

func (c *Client) GetCompetition(ctx context.Context, id string) (*comp.Competition, error) {
	var data struct {
		Competition comp.Competition `json:"competition"`
	}
	if err := c.getJson(ctx, "/competitions/"+id, &data); err != nil {
		return nil, err
	}
	return &data.Competition, nil
}

type CreateCompetitionInput struct {
	Title       string               `json:"name"`
	Description string               `json:"description"`
	Type        comp.CompetitionType `json:"type"`
	Criteria    []comp.Criterion     `json:"criteria"`
}

func (c *Client) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*comp.Competition, error) {
	var data struct {
		Competition comp.Competition `json:"competition"`
	}
	if err := c.postJson(ctx, "/competitions", input, &data); err != nil {
		return nil, err
	}
	return &data.Competition, nil
}

func (c *Client) DeleteCompetition(ctx context.Context, id string) error {
	return c.delete(ctx, "/competitions/"+id)
}

// SelectCompetition registers the session user as a judge of the
// competition. The server treats repeated selection as a no-op.
func (c *Client) SelectCompetition(ctx context.Context, id string) error {
	return c.postJson(ctx, fmt.Sprintf("/competitions/%s/select", id), struct{}{}, nil)
}

// AddCriteria appends criteria to a competition. Existing criteria are
// immutable; there is no update or delete.
func (c *Client) AddCriteria(ctx context.Context, id string, criteria []comp.Criterion) error {
	body := map[string][]comp.Criterion{"criteria": criteria}
	return c.postJson(ctx, fmt.Sprintf("/competitions/%s/criteria", id), body, nil)
}
