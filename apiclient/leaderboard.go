package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/damrufest/judgeboard/comp"
)

// GetLeaderboard fetches the server-ranked leaderboard. limit and sortBy
// are passed through as query parameters; the returned order is
// authoritative and never re-sorted locally.
func (c *Client) GetLeaderboard(ctx context.Context, competitionID string, limit int, sortBy comp.SortKey) (*comp.Leaderboard, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("sortBy", string(sortBy))

	var lb comp.Leaderboard
	path := fmt.Sprintf("/leaderboard/%s?%s", competitionID, q.Encode())
	if err := c.getJson(ctx, path, &lb); err != nil {
		return nil, err
	}
	return &lb, nil
}
