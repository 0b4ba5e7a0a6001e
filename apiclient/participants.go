package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/damrufest/judgeboard/comp"
)

func (c *Client) ListParticipants(ctx context.Context, competitionID string) ([]comp.Participant, error) {
	var data struct {
		Participants []comp.Participant `json:"participants"`
	}
	path := fmt.Sprintf("/competitions/%s/participants", competitionID)
	if err := c.getJson(ctx, path, &data); err != nil {
		return nil, err
	}
	return data.Participants, nil
}

// UploadParticipants submits a roster CSV as multipart form data under
// the "file" field.
func (c *Client) UploadParticipants(ctx context.Context, competitionID, filename string, contents io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return fmt.Errorf("failed to read roster file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	path := fmt.Sprintf("/competitions/%s/participants/upload", competitionID)
	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), nil)
}

func (c *Client) DeleteParticipant(ctx context.Context, competitionID, participantID string) error {
	return c.delete(ctx, fmt.Sprintf("/competitions/%s/participants/%s", competitionID, participantID))
}

// SaveParticipantOrder persists the display order of a competition's
// roster. The order slice holds participant IDs, first to last.
func (c *Client) SaveParticipantOrder(ctx context.Context, competitionID string, order []string) error {
	body := map[string][]string{"order": order}
	path := fmt.Sprintf("/competitions/%s/participants/order", competitionID)
	return c.putJson(ctx, path, body, nil)
}
