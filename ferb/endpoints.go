package ferb

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmdatafocus/intake_backend/models"
)

func screeningPath(id string, rest string) string {
	return "/screenings/" + url.PathEscape(id) + rest
}

func (c *Client) GetScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	var out models.ScreeningPayload
	err := c.do(ctx, http.MethodGet, screeningPath(id, ""), nil, &out)
	return out, err
}

func (c *Client) CreateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	var out models.ScreeningPayload
	err := c.do(ctx, http.MethodPost, "/screenings", in, &out)
	return out, err
}

func (c *Client) UpdateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	var out models.ScreeningPayload
	err := c.do(ctx, http.MethodPut, screeningPath(string(in.ID), ""), in, &out)
	return out, err
}

func (c *Client) SubmitScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	var out models.ScreeningPayload
	err := c.do(ctx, http.MethodPost, screeningPath(id, "/submit"), nil, &out)
	return out, err
}

func (c *Client) GetAllegations(ctx context.Context, screeningId string) ([]models.AllegationPayload, error) {
	out := []models.AllegationPayload{}
	err := c.do(ctx, http.MethodGet, screeningPath(screeningId, "/allegations"), nil, &out)
	return out, err
}

func (c *Client) GetRelationships(ctx context.Context, screeningId string) ([]models.RelatedPerson, error) {
	out := []models.RelatedPerson{}
	err := c.do(ctx, http.MethodGet, screeningPath(screeningId, "/relationships"), nil, &out)
	return out, err
}

func (c *Client) GetHistoryOfInvolvements(ctx context.Context, screeningId string) (models.HistoryOfInvolvement, error) {
	var out models.HistoryOfInvolvement
	err := c.do(ctx, http.MethodGet, screeningPath(screeningId, "/history_of_involvements"), nil, &out)
	return out, err
}

// DeleteParticipant only reports the status; the response body is ignored.
func (c *Client) DeleteParticipant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/participants/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateParticipant(ctx context.Context, in models.NewParticipant) (models.Participant, error) {
	var out models.Participant
	err := c.do(ctx, http.MethodPost, "/participants", in, &out)
	return out, err
}

func (c *Client) GetSystemCodes(ctx context.Context) ([]models.SystemCode, error) {
	out := []models.SystemCode{}
	err := c.do(ctx, http.MethodGet, "/system_codes", nil, &out)
	return out, err
}
