package gatewaysvc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/iwneis/neishelper/core/checklist"
)

const checklistEndpoint = "/checklist"

type (
	// HTTPGateway talks to the checklist endpoint of the API server.
	HTTPGateway struct {
		baseURL string
		client  *rest.Client
	}

	getChecklistResponse struct {
		Data *string `json:"data"`
	}

	saveChecklistRequest struct {
		UserID string `json:"userId"`
		Data   string `json:"data"`
	}
)

var _ checklist.Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway returns a gateway for the API server at baseURL (e.g. "http://localhost:8000").
// A nil client uses rest.DefaultClient.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	c := rest.DefaultClient
	if client != nil {
		c = &rest.Client{HTTPClient: client}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/") + checklistEndpoint,
		client:  c,
	}
}

func (gw *HTTPGateway) send(ctx context.Context, req rest.Request) (*rest.Response, error) {
	req.Headers = map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	res, err := gw.client.SendWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("%s %s - status: %d - body: %s", req.Method, req.BaseURL, res.StatusCode, res.Body)
	}
	return res, nil
}

func (gw *HTTPGateway) Get(ctx context.Context, userID string) (string, bool, error) {
	res, err := gw.send(ctx, rest.Request{
		Method:      rest.Get,
		BaseURL:     gw.baseURL,
		QueryParams: map[string]string{"userId": userID},
	})
	if err != nil {
		return "", false, errors.Wrap(err, "fetching checklist")
	}

	var body getChecklistResponse
	if err = json.Unmarshal([]byte(res.Body), &body); err != nil {
		return "", false, errors.Wrap(err, "decoding checklist response")
	}
	if body.Data == nil || *body.Data == "" {
		return "", false, nil
	}
	return *body.Data, true, nil
}

func (gw *HTTPGateway) Put(ctx context.Context, userID, blob string) error {
	payload, err := json.Marshal(saveChecklistRequest{UserID: userID, Data: blob})
	if err != nil {
		return errors.Wrap(err, "encoding checklist request")
	}
	if _, err = gw.send(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: gw.baseURL,
		Body:    payload,
	}); err != nil {
		return errors.Wrap(err, "saving checklist")
	}
	return nil
}
