package hubspot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
)

// searchRequest is the CRM search API payload. Only single-filter equality
// search is used here.
type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Limit        int           `json:"limit,omitempty"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Total   int      `json:"total"`
	Results []Object `json:"results"`
}

func (c *httpClient) SearchContactByEmail(ctx context.Context, email string) (*Object, error) {
	if email == "" {
		return nil, eris.New("hubspot: email is required for contact search")
	}

	req := searchRequest{
		FilterGroups: []filterGroup{{
			Filters: []filter{{PropertyName: "email", Operator: "EQ", Value: email}},
		}},
		Limit: 1,
	}

	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", req, &resp); err != nil {
		return nil, eris.Wrap(err, "hubspot: search contacts")
	}
	if resp.Total == 0 || len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

func (c *httpClient) CreateContact(ctx context.Context, properties map[string]string) (string, error) {
	return c.createObject(ctx, ObjectContacts, properties)
}

func (c *httpClient) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	if contactID == "" {
		return eris.New("hubspot: contact id is required")
	}
	if len(properties) == 0 {
		return eris.New("hubspot: no properties to update")
	}
	req := map[string]any{"properties": properties}
	path := "/crm/v3/objects/contacts/" + contactID
	if err := c.doJSON(ctx, http.MethodPatch, path, req, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: update contact %s", contactID))
	}
	return nil
}
