package hubspot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
)

func (c *httpClient) CreateDeal(ctx context.Context, properties map[string]string) (string, error) {
	return c.createObject(ctx, ObjectDeals, properties)
}

func (c *httpClient) CreateTask(ctx context.Context, properties map[string]string) (string, error) {
	return c.createObject(ctx, ObjectTasks, properties)
}

func (c *httpClient) CreateNote(ctx context.Context, properties map[string]string) (string, error) {
	return c.createObject(ctx, ObjectNotes, properties)
}

// Associate links fromID to toID using the default association type for the
// object pair (v4 associations API). The call is idempotent on HubSpot's
// side; re-associating the same pair succeeds.
func (c *httpClient) Associate(ctx context.Context, fromType ObjectType, fromID string, toType ObjectType, toID string) error {
	if fromID == "" || toID == "" {
		return eris.New("hubspot: both object ids are required for association")
	}
	path := fmt.Sprintf("/crm/v4/objects/%s/%s/associations/default/%s/%s", fromType, fromID, toType, toID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: associate %s %s -> %s %s", fromType, fromID, toType, toID))
	}
	return nil
}
