package publishers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Actions emitted by the storefront client after a successful mutating call.
const (
	ActionRegistered     = "user.registered"
	ActionLoggedIn       = "user.logged_in"
	ActionLoggedOut      = "user.logged_out"
	ActionProductCreated = "product.created"
	ActionProductUpdated = "product.updated"
	ActionProductDeleted = "product.deleted"
	ActionCartItemAdded  = "cart.item_added"
	ActionCartItemUpdate = "cart.item_updated"
	ActionCartItemRemove = "cart.item_removed"
)

// Event represents the payload published downstream.
type Event struct {
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	APIURL     string    `json:"api_url"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent constructs an Event; the resource is the action's prefix ("cart" for "cart.item_added").
func NewEvent(action, resourceID, apiURL string, payload any) Event {
	resource, _, _ := strings.Cut(action, ".")
	return Event{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		APIURL:     apiURL,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

func marshalEvent(evt Event) (string, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	return string(payload), nil
}
