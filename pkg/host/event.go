package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vango-dev/notify/pkg/notify"
)

// EventName is the event name emitted for notifications. Client-side code
// should listen for this event.
const EventName = "notify:toast"

// Client event names accepted on the WebSocket.
const (
	ClientMouseEnter = "mouseenter"
	ClientMouseLeave = "mouseleave"
	ClientKeyDown    = "keydown"
	ClientClick      = "click"
	ClientAction     = "action"
	ClientClose      = "close"
)

var (
	// ErrInvalidEvent is returned when a client frame cannot be decoded.
	ErrInvalidEvent = errors.New("host: invalid client event")

	// ErrUnknownNotification is returned by Session.Dismiss when the
	// session holds no notification with the given id.
	ErrUnknownNotification = errors.New("host: unknown notification")
)

// ClientEvent is a decoded interaction frame from the browser.
type ClientEvent struct {
	// Name is one of the Client* constants.
	Name string `json:"name"`

	// ID identifies the target notification.
	ID string `json:"id"`

	// Key carries the key name for keydown events.
	Key string `json:"key,omitempty"`

	// Label carries the action label for action events.
	Label string `json:"label,omitempty"`
}

// DecodeClientEvent parses a raw WebSocket text frame.
func DecodeClientEvent(data []byte) (ClientEvent, error) {
	var ev ClientEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ClientEvent{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if ev.Name == "" || ev.ID == "" {
		return ClientEvent{}, fmt.Errorf("%w: missing name or id", ErrInvalidEvent)
	}
	return ev, nil
}

// emitFrame is the envelope for every server-to-client message.
type emitFrame struct {
	Event  string         `json:"event"`
	Detail map[string]any `json:"detail"`
}

// showDetail builds the payload announcing a new notification. Action
// buttons carry their sanitized props so the client can render them
// without interpreting descriptors itself.
func showDetail(id string, n *notify.Notification, title, message string) map[string]any {
	actions := make([]map[string]any, 0, len(n.Actions()))
	for _, a := range n.Actions() {
		actions = append(actions, map[string]any{
			"label":    a.Label,
			"props":    a.Button,
			"disabled": a.Disabled(),
		})
	}

	return map[string]any{
		"kind":        "show",
		"id":          id,
		"level":       string(n.Type()),
		"title":       title,
		"message":     message,
		"accentColor": n.AccentColor(),
		"duration":    n.Duration().Milliseconds(),
		"controls":    n.TimerControl().String(),
		"progressBar": n.ProgressVisible(),
		"actions":     actions,
		"emittedAtMs": time.Now().UnixMilli(),
	}
}

func progressDetail(id string, fraction float64) map[string]any {
	return map[string]any{
		"kind":     "progress",
		"id":       id,
		"fraction": fraction,
	}
}

func actionStateDetail(id, label string, disabled bool) map[string]any {
	return map[string]any{
		"kind":     "action-state",
		"id":       id,
		"label":    label,
		"disabled": disabled,
	}
}

func closeDetail(id string) map[string]any {
	return map[string]any{
		"kind": "close",
		"id":   id,
	}
}
