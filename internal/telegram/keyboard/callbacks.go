package keyboard

import (
	"fmt"
	"strings"
)

// ActionExport is the callback action of the export buttons. Its value is
// the export format.
const ActionExport = "export"

const callbackSeparator = ":"

// CallbackData is the decoded payload of an inline button
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback decodes "<action>:<value>". The value may be empty, the
// action may not.
func ParseCallback(data string) (*CallbackData, error) {
	action, value, found := strings.Cut(data, callbackSeparator)
	if !found || action == "" {
		return nil, fmt.Errorf("invalid callback data %q", data)
	}

	return &CallbackData{
		Action: action,
		Value:  value,
	}, nil
}

// EncodeCallback is the inverse of ParseCallback
func EncodeCallback(action, value string) string {
	return action + callbackSeparator + value
}
