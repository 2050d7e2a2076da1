package ui

// CreatePageResponse is returned when a page session is opened.
type CreatePageResponse struct {
	ID string `json:"id"`
}

// SubmitRequest is a submit gesture from the page. Trigger is "click" or
// "key"; Key and Shift describe the key press for "key".
type SubmitRequest struct {
	Query   string `json:"query"`
	Trigger string `json:"trigger"`
	Key     string `json:"key,omitempty"`
	Shift   bool   `json:"shift,omitempty"`
}

const (
	TriggerClick = "click"
	TriggerKey   = "key"
)

// AlertEvent is sent on the events stream for a blocking alert.
type AlertEvent struct {
	Message string `json:"message"`
}
