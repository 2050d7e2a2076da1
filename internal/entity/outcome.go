package entity

import "time"

// OutcomeKind discriminates the result of one submission.
type OutcomeKind int

const (
	OutcomeMalformedBody OutcomeKind = iota + 1
	OutcomeServerError
	OutcomeSuccess
	OutcomeNetworkFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMalformedBody:
		return "malformed_body"
	case OutcomeServerError:
		return "server_error"
	case OutcomeSuccess:
		return "success"
	case OutcomeNetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// ConfigFlags reports which backend settings were configured when the
// server failed.
type ConfigFlags struct {
	APIKeySet      bool
	SupabaseURLSet bool
	SupabaseKeySet bool
}

// ServerError is a JSON error body returned with a non-2xx status.
type ServerError struct {
	StatusCode int
	Message    *string
	Traceback  *string
	Flags      *ConfigFlags
}

// Answer is a successful reply: the answer text already split into
// paragraphs, and the sources it was built from.
type Answer struct {
	Text       string
	Paragraphs []string
	Sources    []Source
}

// Outcome is the interpreted result of a submission. Exactly one of RawBody,
// ServerError, Answer or Err is meaningful, selected by Kind.
type Outcome struct {
	Kind        OutcomeKind
	RawBody     string
	ServerError *ServerError
	Answer      *Answer
	Err         error
}

// Transcript is the record of a successful submission, kept for export.
type Transcript struct {
	SubmissionID string
	Query        string
	Answer       *Answer
	AnsweredAt   time.Time
}
