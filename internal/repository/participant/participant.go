package participant

import "errors"

var (
	ErrNotFound      = errors.New("participant not found")
	ErrAlreadyExists = errors.New("participant already exists")
)

type Participant struct {
	Id          string
	DisplayName string
	// Identified is set once the participant announces a display name.
	// Unidentified participants never appear in the roster.
	Identified bool
}
