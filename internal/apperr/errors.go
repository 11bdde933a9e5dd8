// Package apperr defines the sentinel errors shared across the application.
package apperr

import "errors"

var (
	// ErrNotFound indicates a record with the requested id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptStore indicates a collection file contains invalid JSON.
	// There is no auto-repair; the file must be fixed or removed by hand.
	ErrCorruptStore = errors.New("corrupt store")

	// ErrServiceUnavailable indicates the completion or speech backend
	// was unreachable or rejected the request.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnintelligibleAudio indicates the speech service could not
	// recognize anything in the audio.
	ErrUnintelligibleAudio = errors.New("unintelligible audio")

	// ErrMalformedAIResponse indicates the completion service returned a
	// reply that could not be parsed as the expected JSON document.
	ErrMalformedAIResponse = errors.New("malformed AI response")

	// ErrNoMemories indicates an assistant call was skipped because the
	// memory collection is empty.
	ErrNoMemories = errors.New("no memories recorded")

	// ErrUnauthorized indicates a missing or invalid session token, or a
	// wrong PIN at unlock.
	ErrUnauthorized = errors.New("unauthorized")
)
