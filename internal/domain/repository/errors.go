package repository

import "errors"

var (
	// ErrVideoNotFound is returned when the upstream reports no such video.
	ErrVideoNotFound = errors.New("video not found")

	// ErrTranscriptNotFound is returned when a video has no transcript in
	// any of the requested (or any) languages.
	ErrTranscriptNotFound = errors.New("transcript not found")

	// ErrUpstreamUnavailable is returned when an external fetcher failed or
	// timed out before producing a definitive answer.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrGeneratorNotConfigured is returned when the LLM provider credential
	// is absent. Callers surface it as a service-unavailable condition.
	ErrGeneratorNotConfigured = errors.New("text generator not configured")
)
