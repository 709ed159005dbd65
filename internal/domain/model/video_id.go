package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// VideoID is the canonical 11-character YouTube video identifier.
// It is produced only by ParseVideoID and is immutable once created.
type VideoID string

const videoIDLength = 11

var (
	// ErrInvalidVideoURL is the common ancestor for all parse failures.
	ErrInvalidVideoURL = errors.New("invalid video URL or ID")

	// ErrUnparseableInput indicates the input could not be interpreted as a
	// video URL or bare identifier at all.
	ErrUnparseableInput = fmt.Errorf("%w: unparseable input", ErrInvalidVideoURL)

	// ErrUnsupportedHost indicates the input parsed as a URL but its host is
	// not a recognized YouTube host.
	ErrUnsupportedHost = fmt.Errorf("%w: unsupported host", ErrInvalidVideoURL)
)

// ParseError carries the offending input alongside the failure kind so that
// callers can echo it back in error responses.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse video ID from %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (id VideoID) String() string { return string(id) }

// WatchURL returns the canonical watch URL for the identifier.
func (id VideoID) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

// isIDChar reports whether c is in the video ID alphabet.
func isIDChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_'
}

// isBareID reports whether s is exactly an 11-character token in the video ID
// alphabet. Such a token is always taken as a direct ID, never parsed as a URL.
func isBareID(s string) bool {
	if len(s) != videoIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIDChar(s[i]) {
			return false
		}
	}
	return true
}

// shortLinkHosts are youtu.be-style hosts where the ID is the first path segment.
var shortLinkHosts = map[string]bool{
	"youtu.be":     true,
	"www.youtu.be": true,
}

// primaryHosts are youtube.com-style hosts with watch/embed/shorts/live paths.
var primaryHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// pathPrefixes are path shapes whose following segment is the video ID.
var pathPrefixes = []string{"/embed/", "/v/", "/shorts/", "/live/"}

// ParseVideoID extracts the canonical identifier from a YouTube URL or
// validates a bare identifier.
//
// Supported inputs:
//   - direct ID: dQw4w9WgXcQ
//   - watch URLs: https://www.youtube.com/watch?v=ID (also m. and music. hosts)
//   - short links: https://youtu.be/ID
//   - embed, /v/, shorts and live paths
//   - scheme-less variants of all of the above
//
// Extraneous query parameters (list=, t=, ...) are ignored; a duplicated v=
// parameter yields its first value.
func ParseVideoID(input string) (VideoID, error) {
	if isBareID(input) {
		return VideoID(input), nil
	}

	u, err := url.Parse(input)
	if err != nil || u.Hostname() == "" {
		// Scheme-less inputs like "youtu.be/ID" parse as a bare path.
		// Retry with a default scheme when the input names a known host.
		if strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be") {
			u, err = url.Parse("https://" + input)
		}
		if err != nil || u == nil || u.Hostname() == "" {
			return "", &ParseError{Input: input, Err: ErrUnparseableInput}
		}
	}

	host := strings.ToLower(u.Hostname())

	switch {
	case shortLinkHosts[host]:
		id := strings.TrimPrefix(u.Path, "/")
		id = cutAt(id, '?')
		id = cutAt(id, '&')
		if id == "" {
			return "", &ParseError{Input: input, Err: ErrUnparseableInput}
		}
		return VideoID(id), nil

	case primaryHosts[host]:
		if u.Path == "/watch" {
			// Query.Get returns the first value of a duplicated parameter.
			if id := u.Query().Get("v"); id != "" {
				return VideoID(id), nil
			}
			return "", &ParseError{Input: input, Err: ErrUnparseableInput}
		}
		for _, prefix := range pathPrefixes {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				id := cutAt(rest, '/')
				id = cutAt(id, '?')
				if id == "" {
					return "", &ParseError{Input: input, Err: ErrUnparseableInput}
				}
				return VideoID(id), nil
			}
		}
		return "", &ParseError{Input: input, Err: ErrUnparseableInput}

	default:
		return "", &ParseError{Input: input, Err: ErrUnsupportedHost}
	}
}

func cutAt(s string, sep byte) string {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}
