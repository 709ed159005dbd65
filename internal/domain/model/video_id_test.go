package model

import (
	"errors"
	"testing"
)

func TestParseVideoID_DirectID(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain alphanumeric", "dQw4w9WgXcQ"},
		{"with dash", "abc-def_123"},
		{"all underscores", "___________"},
		{"digits only", "12345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if err != nil {
				t.Fatalf("ParseVideoID(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.input {
				t.Errorf("ParseVideoID(%q) = %q, want input unchanged", tt.input, got)
			}
		})
	}
}

func TestParseVideoID_URLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with playlist", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx", "dQw4w9WgXcQ"},
		{"watch with timestamp", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=123", "dQw4w9WgXcQ"},
		{"watch duplicated v takes first", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&v=other", "dQw4w9WgXcQ"},
		{"watch bare host", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"music", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with timestamp", "youtu.be/dQw4w9WgXcQ?t=123", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed with query", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ"},
		{"old v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"scheme-less shorts", "youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if err != nil {
				t.Fatalf("ParseVideoID(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseVideoID_Failures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrUnparseableInput},
		{"too long for bare ID", "not_a_video_id_too_long", ErrUnparseableInput},
		{"watch without v param", "https://www.youtube.com/watch?list=PLx", ErrUnparseableInput},
		{"unknown path shape", "https://www.youtube.com/playlist?list=PLx", ErrUnparseableInput},
		{"short link with empty path", "https://youtu.be/", ErrUnparseableInput},
		{"unsupported host", "https://vimeo.com/12345", ErrUnsupportedHost},
		{"plain text", "hello world", ErrUnparseableInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVideoID(tt.input)
			if err == nil {
				t.Fatalf("ParseVideoID(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseVideoID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidVideoURL) {
				t.Errorf("ParseVideoID(%q) error = %v, want it to match ErrInvalidVideoURL", tt.input, err)
			}
		})
	}
}

func TestParseVideoID_BareIDNeverParsedAsURL(t *testing.T) {
	// An 11-character token in the ID alphabet is always a direct ID, even
	// when it could pass for something else.
	input := "youtu_be_ab"
	got, err := ParseVideoID(input)
	if err != nil {
		t.Fatalf("ParseVideoID(%q) error: %v", input, err)
	}
	if got.String() != input {
		t.Errorf("ParseVideoID(%q) = %q, want input unchanged", input, got)
	}
}

func TestParseVideoID_ErrorEchoesInput(t *testing.T) {
	input := "https://vimeo.com/12345"
	_, err := ParseVideoID(input)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseVideoID(%q) error = %T, want *ParseError", input, err)
	}
	if parseErr.Input != input {
		t.Errorf("ParseError.Input = %q, want %q", parseErr.Input, input)
	}
}

func TestVideoID_WatchURL(t *testing.T) {
	id := VideoID("dQw4w9WgXcQ")
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := id.WatchURL(); got != want {
		t.Errorf("WatchURL() = %q, want %q", got, want)
	}
}
