// pkg/clipboard/clipboard.go
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is matched by every UnavailableError.
var ErrUnavailable = errors.New("clipboard unavailable")

// UnavailableError reports that no usable text could be read from the clipboard
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("failed to read clipboard: %v", e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// Reader reads text from a clipboard
type Reader interface {
	Read() (string, error)
}

// System reads the system clipboard. On Linux it needs xclip, xsel or
// wl-clipboard to be installed.
type System struct {
	unsupported bool
	readAll     func() (string, error)
}

// NewSystem creates a reader for the system clipboard
func NewSystem() *System {
	return &System{
		unsupported: clipboard.Unsupported,
		readAll:     clipboard.ReadAll,
	}
}

// Read returns the clipboard contents with surrounding whitespace removed
func (s *System) Read() (string, error) {
	if s.unsupported {
		return "", &UnavailableError{Err: errors.New("no clipboard utility found")}
	}

	readAll := s.readAll
	if readAll == nil {
		readAll = clipboard.ReadAll
	}

	text, err := readAll()
	if err != nil {
		return "", &UnavailableError{Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &UnavailableError{Err: errors.New("clipboard is empty")}
	}
	return text, nil
}
