// pkg/git/url.go
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/alexDouze/git-site-clone/pkg/config"
)

// ErrInvalidURL is matched by every InvalidURLError.
var ErrInvalidURL = errors.New("invalid git url")

// InvalidURLError reports a string that does not name a remote repository.
type InvalidURLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *InvalidURLError) Error() string {
	msg := fmt.Sprintf("invalid git url %q: %s", e.URL, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidURLError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidURL}
	}
	return []error{ErrInvalidURL, e.Err}
}

// RemoteURL is a parsed repository URL
type RemoteURL struct {
	Raw  string // URL as handed to git clone
	Host string // Host (e.g., github.com)
	Path string // Repository path as found in the URL (e.g., /org/repo.git)
}

// ParseURL extracts the host and path of a repository URL. It accepts the
// forms git itself understands: scp-like SSH (git@github.com:org/repo.git),
// ssh://, git://, http:// and https://. Local paths have no host and are rejected.
func ParseURL(raw string) (*RemoteURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &InvalidURLError{URL: raw, Reason: "empty url"}
	}

	endpoint, err := transport.NewEndpoint(raw)
	if err != nil {
		return nil, &InvalidURLError{URL: raw, Reason: "unparseable url", Err: err}
	}

	if endpoint.Host == "" {
		return nil, &InvalidURLError{URL: raw, Reason: "no host"}
	}

	return &RemoteURL{
		Raw:  raw,
		Host: endpoint.Host,
		Path: endpoint.Path,
	}, nil
}

// NormalizePath strips one leading slash and one trailing .git suffix.
func NormalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	return strings.TrimSuffix(path, ".git")
}

// Resolve computes the directory a repository is cloned into.
//
// The per-host root is, in order of precedence:
//   - explicitBase/<host> when explicitBase is set
//   - the mapping configured for the host, used as is
//   - cfg.Base/<host>
//
// The normalized repository path is then joined onto that root.
func Resolve(u *RemoteURL, explicitBase string, cfg *config.Config) string {
	return filepath.Join(HostRoot(u.Host, explicitBase, cfg), filepath.FromSlash(NormalizePath(u.Path)))
}

// HostRoot returns the directory all repositories of host are cloned under.
func HostRoot(host, explicitBase string, cfg *config.Config) string {
	if explicitBase != "" {
		return filepath.Join(explicitBase, host)
	}
	if mapped, ok := cfg.Mapping(host); ok {
		return mapped
	}
	return filepath.Join(cfg.Base, host)
}
