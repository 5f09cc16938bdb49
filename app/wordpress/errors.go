package wordpress

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kind classifies why a content API call produced no data.
type Kind string

const (
	KindConfigAbsent Kind = "config_absent"
	KindTransport    Kind = "transport"
	KindStatus       Kind = "status"
	KindDecode       Kind = "decode"
	KindNotFound     Kind = "not_found"
)

var (
	ErrNotConfigured = errors.New("content API URL is not configured")
	ErrNotFound      = errors.New("not found")
)

type FetchError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func kindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}

// logLevel keeps the expected degradations (no backend, unknown slug) out of
// the default log output.
func (k Kind) logLevel() slog.Level {
	switch k {
	case KindConfigAbsent, KindNotFound:
		return slog.LevelDebug
	default:
		return slog.LevelError
	}
}
