package auth

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IdentityMapper converts a token subject into the application's identity type.
// Implementations must be pure: no I/O and no shared state.
type IdentityMapper[T any] func(subject string) (T, error)

// StringIdentity uses the subject as-is.
func StringIdentity(subject string) (string, error) { return subject, nil }

// Int64Identity requires a base-10 integer subject.
func Int64Identity(subject string) (int64, error) {
	n, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIdentityMapping, err)
	}
	return n, nil
}

func UUIDIdentity(subject string) (uuid.UUID, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrIdentityMapping, err)
	}
	return id, nil
}
