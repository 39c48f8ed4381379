package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUUID indicates the string is not a valid UUID format
	ErrInvalidUUID = errors.New("invalid UUID format")
	// ErrNotUUIDv7 indicates the UUID is not version 7
	ErrNotUUIDv7 = errors.New("UUID must be version 7")
	// ErrFutureTimestamp indicates the UUIDv7 timestamp is too far in the future
	ErrFutureTimestamp = errors.New("UUID timestamp is too far in the future")
)

// MaxClockSkew is how far ahead of the server clock a UUIDv7 timestamp may be.
const MaxClockSkew = time.Minute

// ValidateUUIDv7 checks that id is a UUIDv7 whose timestamp is not beyond
// MaxClockSkew in the future. Widget ids are generated with uuid.NewV7, so
// any other form cannot name a widget.
func ValidateUUIDv7(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	if parsed.Version() != 7 {
		return fmt.Errorf("%w: got version %d", ErrNotUUIDv7, parsed.Version())
	}

	if ts := uuidTime(parsed); ts.After(time.Now().Add(MaxClockSkew)) {
		return fmt.Errorf("%w: %s", ErrFutureTimestamp, ts.Format(time.RFC3339))
	}
	return nil
}

// ExtractUUIDv7Timestamp returns the creation time embedded in a UUIDv7, in
// UTC with millisecond precision. It returns the zero time for invalid ids.
func ExtractUUIDv7Timestamp(id string) time.Time {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}
	}
	return uuidTime(parsed)
}

func uuidTime(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}

// IsInvalidID reports whether err was returned by ValidateUUIDv7.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidUUID) || errors.Is(err, ErrNotUUIDv7) || errors.Is(err, ErrFutureTimestamp)
}
