package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. Injected so tests control timestamps
// instead of depending on the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator mints unique entity ids. Injected so tests get stable ids.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator mints prefixed uuid ids, e.g. "SCN-5f0c...".
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
