package testsupport

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Global counter for generating unique sequential IDs in tests.
// Seeded from the clock so keys left behind by an aborted run are not reused.
var testSequence = uint64(time.Now().UnixNano() % 1000000)

// NextSequence returns next unique sequence number
func NextSequence() uint64 {
	return atomic.AddUint64(&testSequence, 1)
}

// UniqueName generates a unique name with given prefix
// Example: UniqueName("test-gemini") -> "test-gemini_123456"
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, NextSequence())
}
