// Package ident generates the timestamp-derived identifiers used for every
// stored record.
package ident

import (
	"strconv"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns a millisecond-timestamp identifier. Consecutive calls within
// the same millisecond are bumped so identifiers stay unique per process.
func Next() string {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= last {
		now = last + 1
	}
	last = now
	return strconv.FormatInt(now, 10)
}
