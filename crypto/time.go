package crypto

import (
	"time"
)

// Clock is a function that returns a timestamp.
// It has the type of packet.Config.Time.
type Clock func() time.Time

// NewConstantClock returns a Clock that always returns unixTime.
func NewConstantClock(unixTime int64) Clock {
	return func() time.Time {
		return time.Unix(unixTime, 0)
	}
}

// SystemClock returns the current system time.
func SystemClock() time.Time {
	return time.Now()
}
