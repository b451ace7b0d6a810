package clock

import "time"

// Clock abstracts time to keep the completion gate and week navigation
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local time. Day boundaries and scheduled times are
// interpreted in the user's local zone, so Now must not convert to UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
