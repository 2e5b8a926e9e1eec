package appversion

import "time"

// Record is the build metadata rendered into the generated module.
type Record struct {
	Version     string
	BuildNumber uint32
	Hash        string
	Timestamp   int64
	Source      string
}

// TimestampMillis converts t to milliseconds since the Unix epoch. Clocks set
// before the epoch yield 0.
func TimestampMillis(t time.Time) int64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return ms
}
