package hyperlimit

import "time"

// processStart anchors the engine's millisecond clock. time.Since retains
// the monotonic reading time.Now() captured here, so nowMs never regresses
// even if the wall clock is adjusted by NTP.
var processStart = time.Now()

// nowMs returns the current time in milliseconds since the engine started,
// strictly non-decreasing for the lifetime of the process.
func nowMs() int64 {
	return int64(time.Since(processStart) / time.Millisecond)
}
