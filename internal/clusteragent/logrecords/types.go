// Package logrecords implements forward and reverse line-oriented readers
// over container log files, anchored by a timestamp-indexed binary
// search, with line-length truncation, substring matching, follow-tail
// semantics, and cooperative shutdown.
package logrecords

import "time"

// LogRecord is one emitted log line.
type LogRecord struct {
	Timestamp         time.Time
	Message           string
	OriginalSizeBytes uint64
	IsTruncated       bool
}

// FollowFrom selects the forward streamer's tailing behavior.
type FollowFrom int

const (
	// FollowNoop disables tailing: the streamer terminates once the
	// computed range has been exhausted.
	FollowNoop FollowFrom = iota
	// FollowDefault tails from the computed start position.
	FollowDefault
	// FollowEnd ignores startTime and tails from the current end of file.
	FollowEnd
)

// Format distinguishes the two on-disk log line encodings.
type Format int

const (
	FormatCRI Format = iota
	FormatDockerJSON
)

// truncationSentinel terminates a truncation marker.
const truncationSentinel = 0x1F
