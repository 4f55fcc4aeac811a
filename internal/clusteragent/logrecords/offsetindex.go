package logrecords

import (
	"bufio"
	"io"
	"time"
)

// Offset identifies a line by its starting byte offset and byte length
// (excluding the trailing newline).
type Offset struct {
	ByteOffset int64
	LineLength int64
}

// findMode selects which bound find_nearest_offset enforces.
type findMode int

const (
	findSince findMode = iota
	findUntil
)

// FindNearestOffsetSince returns the earliest line in [minOffset, maxOffset)
// whose leading timestamp is >= target, or ok=false if none exists.
func FindNearestOffsetSince(src io.ReadSeeker, format Format, target time.Time, minOffset, maxOffset int64) (Offset, bool, error) {
	return findNearestOffset(src, format, target, minOffset, maxOffset, findSince)
}

// FindNearestOffsetUntil returns the latest line in [minOffset, maxOffset)
// whose leading timestamp is <= target, or ok=false if none exists.
func FindNearestOffsetUntil(src io.ReadSeeker, format Format, target time.Time, minOffset, maxOffset int64) (Offset, bool, error) {
	return findNearestOffset(src, format, target, minOffset, maxOffset, findUntil)
}

func findNearestOffset(src io.ReadSeeker, format Format, target time.Time, minOffset, maxOffset int64, mode findMode) (Offset, bool, error) {
	if maxOffset == 0 {
		return Offset{}, false, nil
	}

	left := minOffset
	right := maxOffset - 1

	var result Offset
	found := false

	for left <= right {
		mid := (left + right) / 2

		if _, err := src.Seek(mid, io.SeekStart); err != nil {
			return Offset{}, false, err
		}
		reader := bufio.NewReader(src)

		newMid, ts, lineLength, ok, err := scanTimestamp(reader, format, right, mid)
		if err != nil {
			return Offset{}, false, err
		}

		if !ok {
			right = newMid - 1
			continue
		}

		switch mode {
		case findSince:
			if !ts.Before(target) {
				result = Offset{ByteOffset: newMid, LineLength: lineLength}
				found = true
				right = newMid - 1
			} else {
				left = newMid + 1
			}
		case findUntil:
			if !ts.After(target) {
				result = Offset{ByteOffset: newMid, LineLength: lineLength}
				found = true
				left = newMid + 1
			} else {
				right = newMid - 1
			}
		}
	}

	return result, found, nil
}

// scanTimestamp reads lines starting at startPos (up to and including
// right) until it finds one with a parseable leading timestamp, skipping
// malformed lines along the way.
func scanTimestamp(reader *bufio.Reader, format Format, right, startPos int64) (pos int64, ts time.Time, lineLength int64, ok bool, err error) {
	pos = startPos
	for pos <= right {
		line, readErr := reader.ReadBytes('\n')
		if len(line) == 0 {
			return startPos, time.Time{}, 0, false, nil
		}

		trimmed := line
		if n := len(trimmed); n > 0 && trimmed[n-1] == '\n' {
			trimmed = trimmed[:n-1]
		}
		if n := len(trimmed); n > 0 && trimmed[n-1] == '\r' {
			trimmed = trimmed[:n-1]
		}

		if parsedTS, parsedOK := parseTimestamp(trimmed, format); parsedOK {
			return pos, parsedTS, int64(len(trimmed)), true, nil
		}

		pos += int64(len(line))

		if readErr == io.EOF {
			return startPos, time.Time{}, 0, false, nil
		}
		if readErr != nil {
			return 0, time.Time{}, 0, false, readErr
		}
	}
	return startPos, time.Time{}, 0, false, nil
}
