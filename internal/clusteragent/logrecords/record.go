package logrecords

// matchLine applies matcher to one raw line (with or without trailing
// '\n'/'\r\n') and, if it matches and carries a parseable timestamp,
// returns the decoded LogRecord. ok is false when the line should be
// skipped: no recognizable message portion, no match, or no parseable
// leading timestamp.
func matchLine(line []byte, format Format, matcher Matcher) (LogRecord, bool) {
	content := line
	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}
	if n := len(content); n > 0 && content[n-1] == '\r' {
		content = content[:n-1]
	}

	start, end, ok := messageBounds(content, format)
	if !ok {
		return LogRecord{}, false
	}
	message := content[start:end]
	if !matcher.Match(message) {
		return LogRecord{}, false
	}

	ts, tsOK := parseTimestamp(content, format)
	if !tsOK {
		return LogRecord{}, false
	}

	trimmed, recovered, isTruncated := decodeTruncationMarker(message, format)
	originalSize := uint64(len(message))
	if isTruncated {
		message = trimmed
		originalSize = uint64(len(trimmed)) + recovered
	}

	return LogRecord{
		Timestamp:         ts,
		Message:           string(message),
		OriginalSizeBytes: originalSize,
		IsTruncated:       isTruncated,
	}, true
}
