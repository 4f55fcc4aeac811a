package logrecords

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// BackwardOptions configures StreamBackward. followFrom is not part of
// the contract: the backward streamer never tails.
type BackwardOptions struct {
	StartTime       *time.Time
	StopTime        *time.Time
	Grep            string
	TruncateAtBytes int
}

// StreamBackward delivers the records of path in reverse file order,
// bounded by StartTime/StopTime, then closes the returned channel. It
// never tails.
func StreamBackward(ctx context.Context, path string, opts BackwardOptions) (<-chan streamutil.Item[LogRecord], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	format := DetectFormat(filepath.Base(path))

	fi, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	maxOffset := fi.Size()

	var startPos int64
	if opts.StartTime != nil {
		offset, ok, err := FindNearestOffsetSince(file, format, *opts.StartTime, 0, maxOffset)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		if !ok {
			_ = file.Close()
			out := make(chan streamutil.Item[LogRecord])
			close(out)
			return out, nil
		}
		startPos = offset.ByteOffset
	}

	endPos := maxOffset
	if opts.StopTime != nil {
		offset, ok, err := FindNearestOffsetUntil(file, format, *opts.StopTime, startPos, maxOffset)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		if !ok {
			_ = file.Close()
			out := make(chan streamutil.Item[LogRecord])
			close(out)
			return out, nil
		}
		endPos = offset.ByteOffset + offset.LineLength
	}

	matcher, err := NewMatcher(opts.Grep)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	reverseReader, err := NewReverseLineReader(file, startPos, endPos)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	out := make(chan streamutil.Item[LogRecord], 100)
	go runBackward(ctx, file, path, format, matcher, reverseReader, out)
	return out, nil
}

// runBackward composes the reverse scan through the shared shutdown-wrap
// plumbing so it observes the same cancellation token as the forward
// streamer's tail loop, instead of hand-rolling its own biased select.
func runBackward(
	ctx context.Context,
	file *os.File,
	path string,
	format Format,
	matcher Matcher,
	reverseReader *ReverseLineReader,
	out chan<- streamutil.Item[LogRecord],
) {
	defer close(out)
	defer func() { _ = file.Close() }()

	items := make(chan streamutil.Item[LogRecord])
	go scanBackward(ctx, reverseReader, path, format, matcher, items)

	for item := range streamutil.WrapWithShutdown(ctx, items) {
		out <- item
	}
}

// scanBackward reads complete lines from the reverse reader until EOF,
// matching and emitting each onto items, then closes it. A cancellation
// surfaces as repeated 0-byte/nil-error reads from the cancellation-aware
// wrapper, which bufio.Reader turns into io.ErrNoProgress; that simply
// ends the scan here, since the shutdown-wrap plumbing wrapping items is
// responsible for surfacing the cancellation itself.
func scanBackward(ctx context.Context, reverseReader *ReverseLineReader, path string, format Format, matcher Matcher, items chan<- streamutil.Item[LogRecord]) {
	defer close(items)

	cancelAware := streamutil.NewCancelAwareReader(ctx, reverseReader)
	reader := bufio.NewReader(cancelAware)

	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			if rec, ok := matchLine(line, format, matcher); ok {
				select {
				case items <- streamutil.Item[LogRecord]{Value: rec}:
				case <-ctx.Done():
					return
				}
			}
		}
		switch readErr {
		case nil:
			continue
		case io.EOF:
			return
		case io.ErrNoProgress:
			return
		default:
			select {
			case items <- streamutil.Item[LogRecord]{Err: fmt.Errorf("reading log file %q: %w", path, readErr)}:
			case <-ctx.Done():
			}
			return
		}
	}
}
