package logrecords

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// ForwardOptions configures StreamForward.
type ForwardOptions struct {
	StartTime       *time.Time
	StopTime        *time.Time
	Grep            string
	FollowFrom      FollowFrom
	TruncateAtBytes int
}

// StreamForward delivers the records of path in file order, optionally
// tailing the file for new writes, until the range is exhausted or ctx is
// cancelled. The returned channel (capacity 100) is closed after exactly
// one of: a natural end with no follow, a terminal error, or a single
// UNAVAILABLE shutdown error.
func StreamForward(ctx context.Context, path string, opts ForwardOptions) (<-chan streamutil.Item[LogRecord], error) {
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
	switch {
	case opts.FollowFrom == FollowEnd:
		startPos = maxOffset
	case opts.StartTime != nil:
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

	var takeLength *int64
	if opts.FollowFrom != FollowEnd && opts.StopTime != nil {
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
		length := offset.ByteOffset + offset.LineLength - startPos
		takeLength = &length
	}

	if _, err := file.Seek(startPos, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, err
	}

	matcher, err := NewMatcher(opts.Grep)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	out := make(chan streamutil.Item[LogRecord], 100)
	go runForward(ctx, file, path, format, matcher, startPos, takeLength, opts, out)
	return out, nil
}

func runForward(
	ctx context.Context,
	file *os.File,
	path string,
	format Format,
	matcher Matcher,
	startPos int64,
	takeLength *int64,
	opts ForwardOptions,
	out chan<- streamutil.Item[LogRecord],
) {
	defer close(out)
	defer func() { _ = file.Close() }()

	var src io.Reader = file
	if takeLength != nil {
		src = io.LimitReader(file, *takeLength)
	}
	trimmed := NewLogTrimmer(src, format, opts.TruncateAtBytes)
	cancelAware := streamutil.NewCancelAwareReader(ctx, trimmed)

	if cancelled, err := scanAll(cancelAware, format, matcher, out); err != nil {
		select {
		case out <- streamutil.Item[LogRecord]{Err: fmt.Errorf("reading log file %q: %w", path, err)}:
		case <-ctx.Done():
			out <- streamutil.Item[LogRecord]{Err: streamutil.ShuttingDown()}
		}
		return
	} else if cancelled {
		out <- streamutil.Item[LogRecord]{Err: streamutil.ShuttingDown()}
		return
	}

	if takeLength != nil || opts.FollowFrom == FollowNoop {
		return
	}

	runTail(ctx, path, format, matcher, opts.TruncateAtBytes, out)
}

// scanAll reads complete lines from src until EOF, matching and emitting
// each. A cancellation surfaces as repeated 0-byte/nil-error reads from
// the cancellation-aware wrapper, which bufio.Reader turns into
// io.ErrNoProgress; that is treated as a cancelled read, not a fatal I/O
// error.
func scanAll(src io.Reader, format Format, matcher Matcher, out chan<- streamutil.Item[LogRecord]) (cancelled bool, err error) {
	reader := bufio.NewReader(src)
	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			if rec, ok := matchLine(line, format, matcher); ok {
				out <- streamutil.Item[LogRecord]{Value: rec}
			}
		}
		switch readErr {
		case nil:
			continue
		case io.EOF:
			return false, nil
		case io.ErrNoProgress:
			return true, nil
		default:
			return false, readErr
		}
	}
}

// runTail composes the filesystem-watch loop through the shared
// shutdown-wrap plumbing so it observes the same cancellation token as
// the rest of the stream, instead of hand-rolling its own biased select.
func runTail(ctx context.Context, path string, format Format, matcher Matcher, truncateAtBytes int, out chan<- streamutil.Item[LogRecord]) {
	items := make(chan streamutil.Item[LogRecord])
	go watchTail(ctx, path, format, matcher, truncateAtBytes, items)

	for item := range streamutil.WrapWithShutdown(ctx, items) {
		out <- item
	}
}

// watchTail runs a filesystem watcher on path, with a second reader
// positioned at end-of-file and wrapped by the same log-trimmer settings,
// searched line by line on every Write event. It closes items on ctx
// cancellation or any terminal condition; the shutdown-wrap plumbing
// wrapping items is responsible for surfacing the cancellation itself.
func watchTail(ctx context.Context, path string, format Format, matcher Matcher, truncateAtBytes int, items chan<- streamutil.Item[LogRecord]) {
	defer close(items)

	sendOrCancel := func(item streamutil.Item[LogRecord]) {
		select {
		case items <- item:
		case <-ctx.Done():
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		sendOrCancel(streamutil.Item[LogRecord]{Err: fmt.Errorf("watching log file %q: %w", path, err)})
		return
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(path); err != nil {
		sendOrCancel(streamutil.Item[LogRecord]{Err: fmt.Errorf("watching log file %q: %w", path, err)})
		return
	}

	tailFile, err := os.Open(path)
	if err != nil {
		sendOrCancel(streamutil.Item[LogRecord]{Err: fmt.Errorf("opening log file %q: %w", path, err)})
		return
	}
	defer func() { _ = tailFile.Close() }()

	if _, err := tailFile.Seek(0, io.SeekEnd); err != nil {
		sendOrCancel(streamutil.Item[LogRecord]{Err: fmt.Errorf("seeking log file %q: %w", path, err)})
		return
	}

	reader := bufio.NewReader(NewLogTrimmer(tailFile, format, truncateAtBytes))
	drain := func() (cancelled bool) {
		for {
			line, err := reader.ReadBytes('\n')
			if len(line) > 0 {
				if rec, ok := matchLine(line, format, matcher); ok {
					select {
					case items <- streamutil.Item[LogRecord]{Value: rec}:
					case <-ctx.Done():
						return true
					}
				}
			}
			if err != nil {
				return false // caught up; wait for the next notify event
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) {
				if drain() {
					return
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			sendOrCancel(streamutil.Item[LogRecord]{Err: fmt.Errorf("filesystem watch error on %q: %w", path, err)})
			return
		}
	}
}
