package logmetadata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
	"google.golang.org/grpc/codes"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// debounceWindow is the fixed coalescing window for filesystem events.
const debounceWindow = 2 * time.Second

// Result is one item of the watch stream: either a translated WatchEvent
// or a terminal error ending the stream.
type Result struct {
	Event WatchEvent
	Err   error
}

// Watch starts watching directory for log-file changes matching
// namespaces and returns a channel of Results (capacity 100). The channel
// closes after emitting exactly one terminal streamutil.ShuttingDown()
// error once ctx is cancelled, or immediately after any other terminal
// error; both are surfaced through the shared shutdown-wrap plumbing so
// this watcher observes the same cancellation token as the forward/
// backward record streamers.
//
// On start, the watcher registers the directory plus every pre-existing
// matching file for non-recursive watching, but does not emit a
// synthetic initial ADDED burst: callers that want the current state
// should call List separately.
func Watch(ctx context.Context, directory string, namespaces []string, nodeName string) (<-chan Result, error) {
	fi, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, streamutil.NewStatusError(codes.NotFound, "log directory not found: %s", directory)
		}
		return nil, fmt.Errorf("stat log directory %q: %w", directory, err)
	}
	if !fi.IsDir() {
		return nil, streamutil.NewStatusError(codes.NotFound, "log directory not found: %s", directory)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("reading log directory %q: %w", directory, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		spec, ok := ParseFilename(entry.Name(), nodeName)
		if !ok || !namespaceAllowed(namespaces, spec.Namespace) {
			continue
		}
		path := filepath.Join(directory, entry.Name())
		if err := fsw.Add(path); err != nil {
			log().WithError(err).WithField("path", path).Debug("failed to register watch for pre-existing file")
		}
	}
	if err := fsw.Add(directory); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching log directory %q: %w", directory, err)
	}

	items := make(chan streamutil.Item[WatchEvent])
	go runWatcher(ctx, fsw, directory, namespaces, nodeName, items)

	out := make(chan Result, 100)
	go forwardWatch(ctx, items, out)
	return out, nil
}

// forwardWatch composes the raw watch loop through the shared
// shutdown-wrap plumbing and translates its items to Results.
func forwardWatch(ctx context.Context, items <-chan streamutil.Item[WatchEvent], out chan<- Result) {
	defer close(out)
	for item := range streamutil.WrapWithShutdown(ctx, items) {
		out <- Result{Event: item.Value, Err: item.Err}
	}
}

type batchItem struct {
	result   Result
	terminal bool
}

// runWatcher debounces raw fsnotify events into translated WatchEvents
// and emits them on items, which forwardWatch wraps with the shared
// shutdown-wrap plumbing; runWatcher itself only needs to notice
// cancellation to stop cleanly, not to surface it.
func runWatcher(ctx context.Context, fsw *fsnotify.Watcher, directory string, namespaces []string, nodeName string, items chan<- streamutil.Item[WatchEvent]) {
	defer close(items)
	defer func() { _ = fsw.Close() }()

	var pending []fsnotify.Event
	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	timerActive := false

	// flush translates and dedups the pending batch, forwards it, and
	// reports whether the watch loop should stop.
	flush := func() (stop bool) {
		if len(pending) == 0 {
			return false
		}
		batch := pending
		pending = nil

		batchItems := make([]batchItem, 0, len(batch))
		for _, ev := range batch {
			res, emit, terminal := translateEvent(ev, namespaces, nodeName)
			if !emit {
				continue
			}
			batchItems = append(batchItems, batchItem{result: res, terminal: terminal})
		}
		batchItems = dedupeBatch(batchItems)

		for _, item := range batchItems {
			if !item.terminal {
				applyWatchListUpdate(fsw, item.result.Event, directory)
			}
			select {
			case items <- streamutil.Item[WatchEvent]{Value: item.result.Event, Err: item.result.Err}:
			case <-ctx.Done():
				return true
			}
			if item.terminal {
				return true
			}
		}
		return false
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			pending = append(pending, ev)
			if !timerActive {
				timer.Reset(debounceWindow)
				timerActive = true
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			select {
			case items <- streamutil.Item[WatchEvent]{Err: fmt.Errorf("filesystem watch error: %w", err)}:
			case <-ctx.Done():
			}
			return
		case <-timer.C:
			timerActive = false
			if flush() {
				return
			}
		}
	}
}

// translateEvent maps one raw fsnotify event to (at most) one WatchEvent
// or terminal error. emit is false when the event should produce nothing
// (unmatched filename, filtered namespace, or an unhandled op kind).
func translateEvent(ev fsnotify.Event, namespaces []string, nodeName string) (res Result, emit bool, terminal bool) {
	var kind EventType
	switch {
	case ev.Has(fsnotify.Create):
		kind = Added
	case ev.Has(fsnotify.Write):
		kind = Modified
	case ev.Has(fsnotify.Remove):
		kind = Deleted
	case ev.Has(fsnotify.Rename):
		// The old path is gone; a Create for the new path (if it matches
		// the naming convention) arrives as a separate event.
		kind = Deleted
	default:
		return Result{}, false, false
	}

	name := filepath.Base(ev.Name)
	spec, ok := ParseFilename(name, nodeName)
	if !ok || !namespaceAllowed(namespaces, spec.Namespace) {
		return Result{}, false, false
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Event: WatchEvent{
				Type: Deleted,
				Object: Metadata{
					ID:       spec.ContainerID,
					Spec:     spec,
					FileInfo: FileInfo{},
				},
			}}, true, false
		}
		return Result{Err: fmt.Errorf("stat %q: %w", ev.Name, err)}, true, true
	}

	return Result{Event: WatchEvent{
		Type: kind,
		Object: Metadata{
			ID:   spec.ContainerID,
			Spec: spec,
			FileInfo: FileInfo{
				Size:           info.Size(),
				LastModifiedAt: info.ModTime(),
				HasModTime:     true,
			},
		},
	}}, true, false
}

// dedupeBatch collapses duplicate (type, object) tuples within a
// debounce batch, keeping the latest occurrence; errors are always kept.
func dedupeBatch(items []batchItem) []batchItem {
	seen := make(map[string]bool, len(items))
	deduped := make([]batchItem, 0, len(items))

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item.terminal {
			deduped = append(deduped, item)
			continue
		}
		key := eventKey(item.result.Event)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, item)
	}

	for l, r := 0, len(deduped)-1; l < r; l, r = l+1, r-1 {
		deduped[l], deduped[r] = deduped[r], deduped[l]
	}
	return deduped
}

func eventKey(ev WatchEvent) string {
	fi := ev.Object.FileInfo
	return string(ev.Type) + "|" + ev.Object.ID + "|" + ev.Object.Spec.Namespace + "|" +
		ev.Object.Spec.PodName + "|" + ev.Object.Spec.ContainerName + "|" + ev.Object.Spec.NodeName + "|" +
		strconv.FormatInt(fi.Size, 10) + "|" + strconv.FormatBool(fi.HasModTime) + "|" +
		fi.LastModifiedAt.UTC().Format(time.RFC3339Nano)
}

// applyWatchListUpdate adds or removes the fsnotify watch for a file in
// response to an ADDED/DELETED event. Failures are logged, never
// surfaced.
func applyWatchListUpdate(fsw *fsnotify.Watcher, ev WatchEvent, directory string) {
	path := filepath.Join(directory, Filename(ev.Object.Spec))

	var err error
	switch ev.Type {
	case Added:
		err = fsw.Add(path)
	case Deleted:
		err = fsw.Remove(path)
	default:
		return
	}
	if err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		log().WithError(err).WithField("path", path).Debug("failed to update dynamic watch list")
	}
}
