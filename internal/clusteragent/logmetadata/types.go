// Package logmetadata implements a directory-scan-plus-filesystem-
// notification engine that produces a deduplicated stream of
// ADDED/MODIFIED/DELETED events for container log files.
package logmetadata

import (
	"regexp"
	"time"
)

// logFileRegexp matches the container-log naming convention:
// <pod>_<namespace>_<container>-<containerID>.log
var logFileRegexp = regexp.MustCompile(`^(?P<pod>[^_]+)_(?P<ns>[^_]+)_(?P<container>.+)-(?P<id>[^-]+)\.log$`)

// EventType is the kind of change reported for a watched file.
type EventType string

const (
	Added    EventType = "ADDED"
	Modified EventType = "MODIFIED"
	Deleted  EventType = "DELETED"
)

// Spec is the immutable identity of a log file, derived from its
// filename and the process-wide node name.
type Spec struct {
	ContainerID   string
	ContainerName string
	PodName       string
	NodeName      string
	Namespace     string
}

// FileInfo is derived from stat() at observation time.
type FileInfo struct {
	Size           int64
	LastModifiedAt time.Time
	HasModTime     bool
}

// Metadata identifies a log file by its container ID.
type Metadata struct {
	ID       string
	Spec     Spec
	FileInfo FileInfo
}

// WatchEvent is one entry in the watch stream.
type WatchEvent struct {
	Type   EventType
	Object Metadata
}

// ParseFilename extracts a Spec from a log file's base name. ok is false
// if the name does not match the container-log naming convention.
func ParseFilename(name, nodeName string) (Spec, bool) {
	m := logFileRegexp.FindStringSubmatch(name)
	if m == nil {
		return Spec{}, false
	}
	idx := make(map[string]string, len(m))
	for i, g := range logFileRegexp.SubexpNames() {
		if i == 0 || g == "" {
			continue
		}
		idx[g] = m[i]
	}
	return Spec{
		ContainerID:   idx["id"],
		ContainerName: idx["container"],
		PodName:       idx["pod"],
		NodeName:      nodeName,
		Namespace:     idx["ns"],
	}, true
}

// Filename reconstructs the on-disk filename for a Spec, the inverse of
// ParseFilename (ignoring NodeName, which is not part of the name).
func Filename(s Spec) string {
	return s.PodName + "_" + s.Namespace + "_" + s.ContainerName + "-" + s.ContainerID + ".log"
}

// namespaceAllowed reports whether ns is permitted by filter. An empty
// filter permits every namespace.
func namespaceAllowed(filter []string, ns string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == ns {
			return true
		}
	}
	return false
}
