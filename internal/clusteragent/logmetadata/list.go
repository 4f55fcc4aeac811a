package logmetadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func log() *logrus.Entry {
	return logrus.WithField("component", "logmetadata")
}

// List performs one directory scan and returns the Metadata for every
// file matching the log-file naming convention whose namespace is
// permitted by namespaces (empty means all).
func List(directory string, namespaces []string, nodeName string) ([]Metadata, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading log directory %q: %w", directory, err)
	}

	items := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		spec, ok := ParseFilename(entry.Name(), nodeName)
		if !ok || !namespaceAllowed(namespaces, spec.Namespace) {
			continue
		}

		path := filepath.Join(directory, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				// File disappeared between ReadDir and Stat: skip, don't fail List.
				log().WithField("path", path).Debug("log file vanished during list, skipping")
				continue
			}
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}

		items = append(items, Metadata{
			ID:   spec.ContainerID,
			Spec: spec,
			FileInfo: FileInfo{
				Size:           info.Size(),
				LastModifiedAt: info.ModTime(),
				HasModTime:     true,
			},
		})
	}

	return items, nil
}
