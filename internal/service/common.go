// Package service wires the log-metadata and log-records core packages
// to their generated gRPC stubs: bearer-token extraction, per-namespace
// authorization, file-path resolution, and status-code translation.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

func log() *logrus.Entry {
	return logrus.WithField("component", "service")
}

// bearerToken extracts the caller's token from the "authorization"
// request-metadata entry. Missing metadata or an empty value both count
// as no token; the caller maps that to UNAUTHENTICATED.
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// splitContainerID strips a leading "scheme://" prefix from a container
// ID.
func splitContainerID(containerID string) string {
	if _, id, found := strings.Cut(containerID, "://"); found {
		return id
	}
	return containerID
}

// resolveLogPath builds and canonicalizes the on-disk path for the
// requested pod/namespace/container/containerID. A non-existent path
// yields NOT_FOUND naming the path.
func resolveLogPath(logsDir, podName, namespace, containerName, containerID string) (string, error) {
	id := splitContainerID(containerID)
	name := fmt.Sprintf("%s_%s_%s-%s.log", podName, namespace, containerName, id)
	path := filepath.Join(logsDir, name)

	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return "", streamutil.NewStatusError(codes.NotFound, "log file not found: %s", path)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", streamutil.NewStatusError(codes.NotFound, "log file not found: %s", path)
	}
	return resolved, nil
}

// toGRPCStatus maps a core error to a transport error.
// *streamutil.StatusError carries its code explicitly; anything else is
// UNKNOWN.
func toGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *streamutil.StatusError
	if errors.As(err, &statusErr) {
		return status.Error(statusErr.Code, statusErr.Message)
	}
	return status.Error(codes.Unknown, err.Error())
}
