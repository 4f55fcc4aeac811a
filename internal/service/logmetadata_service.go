package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kubetail-org/kubetail/internal/api/clusteragentpb"
	"github.com/kubetail-org/kubetail/internal/clusteragent/authcache"
	"github.com/kubetail-org/kubetail/internal/clusteragent/logmetadata"
)

// LogMetadataServer implements clusteragentpb.LogMetadataServiceServer.
type LogMetadataServer struct {
	clusteragentpb.UnimplementedLogMetadataServiceServer

	logsDir   string
	nodeName  string
	authCache authcache.Authorizer
}

// NewLogMetadataServer builds a LogMetadataServer that scans and watches
// logsDir, stamping every emitted spec with nodeName.
func NewLogMetadataServer(logsDir, nodeName string, authCache authcache.Authorizer) *LogMetadataServer {
	return &LogMetadataServer{logsDir: logsDir, nodeName: nodeName, authCache: authCache}
}

func (s *LogMetadataServer) List(ctx context.Context, req *clusteragentpb.LogMetadataListRequest) (*clusteragentpb.LogMetadataList, error) {
	namespaces := req.GetNamespaces()

	if err := s.authCache.IsAuthorized(ctx, bearerToken(ctx), namespaces, "list"); err != nil {
		return nil, toGRPCStatus(err)
	}

	items, err := logmetadata.List(s.logsDir, namespaces, s.nodeName)
	if err != nil {
		return nil, toGRPCStatus(err)
	}

	out := make([]*clusteragentpb.LogMetadata, 0, len(items))
	for _, item := range items {
		out = append(out, toPBMetadata(item))
	}
	return &clusteragentpb.LogMetadataList{Items: out}, nil
}

func (s *LogMetadataServer) Watch(req *clusteragentpb.LogMetadataWatchRequest, stream clusteragentpb.LogMetadataService_WatchServer) error {
	ctx := stream.Context()
	namespaces := req.GetNamespaces()

	if err := s.authCache.IsAuthorized(ctx, bearerToken(ctx), namespaces, "watch"); err != nil {
		return toGRPCStatus(err)
	}

	logCtx := log().WithFields(logrus.Fields{
		"component":  "logmetadata",
		"watch_uuid": uuid.NewString(),
		"namespaces": namespaces,
	})

	results, err := logmetadata.Watch(ctx, s.logsDir, namespaces, s.nodeName)
	if err != nil {
		return toGRPCStatus(err)
	}

	for result := range results {
		if result.Err != nil {
			return toGRPCStatus(result.Err)
		}
		if err := stream.Send(toPBWatchEvent(result.Event)); err != nil {
			logCtx.WithError(err).Debug("failed to send watch event")
			return err
		}
	}
	return nil
}

func toPBMetadata(m logmetadata.Metadata) *clusteragentpb.LogMetadata {
	return &clusteragentpb.LogMetadata{
		ID: m.ID,
		Spec: &clusteragentpb.LogMetadataSpec{
			NodeName:      m.Spec.NodeName,
			Namespace:     m.Spec.Namespace,
			PodName:       m.Spec.PodName,
			ContainerName: m.Spec.ContainerName,
			ContainerID:   m.Spec.ContainerID,
		},
		FileInfo: &clusteragentpb.LogMetadataFileInfo{
			Size:           m.FileInfo.Size,
			LastModifiedAt: m.FileInfo.LastModifiedAt,
		},
	}
}

func toPBWatchEvent(ev logmetadata.WatchEvent) *clusteragentpb.LogMetadataWatchEvent {
	var t clusteragentpb.LogMetadataWatchEventType
	switch ev.Type {
	case logmetadata.Added:
		t = clusteragentpb.LogMetadataWatchEventType_ADDED
	case logmetadata.Modified:
		t = clusteragentpb.LogMetadataWatchEventType_MODIFIED
	case logmetadata.Deleted:
		t = clusteragentpb.LogMetadataWatchEventType_DELETED
	}
	return &clusteragentpb.LogMetadataWatchEvent{
		Type:   t,
		Object: toPBMetadata(ev.Object),
	}
}
