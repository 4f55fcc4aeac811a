package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kubetail-org/kubetail/internal/api/clusteragentpb"
	"github.com/kubetail-org/kubetail/internal/clusteragent/authcache"
	"github.com/kubetail-org/kubetail/internal/clusteragent/logrecords"
	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// LogRecordsServer implements clusteragentpb.LogRecordsServiceServer.
type LogRecordsServer struct {
	clusteragentpb.UnimplementedLogRecordsServiceServer

	logsDir         string
	authCache       authcache.Authorizer
	truncateAtBytes int
}

// NewLogRecordsServer builds a LogRecordsServer reading files under
// logsDir. truncateAtBytes configures the log-trimmer reader; 0 disables
// truncation.
func NewLogRecordsServer(logsDir string, authCache authcache.Authorizer, truncateAtBytes int) *LogRecordsServer {
	return &LogRecordsServer{logsDir: logsDir, authCache: authCache, truncateAtBytes: truncateAtBytes}
}

// parseOptionalTime parses an RFC3339 timestamp, mapping a parse failure
// to "not set" rather than an error, matching the original agent's
// best-effort `.parse().ok()` handling of these optional fields.
func parseOptionalTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	return &t
}

func (s *LogRecordsServer) StreamForward(req *clusteragentpb.LogRecordsStreamRequest, stream clusteragentpb.LogRecordsService_StreamForwardServer) error {
	ctx := stream.Context()

	logCtx := log().WithFields(logrus.Fields{
		"component":   "logrecords",
		"method":      "StreamForward",
		"stream_uuid": uuid.NewString(),
		"pod":         req.GetPodName(),
		"namespace":   req.GetNamespace(),
		"container":   req.GetContainerName(),
	})

	if err := s.authCache.IsAuthorized(ctx, bearerToken(ctx), []string{req.GetNamespace()}, "get"); err != nil {
		logCtx.WithError(err).Debug("forward stream denied")
		return toGRPCStatus(err)
	}

	path, err := resolveLogPath(s.logsDir, req.GetPodName(), req.GetNamespace(), req.GetContainerName(), req.GetContainerID())
	if err != nil {
		logCtx.WithError(err).Debug("forward stream path resolution failed")
		return toGRPCStatus(err)
	}

	followFrom := logrecords.FollowNoop
	switch req.GetFollowFrom() {
	case clusteragentpb.FollowFrom_DEFAULT:
		followFrom = logrecords.FollowDefault
	case clusteragentpb.FollowFrom_END:
		followFrom = logrecords.FollowEnd
	}

	ch, err := logrecords.StreamForward(ctx, path, logrecords.ForwardOptions{
		StartTime:       parseOptionalTime(req.GetStartTime()),
		StopTime:        parseOptionalTime(req.GetStopTime()),
		Grep:            req.GetGrep(),
		FollowFrom:      followFrom,
		TruncateAtBytes: s.truncateAtBytes,
	})
	if err != nil {
		return toGRPCStatus(err)
	}

	return sendRecords(ch, stream)
}

func (s *LogRecordsServer) StreamBackward(req *clusteragentpb.LogRecordsStreamRequest, stream clusteragentpb.LogRecordsService_StreamBackwardServer) error {
	ctx := stream.Context()

	logCtx := log().WithFields(logrus.Fields{
		"component":   "logrecords",
		"method":      "StreamBackward",
		"stream_uuid": uuid.NewString(),
		"pod":         req.GetPodName(),
		"namespace":   req.GetNamespace(),
		"container":   req.GetContainerName(),
	})

	if err := s.authCache.IsAuthorized(ctx, bearerToken(ctx), []string{req.GetNamespace()}, "get"); err != nil {
		logCtx.WithError(err).Debug("backward stream denied")
		return toGRPCStatus(err)
	}

	path, err := resolveLogPath(s.logsDir, req.GetPodName(), req.GetNamespace(), req.GetContainerName(), req.GetContainerID())
	if err != nil {
		logCtx.WithError(err).Debug("backward stream path resolution failed")
		return toGRPCStatus(err)
	}

	ch, err := logrecords.StreamBackward(ctx, path, logrecords.BackwardOptions{
		StartTime:       parseOptionalTime(req.GetStartTime()),
		StopTime:        parseOptionalTime(req.GetStopTime()),
		Grep:            req.GetGrep(),
		TruncateAtBytes: s.truncateAtBytes,
	})
	if err != nil {
		return toGRPCStatus(err)
	}

	return sendRecords(ch, stream)
}

type recordSender interface {
	Send(*clusteragentpb.LogRecord) error
}

func sendRecords(ch <-chan streamutil.Item[logrecords.LogRecord], stream recordSender) error {
	for item := range ch {
		if item.Err != nil {
			return toGRPCStatus(item.Err)
		}
		if err := stream.Send(toPBLogRecord(item.Value)); err != nil {
			return err
		}
	}
	return nil
}

func toPBLogRecord(r logrecords.LogRecord) *clusteragentpb.LogRecord {
	return &clusteragentpb.LogRecord{
		Timestamp:         r.Timestamp,
		Message:           r.Message,
		OriginalSizeBytes: r.OriginalSizeBytes,
		IsTruncated:       r.IsTruncated,
	}
}
