// Package clusteragentpb holds the message and service types described by
// proto/clusteragent/v1/clusteragent.proto. protoc is not available in
// this environment, so these are hand-maintained in the shape
// protoc-gen-go/protoc-gen-go-grpc would produce: plain structs with
// protobuf struct tags and Go-convention getters, plus the client/server
// stubs in clusteragent_grpc.pb.go. They implement the legacy
// (Reset/String/ProtoMessage) protobuf marker interface rather than the
// full protoreflect API, which requires a compiled file descriptor this
// environment cannot produce; see DESIGN.md for the tradeoff.
package clusteragentpb

import (
	"fmt"
	"time"
)

// LogMetadataWatchEventType mirrors the proto enum of the same name.
type LogMetadataWatchEventType int32

const (
	LogMetadataWatchEventType_UNSPECIFIED LogMetadataWatchEventType = 0
	LogMetadataWatchEventType_ADDED       LogMetadataWatchEventType = 1
	LogMetadataWatchEventType_MODIFIED    LogMetadataWatchEventType = 2
	LogMetadataWatchEventType_DELETED     LogMetadataWatchEventType = 3
)

func (t LogMetadataWatchEventType) String() string {
	switch t {
	case LogMetadataWatchEventType_ADDED:
		return "ADDED"
	case LogMetadataWatchEventType_MODIFIED:
		return "MODIFIED"
	case LogMetadataWatchEventType_DELETED:
		return "DELETED"
	default:
		return "UNSPECIFIED"
	}
}

// FollowFrom mirrors the proto enum of the same name.
type FollowFrom int32

const (
	FollowFrom_NOOP    FollowFrom = 0
	FollowFrom_DEFAULT FollowFrom = 1
	FollowFrom_END     FollowFrom = 2
)

func (f FollowFrom) String() string {
	switch f {
	case FollowFrom_DEFAULT:
		return "DEFAULT"
	case FollowFrom_END:
		return "END"
	default:
		return "NOOP"
	}
}

type LogMetadataListRequest struct {
	Namespaces []string `protobuf:"bytes,1,rep,name=namespaces,proto3" json:"namespaces,omitempty"`
}

func (x *LogMetadataListRequest) Reset()         { *x = LogMetadataListRequest{} }
func (x *LogMetadataListRequest) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataListRequest) ProtoMessage()    {}

func (x *LogMetadataListRequest) GetNamespaces() []string {
	if x != nil {
		return x.Namespaces
	}
	return nil
}

type LogMetadataList struct {
	Items []*LogMetadata `protobuf:"bytes,1,rep,name=items,proto3" json:"items,omitempty"`
}

func (x *LogMetadataList) Reset()         { *x = LogMetadataList{} }
func (x *LogMetadataList) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataList) ProtoMessage()    {}

func (x *LogMetadataList) GetItems() []*LogMetadata {
	if x != nil {
		return x.Items
	}
	return nil
}

type LogMetadataWatchRequest struct {
	Namespaces []string `protobuf:"bytes,1,rep,name=namespaces,proto3" json:"namespaces,omitempty"`
}

func (x *LogMetadataWatchRequest) Reset()         { *x = LogMetadataWatchRequest{} }
func (x *LogMetadataWatchRequest) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataWatchRequest) ProtoMessage()    {}

func (x *LogMetadataWatchRequest) GetNamespaces() []string {
	if x != nil {
		return x.Namespaces
	}
	return nil
}

type LogMetadataWatchEvent struct {
	Type   LogMetadataWatchEventType `protobuf:"varint,1,opt,name=type,proto3,enum=clusteragent.v1.LogMetadataWatchEventType" json:"type,omitempty"`
	Object *LogMetadata              `protobuf:"bytes,2,opt,name=object,proto3" json:"object,omitempty"`
}

func (x *LogMetadataWatchEvent) Reset()         { *x = LogMetadataWatchEvent{} }
func (x *LogMetadataWatchEvent) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataWatchEvent) ProtoMessage()    {}

func (x *LogMetadataWatchEvent) GetType() LogMetadataWatchEventType {
	if x != nil {
		return x.Type
	}
	return LogMetadataWatchEventType_UNSPECIFIED
}

func (x *LogMetadataWatchEvent) GetObject() *LogMetadata {
	if x != nil {
		return x.Object
	}
	return nil
}

type LogMetadataSpec struct {
	NodeName      string `protobuf:"bytes,1,opt,name=node_name,json=nodeName,proto3" json:"node_name,omitempty"`
	Namespace     string `protobuf:"bytes,2,opt,name=namespace,proto3" json:"namespace,omitempty"`
	PodName       string `protobuf:"bytes,3,opt,name=pod_name,json=podName,proto3" json:"pod_name,omitempty"`
	ContainerName string `protobuf:"bytes,4,opt,name=container_name,json=containerName,proto3" json:"container_name,omitempty"`
	ContainerID   string `protobuf:"bytes,5,opt,name=container_id,json=containerId,proto3" json:"container_id,omitempty"`
}

func (x *LogMetadataSpec) Reset()         { *x = LogMetadataSpec{} }
func (x *LogMetadataSpec) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataSpec) ProtoMessage()    {}

func (x *LogMetadataSpec) GetNodeName() string {
	if x != nil {
		return x.NodeName
	}
	return ""
}

func (x *LogMetadataSpec) GetNamespace() string {
	if x != nil {
		return x.Namespace
	}
	return ""
}

func (x *LogMetadataSpec) GetPodName() string {
	if x != nil {
		return x.PodName
	}
	return ""
}

func (x *LogMetadataSpec) GetContainerName() string {
	if x != nil {
		return x.ContainerName
	}
	return ""
}

func (x *LogMetadataSpec) GetContainerID() string {
	if x != nil {
		return x.ContainerID
	}
	return ""
}

type LogMetadataFileInfo struct {
	Size           int64     `protobuf:"varint,1,opt,name=size,proto3" json:"size,omitempty"`
	LastModifiedAt time.Time `protobuf:"bytes,2,opt,name=last_modified_at,json=lastModifiedAt,proto3" json:"last_modified_at,omitempty"`
}

func (x *LogMetadataFileInfo) Reset()         { *x = LogMetadataFileInfo{} }
func (x *LogMetadataFileInfo) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadataFileInfo) ProtoMessage()    {}

func (x *LogMetadataFileInfo) GetSize() int64 {
	if x != nil {
		return x.Size
	}
	return 0
}

func (x *LogMetadataFileInfo) GetLastModifiedAt() time.Time {
	if x != nil {
		return x.LastModifiedAt
	}
	return time.Time{}
}

type LogMetadata struct {
	ID       string               `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Spec     *LogMetadataSpec     `protobuf:"bytes,2,opt,name=spec,proto3" json:"spec,omitempty"`
	FileInfo *LogMetadataFileInfo `protobuf:"bytes,3,opt,name=file_info,json=fileInfo,proto3" json:"file_info,omitempty"`
}

func (x *LogMetadata) Reset()         { *x = LogMetadata{} }
func (x *LogMetadata) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogMetadata) ProtoMessage()    {}

func (x *LogMetadata) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

func (x *LogMetadata) GetSpec() *LogMetadataSpec {
	if x != nil {
		return x.Spec
	}
	return nil
}

func (x *LogMetadata) GetFileInfo() *LogMetadataFileInfo {
	if x != nil {
		return x.FileInfo
	}
	return nil
}

type LogRecordsStreamRequest struct {
	PodName       string     `protobuf:"bytes,1,opt,name=pod_name,json=podName,proto3" json:"pod_name,omitempty"`
	Namespace     string     `protobuf:"bytes,2,opt,name=namespace,proto3" json:"namespace,omitempty"`
	ContainerName string     `protobuf:"bytes,3,opt,name=container_name,json=containerName,proto3" json:"container_name,omitempty"`
	ContainerID   string     `protobuf:"bytes,4,opt,name=container_id,json=containerId,proto3" json:"container_id,omitempty"`
	StartTime     string     `protobuf:"bytes,5,opt,name=start_time,json=startTime,proto3" json:"start_time,omitempty"`
	StopTime      string     `protobuf:"bytes,6,opt,name=stop_time,json=stopTime,proto3" json:"stop_time,omitempty"`
	Grep          string     `protobuf:"bytes,7,opt,name=grep,proto3" json:"grep,omitempty"`
	FollowFrom    FollowFrom `protobuf:"varint,8,opt,name=follow_from,json=followFrom,proto3,enum=clusteragent.v1.FollowFrom" json:"follow_from,omitempty"`
}

func (x *LogRecordsStreamRequest) Reset()         { *x = LogRecordsStreamRequest{} }
func (x *LogRecordsStreamRequest) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogRecordsStreamRequest) ProtoMessage()    {}

func (x *LogRecordsStreamRequest) GetPodName() string {
	if x != nil {
		return x.PodName
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetNamespace() string {
	if x != nil {
		return x.Namespace
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetContainerName() string {
	if x != nil {
		return x.ContainerName
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetContainerID() string {
	if x != nil {
		return x.ContainerID
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetStartTime() string {
	if x != nil {
		return x.StartTime
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetStopTime() string {
	if x != nil {
		return x.StopTime
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetGrep() string {
	if x != nil {
		return x.Grep
	}
	return ""
}

func (x *LogRecordsStreamRequest) GetFollowFrom() FollowFrom {
	if x != nil {
		return x.FollowFrom
	}
	return FollowFrom_NOOP
}

type LogRecord struct {
	Timestamp         time.Time `protobuf:"bytes,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Message           string    `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	OriginalSizeBytes uint64    `protobuf:"varint,3,opt,name=original_size_bytes,json=originalSizeBytes,proto3" json:"original_size_bytes,omitempty"`
	IsTruncated       bool      `protobuf:"varint,4,opt,name=is_truncated,json=isTruncated,proto3" json:"is_truncated,omitempty"`
}

func (x *LogRecord) Reset()         { *x = LogRecord{} }
func (x *LogRecord) String() string { return fmt.Sprintf("%+v", *x) }
func (*LogRecord) ProtoMessage()    {}

func (x *LogRecord) GetTimestamp() time.Time {
	if x != nil {
		return x.Timestamp
	}
	return time.Time{}
}

func (x *LogRecord) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *LogRecord) GetOriginalSizeBytes() uint64 {
	if x != nil {
		return x.OriginalSizeBytes
	}
	return 0
}

func (x *LogRecord) GetIsTruncated() bool {
	if x != nil {
		return x.IsTruncated
	}
	return false
}
