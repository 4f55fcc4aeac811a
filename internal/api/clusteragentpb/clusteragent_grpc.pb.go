package clusteragentpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	LogMetadataService_List_FullMethodName  = "/clusteragent.v1.LogMetadataService/List"
	LogMetadataService_Watch_FullMethodName = "/clusteragent.v1.LogMetadataService/Watch"

	LogRecordsService_StreamForward_FullMethodName  = "/clusteragent.v1.LogRecordsService/StreamForward"
	LogRecordsService_StreamBackward_FullMethodName = "/clusteragent.v1.LogRecordsService/StreamBackward"
)

// LogMetadataServiceClient is the client API for LogMetadataService.
type LogMetadataServiceClient interface {
	List(ctx context.Context, in *LogMetadataListRequest, opts ...grpc.CallOption) (*LogMetadataList, error)
	Watch(ctx context.Context, in *LogMetadataWatchRequest, opts ...grpc.CallOption) (LogMetadataService_WatchClient, error)
}

type logMetadataServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLogMetadataServiceClient(cc grpc.ClientConnInterface) LogMetadataServiceClient {
	return &logMetadataServiceClient{cc}
}

func (c *logMetadataServiceClient) List(ctx context.Context, in *LogMetadataListRequest, opts ...grpc.CallOption) (*LogMetadataList, error) {
	out := new(LogMetadataList)
	if err := c.cc.Invoke(ctx, LogMetadataService_List_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *logMetadataServiceClient) Watch(ctx context.Context, in *LogMetadataWatchRequest, opts ...grpc.CallOption) (LogMetadataService_WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &LogMetadataService_ServiceDesc.Streams[0], LogMetadataService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &logMetadataServiceWatchClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type LogMetadataService_WatchClient interface {
	Recv() (*LogMetadataWatchEvent, error)
	grpc.ClientStream
}

type logMetadataServiceWatchClient struct {
	grpc.ClientStream
}

func (x *logMetadataServiceWatchClient) Recv() (*LogMetadataWatchEvent, error) {
	m := new(LogMetadataWatchEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LogMetadataServiceServer is the server API for LogMetadataService.
type LogMetadataServiceServer interface {
	List(context.Context, *LogMetadataListRequest) (*LogMetadataList, error)
	Watch(*LogMetadataWatchRequest, LogMetadataService_WatchServer) error
	mustEmbedUnimplementedLogMetadataServiceServer()
}

// UnimplementedLogMetadataServiceServer must be embedded by every
// implementation for forward compatibility.
type UnimplementedLogMetadataServiceServer struct{}

func (UnimplementedLogMetadataServiceServer) List(context.Context, *LogMetadataListRequest) (*LogMetadataList, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedLogMetadataServiceServer) Watch(*LogMetadataWatchRequest, LogMetadataService_WatchServer) error {
	return status.Errorf(codes.Unimplemented, "method Watch not implemented")
}

func (UnimplementedLogMetadataServiceServer) mustEmbedUnimplementedLogMetadataServiceServer() {}

func RegisterLogMetadataServiceServer(s grpc.ServiceRegistrar, srv LogMetadataServiceServer) {
	s.RegisterService(&LogMetadataService_ServiceDesc, srv)
}

func _LogMetadataService_List_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LogMetadataListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LogMetadataServiceServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LogMetadataService_List_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LogMetadataServiceServer).List(ctx, req.(*LogMetadataListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LogMetadataService_Watch_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(LogMetadataWatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(LogMetadataServiceServer).Watch(m, &logMetadataServiceWatchServer{stream})
}

type LogMetadataService_WatchServer interface {
	Send(*LogMetadataWatchEvent) error
	grpc.ServerStream
}

type logMetadataServiceWatchServer struct {
	grpc.ServerStream
}

func (x *logMetadataServiceWatchServer) Send(m *LogMetadataWatchEvent) error {
	return x.ServerStream.SendMsg(m)
}

var LogMetadataService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "clusteragent.v1.LogMetadataService",
	HandlerType: (*LogMetadataServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: _LogMetadataService_List_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Watch", Handler: _LogMetadataService_Watch_Handler, ServerStreams: true},
	},
	Metadata: "clusteragent/v1/clusteragent.proto",
}

// LogRecordsServiceClient is the client API for LogRecordsService.
type LogRecordsServiceClient interface {
	StreamForward(ctx context.Context, in *LogRecordsStreamRequest, opts ...grpc.CallOption) (LogRecordsService_StreamForwardClient, error)
	StreamBackward(ctx context.Context, in *LogRecordsStreamRequest, opts ...grpc.CallOption) (LogRecordsService_StreamBackwardClient, error)
}

type logRecordsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLogRecordsServiceClient(cc grpc.ClientConnInterface) LogRecordsServiceClient {
	return &logRecordsServiceClient{cc}
}

func (c *logRecordsServiceClient) StreamForward(ctx context.Context, in *LogRecordsStreamRequest, opts ...grpc.CallOption) (LogRecordsService_StreamForwardClient, error) {
	stream, err := c.cc.NewStream(ctx, &LogRecordsService_ServiceDesc.Streams[0], LogRecordsService_StreamForward_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &logRecordsServiceStreamForwardClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type LogRecordsService_StreamForwardClient interface {
	Recv() (*LogRecord, error)
	grpc.ClientStream
}

type logRecordsServiceStreamForwardClient struct {
	grpc.ClientStream
}

func (x *logRecordsServiceStreamForwardClient) Recv() (*LogRecord, error) {
	m := new(LogRecord)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *logRecordsServiceClient) StreamBackward(ctx context.Context, in *LogRecordsStreamRequest, opts ...grpc.CallOption) (LogRecordsService_StreamBackwardClient, error) {
	stream, err := c.cc.NewStream(ctx, &LogRecordsService_ServiceDesc.Streams[1], LogRecordsService_StreamBackward_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &logRecordsServiceStreamBackwardClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type LogRecordsService_StreamBackwardClient interface {
	Recv() (*LogRecord, error)
	grpc.ClientStream
}

type logRecordsServiceStreamBackwardClient struct {
	grpc.ClientStream
}

func (x *logRecordsServiceStreamBackwardClient) Recv() (*LogRecord, error) {
	m := new(LogRecord)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LogRecordsServiceServer is the server API for LogRecordsService.
type LogRecordsServiceServer interface {
	StreamForward(*LogRecordsStreamRequest, LogRecordsService_StreamForwardServer) error
	StreamBackward(*LogRecordsStreamRequest, LogRecordsService_StreamBackwardServer) error
	mustEmbedUnimplementedLogRecordsServiceServer()
}

type UnimplementedLogRecordsServiceServer struct{}

func (UnimplementedLogRecordsServiceServer) StreamForward(*LogRecordsStreamRequest, LogRecordsService_StreamForwardServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamForward not implemented")
}

func (UnimplementedLogRecordsServiceServer) StreamBackward(*LogRecordsStreamRequest, LogRecordsService_StreamBackwardServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamBackward not implemented")
}

func (UnimplementedLogRecordsServiceServer) mustEmbedUnimplementedLogRecordsServiceServer() {}

func RegisterLogRecordsServiceServer(s grpc.ServiceRegistrar, srv LogRecordsServiceServer) {
	s.RegisterService(&LogRecordsService_ServiceDesc, srv)
}

func _LogRecordsService_StreamForward_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(LogRecordsStreamRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(LogRecordsServiceServer).StreamForward(m, &logRecordsServiceStreamForwardServer{stream})
}

type LogRecordsService_StreamForwardServer interface {
	Send(*LogRecord) error
	grpc.ServerStream
}

type logRecordsServiceStreamForwardServer struct {
	grpc.ServerStream
}

func (x *logRecordsServiceStreamForwardServer) Send(m *LogRecord) error {
	return x.ServerStream.SendMsg(m)
}

func _LogRecordsService_StreamBackward_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(LogRecordsStreamRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(LogRecordsServiceServer).StreamBackward(m, &logRecordsServiceStreamBackwardServer{stream})
}

type LogRecordsService_StreamBackwardServer interface {
	Send(*LogRecord) error
	grpc.ServerStream
}

type logRecordsServiceStreamBackwardServer struct {
	grpc.ServerStream
}

func (x *logRecordsServiceStreamBackwardServer) Send(m *LogRecord) error {
	return x.ServerStream.SendMsg(m)
}

var LogRecordsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "clusteragent.v1.LogRecordsService",
	HandlerType: (*LogRecordsServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamForward", Handler: _LogRecordsService_StreamForward_Handler, ServerStreams: true},
		{StreamName: "StreamBackward", Handler: _LogRecordsService_StreamBackward_Handler, ServerStreams: true},
	},
	Metadata: "clusteragent/v1/clusteragent.proto",
}
