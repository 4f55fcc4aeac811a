// Command cluster-agent runs the per-node container-log agent: it
// exposes LogMetadataService and LogRecordsService over gRPC, backed by
// the log files under its configured logs directory.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"k8s.io/client-go/rest"

	"github.com/kubetail-org/kubetail/internal/api/clusteragentpb"
	"github.com/kubetail-org/kubetail/internal/clusteragent/authcache"
	"github.com/kubetail-org/kubetail/internal/config"
	clusterlogging "github.com/kubetail-org/kubetail/internal/logging"
	"github.com/kubetail-org/kubetail/internal/service"
	"github.com/kubetail-org/kubetail/internal/tlsutil"
)

func log() *logrus.Entry {
	return logrus.WithField("component", "main")
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log().WithError(err).Fatal("cluster-agent exited with an error")
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cluster-agent",
		Short: "Per-node container-log agent",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC log-metadata and log-records services",
		RunE:  runServe,
	}
	config.BindFlags(serve.Flags())

	root.AddCommand(serve)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := clusterlogging.Setup(cfg.LogFormat, cfg.LogLevel); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	logCtx := log().WithFields(logrus.Fields{
		"node_name":      cfg.NodeName,
		"listen_address": cfg.ListenAddress,
		"logs_dir":       cfg.LogsDir,
	})
	logCtx.Info("starting cluster-agent")

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return fmt.Errorf("loading in-cluster kubeconfig: %w", err)
	}

	authCache := authcache.NewCache(restConfig, cfg.AuthCacheTTL, cfg.AuthCacheCapacity)
	defer authCache.Close()

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.ListenAddress, err)
	}

	grpcServer, err := newGRPCServer(cfg, authCache)
	if err != nil {
		return fmt.Errorf("building gRPC server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logCtx.Info("shutting down")
		grpcServer.GracefulStop()
	}()

	logCtx.Info("listening")
	return grpcServer.Serve(lis)
}

func newGRPCServer(cfg *config.Config, authCache *authcache.Cache) (*grpc.Server, error) {
	creds := insecure.NewCredentials()
	if cfg.TLSCertFile != "" {
		tlsConfig, err := tlsutil.LoadServerConfig(tlsutil.ServerConfig{
			CertFile:     cfg.TLSCertFile,
			KeyFile:      cfg.TLSKeyFile,
			ClientCAFile: cfg.TLSClientCAFile,
		})
		if err != nil {
			return nil, fmt.Errorf("loading TLS configuration: %w", err)
		}
		creds = credentials.NewTLS(tlsConfig)
	}

	srv := grpc.NewServer(
		grpc.Creds(creds),
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(logrusLogger()),
			recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(logrusLogger()),
			recovery.StreamServerInterceptor(),
		),
	)

	clusteragentpb.RegisterLogMetadataServiceServer(srv, service.NewLogMetadataServer(cfg.LogsDir, cfg.NodeName, authCache))
	clusteragentpb.RegisterLogRecordsServiceServer(srv, service.NewLogRecordsServer(cfg.LogsDir, authCache, cfg.TruncateAtBytes))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, nil
}

// logrusLogger adapts this package's field-scoped logrus pattern
// (log().WithFields(...)) to go-grpc-middleware's per-request Logger
// interface.
func logrusLogger() logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		entry := log().WithField("component", "grpc")
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			entry = entry.WithField(key, fields[i+1])
		}

		switch lvl {
		case logging.LevelDebug:
			entry.Debug(msg)
		case logging.LevelWarn:
			entry.Warn(msg)
		case logging.LevelError:
			entry.Error(msg)
		default:
			entry.Info(msg)
		}
	})
}
