// Package config loads cluster-agent's configuration from an optional
// YAML file, environment variables, and explicitly set CLI flags, in that
// order of increasing precedence, with flag defaults used for any key none
// of them sets — viper's own layered-override model.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/grpc/codes"

	"github.com/kubetail-org/kubetail/internal/clusteragent/authcache"
	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// envPrefix namespaces every environment variable this package reads,
// except NODE_NAME, which is read verbatim from the downward API.
const envPrefix = "CLUSTER_AGENT"

// Config is cluster-agent's fully-resolved runtime configuration.
type Config struct {
	NodeName          string
	ListenAddress     string
	LogsDir           string
	LogFormat         string
	LogLevel          string
	TLSCertFile       string
	TLSKeyFile        string
	TLSClientCAFile   string
	AuthCacheTTL      time.Duration
	AuthCacheCapacity int
	TruncateAtBytes   int
}

// BindFlags registers every configurable flag on flags, to be called
// before pflag.Parse.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML configuration file")
	flags.String("listen-address", ":50051", "address the gRPC server listens on")
	flags.String("logs-dir", "/var/log/containers", "directory containing container log files")
	flags.String("log-format", "text", "log output format: text or json")
	flags.String("log-level", "info", "log level")
	flags.String("tls-cert-file", "", "server TLS certificate file")
	flags.String("tls-key-file", "", "server TLS key file")
	flags.String("tls-client-ca-file", "", "optional client CA bundle enabling mutual TLS")
	flags.Duration("auth-cache-ttl", authcache.DefaultTTL, "authorization cache entry TTL")
	flags.Int("auth-cache-capacity", authcache.DefaultCapacity, "authorization cache max entries")
	flags.Int("truncate-at-bytes", 0, "truncate log records longer than this many bytes (0 disables truncation)")
}

// Load resolves a Config from flags, an optional config file named by
// the "config" flag, and CLUSTER_AGENT_-prefixed environment variables.
// An unsupported config file extension yields a *streamutil.StatusError
// carrying codes.NotFound.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if configFile, _ := flags.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var unsupported viper.UnsupportedConfigError
			if errors.As(err, &unsupported) {
				return nil, streamutil.NewStatusError(codes.NotFound, "unsupported config file extension: %s", configFile)
			}
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	return &Config{
		NodeName:          os.Getenv("NODE_NAME"),
		ListenAddress:     v.GetString("listen-address"),
		LogsDir:           v.GetString("logs-dir"),
		LogFormat:         v.GetString("log-format"),
		LogLevel:          v.GetString("log-level"),
		TLSCertFile:       v.GetString("tls-cert-file"),
		TLSKeyFile:        v.GetString("tls-key-file"),
		TLSClientCAFile:   v.GetString("tls-client-ca-file"),
		AuthCacheTTL:      v.GetDuration("auth-cache-ttl"),
		AuthCacheCapacity: v.GetInt("auth-cache-capacity"),
		TruncateAtBytes:   v.GetInt("truncate-at-bytes"),
	}, nil
}
