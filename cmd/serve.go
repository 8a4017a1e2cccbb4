// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/debug"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/logger"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/repo"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/storage/backend"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/types"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/utils"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/web"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServeOpts holds all configuration for the delivery server
type ServeOpts struct {
	BindAddr  string // Address to bind the HTTP server (e.g., ":8080")
	DebugAddr string // Debug/metrics HTTP address
	DataPath  string // Base path for the default local backend
	Backend   string // ID of the backend to serve artifacts from
	Backends  []BackendOpts
}

// BackendOpts holds configuration for a storage backend
type BackendOpts struct {
	ID        string
	Type      types.StorageType
	Path      string // For local disk backends
	Endpoint  string // For S3/remote backends
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Enabled   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the artifact delivery server",
	Long: `Start the yum-repo-server HTTP server that delivers repository
artifacts with byte-range support and accepts uploads and deletes.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("bind_addr", ":8080", "Address to bind the HTTP server (host:port)")
	f.String("debug_addr", ":8010", "Debug/metrics HTTP address (host:port)")
	f.String("data_path", filepath.Join(os.TempDir(), "yum-repo-server"), "Base path for the default local backend")
	f.String("backend", "", "Backend ID to serve from (defaults to the first enabled backend)")

	viper.BindPFlags(f)
}

func runServe(cmd *cobra.Command, args []string) {
	utils.LoadConfiguration("yum-repo-server", false)
	opts := loadServeOpts(cmd)

	debug.SetNotReady()

	manager := backend.NewManager()
	defer manager.Close()

	serveID := configureBackends(manager, opts)

	store, ok := manager.Get(serveID)
	if !ok {
		logger.Fatal().Str("backend_id", serveID).Msg("serving backend not configured")
	}

	counters := repo.NewPrometheusSink(debug.Registry())
	svc := repo.NewDeliveryService(store, counters)

	mux := http.NewServeMux()
	web.NewServer(mux, svc)

	httpServer := startHTTPServer(mux, opts.BindAddr)
	debugServer := startHTTPServer(debug.GetMux(), opts.DebugAddr)

	debug.SetReady()
	logger.Info().
		Str("bind_addr", opts.BindAddr).
		Str("backend_id", serveID).
		Msg("yum-repo-server ready")

	waitForShutdown()

	debug.SetNotReady()
	httpServer.Shutdown(cmd.Context())
	debugServer.Shutdown(cmd.Context())
}

// configureBackends registers all configured backends with the manager and
// returns the ID of the backend to serve from. Falls back to a local
// backend under data_path when nothing is configured.
func configureBackends(manager *backend.Manager, opts ServeOpts) string {
	if len(opts.Backends) == 0 {
		const backendID = "local-default"
		if err := manager.Add(backendID, types.BackendConfig{
			Type: types.StorageTypeLocal,
			Path: opts.DataPath,
		}); err != nil {
			logger.Fatal().Err(err).Msg("failed to create default local backend")
		}
		logger.Info().Str("backend_id", backendID).Str("path", opts.DataPath).Msg("Using default local backend")
		return backendID
	}

	serveID := opts.Backend
	for _, b := range opts.Backends {
		if !b.Enabled {
			logger.Debug().Str("backend_id", b.ID).Msg("Skipping disabled backend")
			continue
		}

		cfg := types.BackendConfig{
			Type:      b.Type,
			Path:      b.Path,
			Endpoint:  b.Endpoint,
			Bucket:    b.Bucket,
			Region:    b.Region,
			AccessKey: b.AccessKey,
			SecretKey: b.SecretKey,
		}

		if err := manager.Add(b.ID, cfg); err != nil {
			logger.Fatal().Err(err).Str("backend_id", b.ID).Msg("failed to create backend")
		}

		if serveID == "" {
			serveID = b.ID
		}

		logger.Info().
			Str("backend_id", b.ID).
			Str("type", string(b.Type)).
			Msg("Configured storage backend")
	}

	if serveID == "" {
		logger.Fatal().Msg("no enabled backends configured")
	}
	return serveID
}

func loadServeOpts(cmd *cobra.Command) ServeOpts {
	f := NewFlagLoader(cmd)

	return ServeOpts{
		BindAddr:  f.String("bind_addr"),
		DebugAddr: f.String("debug_addr"),
		DataPath:  f.String("data_path"),
		Backend:   f.String("backend"),
		Backends:  loadBackendOpts(),
	}
}

// loadBackendOpts parses backend configuration from TOML [backends.*] sections
func loadBackendOpts() []BackendOpts {
	var backends []BackendOpts

	backendsMap := viper.GetStringMap("backends")
	if len(backendsMap) == 0 {
		return backends
	}

	for id := range backendsMap {
		prefix := "backends." + id + "."

		typeStr := viper.GetString(prefix + "type")
		storageType := types.StorageType(typeStr)
		if storageType == "" {
			storageType = types.StorageTypeLocal
		}

		b := BackendOpts{
			ID:        id,
			Type:      storageType,
			Path:      viper.GetString(prefix + "path"),
			Endpoint:  viper.GetString(prefix + "endpoint"),
			Bucket:    viper.GetString(prefix + "bucket"),
			Region:    viper.GetString(prefix + "region"),
			AccessKey: viper.GetString(prefix + "access_key"),
			SecretKey: viper.GetString(prefix + "secret_key"),
			Enabled:   viper.GetBool(prefix + "enabled"),
		}

		backends = append(backends, b)
		logger.Debug().
			Str("id", id).
			Str("type", typeStr).
			Bool("enabled", b.Enabled).
			Msg("Loaded backend configuration")
	}

	return backends
}

func startHTTPServer(handler http.Handler, addr string) *http.Server {
	httpServer := &http.Server{Addr: addr, Handler: handler}
	go func() {
		logger.Info().Str("http_addr", addr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start HTTP server")
		}
	}()
	return httpServer
}

func waitForShutdown() {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	<-stopChan
}
