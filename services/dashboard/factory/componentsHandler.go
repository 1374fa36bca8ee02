package factory

import (
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/api"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/backend"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/config"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/storage"
)

type componentsHandler struct {
	store  api.Storage
	server Server
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(backendBaseURL string, cfg config.Config) (*componentsHandler, error) {
	cleanupInterval := time.Second * time.Duration(cfg.SessionCleanupIntervalInSeconds)
	store, err := storage.NewSQLiteStorage(cfg.SQLitePath, cfg.SessionRetentionSeconds, cleanupInterval)
	if err != nil {
		return nil, err
	}

	backendTimeout := time.Second * time.Duration(cfg.BackendTimeoutInSeconds)
	backendFactory := func(bearerToken string, onUnauthorized func()) (api.Backend, error) {
		return backend.NewClient(backend.ArgsClient{
			BaseURL:        backendBaseURL,
			Timeout:        backendTimeout,
			BearerToken:    bearerToken,
			OnUnauthorized: onUnauthorized,
		})
	}

	serverArgs := api.ArgsWebServer{
		ListenAddress:   cfg.ListenAddress,
		StaticDir:       cfg.StaticDir,
		DefaultPageSize: cfg.DefaultPageSize,
		Storage:         store,
		BackendFactory:  backendFactory,
		GeneralHandler:  api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		store:  store,
		server: server,
	}, nil
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
	_ = ch.store.Close()
}
