package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/storage"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

const sessionContextKey = "session"

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ListenAddress   string
	StaticDir       string
	DefaultPageSize int
	Storage         Storage
	BackendFactory  BackendFactory
	GeneralHandler  func(http.Handler) http.Handler
}

type server struct {
	router          *gin.Engine
	httpServer      *http.Server
	storage         Storage
	backendFactory  BackendFactory
	listenAddr      string
	staticDir       string
	defaultPageSize int
	generalHandler  func(http.Handler) http.Handler
	wg              sync.WaitGroup
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Storage) {
		return nil, errors.New("storage is required")
	}
	if args.BackendFactory == nil {
		return nil, errors.New("nil backend factory")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}
	if args.DefaultPageSize <= 0 {
		return nil, errors.New("invalid default page size")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:          router,
		storage:         args.Storage,
		backendFactory:  args.BackendFactory,
		listenAddr:      args.ListenAddress,
		staticDir:       args.StaticDir,
		defaultPageSize: args.DefaultPageSize,
		generalHandler:  args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/verify", s.handleVerify)

	protected := api.Group("/")
	protected.Use(s.authSession())
	{
		protected.POST("/auth/logout", s.handleLogout)

		protected.GET("/clients", s.handleGetClients)
		protected.POST("/clients", s.handleCreateClient)
		protected.GET("/clients/:id", s.handleGetClient)
		protected.PUT("/clients/:id", s.handleUpdateClient)
		protected.DELETE("/clients/:id", s.handleDeleteClient)
		protected.POST("/clients/:id/password", s.handleChangePassword)

		protected.GET("/data-types", s.handleGetDataTypes)
		protected.POST("/data-types", s.handleAddDataType)
		protected.GET("/clients/:id/data/:date", s.handleGetDataByDate)
		protected.GET("/clients/:id/last-data", s.handleGetLastData)
		protected.POST("/clients/:id/data", s.handleRecordData)

		protected.GET("/clients/:id/analysis", s.handleAnalysis)
		protected.GET("/alerts", s.handleAlerts)
		protected.GET("/dashboard/stats", s.handleStats)
	}

	// Serve static files from the frontend build if configured
	if s.staticDir != "" {
		log.Info("serving static files", "dir", s.staticDir)
		s.router.Static("/static", path.Join(s.staticDir, "static"))
		s.router.StaticFile("/favicon.ico", path.Join(s.staticDir, "favicon.ico"))

		// NoRoute for SPA fallback
		s.router.NoRoute(func(c *gin.Context) {
			// If request is for an /api route that doesn't exist, return 404
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "api route not found"})
				return
			}
			// Otherwise serve index.html for CSR
			c.File(path.Join(s.staticDir, "index.html"))
		})
	}
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return s.storage.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *server) IsInterfaceNil() bool {
	return s == nil
}

// --- Middlewares ---

func (s *server) authSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := s.storage.GetSession(c.Request.Context(), token)
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func (s *server) sessionOf(c *gin.Context) common.Session {
	value, _ := c.Get(sessionContextKey)
	session, _ := value.(common.Session)

	return session
}

// backendFor builds a backend client bound to the request's session. A 401
// from the health backend invalidates the dashboard session so the next
// request is forced back to login.
func (s *server) backendFor(session common.Session) (Backend, error) {
	return s.backendFactory(session.BackendToken, func() {
		err := s.storage.DeleteSession(context.Background(), session.Token)
		if err != nil {
			log.Warn("failed to invalidate session after backend 401", "error", err)
			return
		}
		log.Debug("session invalidated after backend 401", "username", session.Username)
	})
}

// CORSMiddleware allows the SPA dev server to call the API from another origin
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
