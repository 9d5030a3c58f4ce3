package introspect

import (
	"context"
	"net/http"
	"sync"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/vehicle-runtime/api/v1"
	"github.com/kubev2v/vehicle-runtime/internal/runtime"
)

// Server is the introspection HTTP server. It holds no state of its own
// beyond the controller it reflects, the http.Server it wraps, and whatever
// named operations modules have registered through RegisterOperation.
type Server struct {
	controller *runtime.Controller
	engine     *gin.Engine
	httpServer *http.Server
	auth       *authenticator

	mu         sync.Mutex
	operations map[string]func() (any, error)
}

// New builds a Server bound to addr, reflecting controller's module and
// task state. If jwtSecret is non-empty, POST /api/v1/shutdown requires a
// bearer JWT signed with it; otherwise the endpoint is open.
func New(addr string, controller *runtime.Controller, jwtSecret string) *Server {
	logger := zap.L().Named("introspect")

	engine := gin.New()
	engine.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(logger, true))

	s := &Server{
		controller: controller,
		engine:     engine,
		httpServer: &http.Server{Addr: addr, Handler: engine},
		operations: make(map[string]func() (any, error)),
	}
	if jwtSecret != "" {
		s.auth = newAuthenticator(jwtSecret)
	}

	group := engine.Group("/api/v1")
	group.GET("/modules", s.listModules)
	group.GET("/tasks", s.listTasks)
	group.POST("/shutdown", s.requireAuth, s.shutdown)
	group.POST("/operations/:name", s.invokeOperation)

	return s
}

// RegisterOperation exposes invoke under POST /api/v1/operations/name. A
// module wires this after constructing its channel.Operation, passing a
// closure that calls Invoke and unwraps the resulting future — e.g.
// dashboard's computeAverage. A second registration under the same name
// replaces the first.
func (s *Server) RegisterOperation(name string, invoke func() (any, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations[name] = invoke
}

// ListenAndServe starts serving, blocking until the server is shut down or
// fails to start.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the underlying http.Handler, for tests that want to
// drive requests without binding a real listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) listModules(c *gin.Context) {
	infos := s.controller.Modules()
	out := make([]v1.ModuleStatus, 0, len(infos))
	for _, info := range infos {
		out = append(out, v1.NewModuleStatusFromInfo(info))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listTasks(c *gin.Context) {
	handles := s.controller.Scheduler().Tasks()
	out := make([]v1.TaskStatus, 0, len(handles))
	for _, h := range handles {
		out = append(out, v1.NewTaskStatusFromHandle(h))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) shutdown(c *gin.Context) {
	s.controller.Shutdown()
	c.JSON(http.StatusAccepted, v1.ShutdownResponse{Accepted: true})
}

func (s *Server) invokeOperation(c *gin.Context) {
	name := c.Param("name")
	s.mu.Lock()
	invoke, ok := s.operations[name]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such operation: " + name})
		return
	}

	result, err := invoke()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) requireAuth(c *gin.Context) {
	if s.auth == nil {
		c.Next()
		return
	}
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" || !s.auth.valid(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}
	c.Next()
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}
