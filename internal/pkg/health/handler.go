package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := BuildInfo{
		Version:     "development",
		GitCommit:   "unknown",
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}

	if version := os.Getenv("VERSION"); version != "" {
		info.Version = version
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		info.GitCommit = gitCommit
	}

	return func(c echo.Context) error {
		info.ServerTime = time.Now()
		return c.JSON(http.StatusOK, info)
	}
}

// RegisterHealthEndpoints wires the liveness endpoints into the router
func RegisterHealthEndpoints(e *echo.Echo, serviceName string) {
	ping := NewPingHandler(serviceName)
	e.GET("/health", ping)
	e.GET("/ping", ping)
}
