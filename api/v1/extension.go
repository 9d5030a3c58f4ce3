// Package v1 holds the request/response types for the introspection HTTP
// surface: plain structs with JSON tags, with conversions named NewXFromY,
// hand-written rather than generated from a .yaml schema.
package v1

import (
	"time"

	"github.com/kubev2v/vehicle-runtime/internal/runtime"
	"github.com/kubev2v/vehicle-runtime/pkg/task"
)

// ModuleStatus is one entry in the GET /api/v1/modules response.
type ModuleStatus struct {
	Name            string   `json:"name"`
	State           string   `json:"state"`
	Dependencies    []string `json:"dependencies"`
	StartingAttempt int      `json:"startingAttempt"`
}

// NewModuleStatusFromInfo converts a runtime.ModuleInfo to the API type.
func NewModuleStatusFromInfo(info runtime.ModuleInfo) ModuleStatus {
	return ModuleStatus{
		Name:            info.Name,
		State:           info.State.String(),
		Dependencies:    info.Dependencies,
		StartingAttempt: info.StartingAttempt,
	}
}

// TaskStatus is one entry in the GET /api/v1/tasks response.
type TaskStatus struct {
	Name         string     `json:"name"`
	Owner        string     `json:"owner"`
	Period       int64      `json:"period"`
	Offset       int64      `json:"offset"`
	Active       bool       `json:"active"`
	LastOverrun  *time.Time `json:"lastOverrun,omitempty"`
}

// NewTaskStatusFromHandle converts a *task.Handle to the API type.
func NewTaskStatusFromHandle(h *task.Handle) TaskStatus {
	status := TaskStatus{
		Name:   h.Name,
		Owner:  h.Owner,
		Period: h.Period,
		Offset: h.Offset,
		Active: h.Active(),
	}
	if last := h.LastOverrun(); !last.IsZero() {
		status.LastOverrun = &last
	}
	return status
}

// ShutdownResponse acknowledges a POST /api/v1/shutdown request.
type ShutdownResponse struct {
	Accepted bool `json:"accepted"`
}
