// Package resources implements MCP resource handlers for the routing server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (route://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages routing resource endpoints.
type Handler struct {
	reg *registry.Registry
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{reg: reg}
}

// RegistryResource returns the MCP resource definition for the active
// registry.
func (h *Handler) RegistryResource() mcp.Resource {
	return mcp.NewResource(
		"route://registry",
		"Agent Registry",
		mcp.WithResourceDescription("The active domain taxonomy and agent roster the router classifies against"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRegistry returns the active registry as JSON in the same shape
// a registry file uses, so the output can be saved, edited, and loaded
// back via SWITCHBOARD_REGISTRY.
func (h *Handler) HandleRegistry(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snapshot := registry.File{
		Domains:     h.reg.Domains(),
		Agents:      h.reg.Agents(),
		Coordinator: h.reg.Coordinator().Name,
		Threshold:   h.reg.Threshold(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling registry: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
