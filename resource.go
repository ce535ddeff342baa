// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yosida95/uritemplate/v3"
)

// ReadResourceRequest is the request handed to a resource handler.
type ReadResourceRequest struct {
	Params ReadResourceParams
}

// ResourceHandlerFunc serves the contents of a single registered resource.
type ResourceHandlerFunc func(ctx context.Context, req *ReadResourceRequest) ([]ResourceContents, error)

// ResourceTemplateHandlerFunc serves a resource resolved through a URI
// template; vars holds the expanded template variables.
type ResourceTemplateHandlerFunc func(ctx context.Context, uri string, vars map[string]string) ([]ResourceContents, error)

// resourceManager owns the resource side of the capability table. Like the
// tool table it is populated at startup and read-only afterwards, and lists
// in registration order.
type resourceManager struct {
	mu        sync.RWMutex
	order     []string
	resources map[string]*registeredResource
	templates []*registeredTemplate
	logger    Logger
}

type registeredResource struct {
	resource *Resource
	handler  ResourceHandlerFunc
}

type registeredTemplate struct {
	template *uritemplate.Template
	handler  ResourceTemplateHandlerFunc
}

func newResourceManager() *resourceManager {
	return &resourceManager{
		resources: make(map[string]*registeredResource),
		logger:    GetDefaultLogger(),
	}
}

func (m *resourceManager) withLogger(logger Logger) {
	m.logger = logger
}

func (m *resourceManager) registerResource(resource *Resource, handler ResourceHandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.resources[resource.URI]; !exists {
		m.order = append(m.order, resource.URI)
	}
	m.resources[resource.URI] = &registeredResource{resource: resource, handler: handler}
}

// registerTemplate registers a URI template handler, e.g. leptos-docs://{section}.
func (m *resourceManager) registerTemplate(raw string, handler ResourceTemplateHandlerFunc) error {
	template, err := uritemplate.New(raw)
	if err != nil {
		return fmt.Errorf("invalid resource template %q: %w", raw, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = append(m.templates, &registeredTemplate{template: template, handler: handler})
	return nil
}

func (m *resourceManager) listResources() []Resource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resources := make([]Resource, 0, len(m.order))
	for _, uri := range m.order {
		resources = append(resources, *m.resources[uri].resource)
	}
	return resources
}

func (m *resourceManager) hasResources() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.resources) > 0 || len(m.templates) > 0
}

// matchTemplate attempts to resolve a URI against registered templates.
func (m *resourceManager) matchTemplate(uri string) (*registeredTemplate, map[string]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.templates {
		values := entry.template.Match(uri)
		if len(values) > 0 {
			vars := make(map[string]string, len(values))
			for key, value := range values {
				vars[key] = value.String()
			}
			return entry, vars, true
		}
	}
	return nil, nil, false
}

func (m *resourceManager) handleListResources(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	return newJSONRPCResponse(req.ID, &ListResourcesResult{Resources: m.listResources()})
}

func (m *resourceManager) handleReadResource(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	if len(req.Params) == 0 || string(req.Params) == "null" {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, "Missing params", nil)
	}

	var params ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, "Missing resource URI", nil)
	}

	m.mu.RLock()
	entry, exists := m.resources[params.URI]
	m.mu.RUnlock()

	var contents []ResourceContents
	var err error
	switch {
	case exists:
		contents, err = entry.handler(ctx, &ReadResourceRequest{Params: params})
	default:
		template, vars, ok := m.matchTemplate(params.URI)
		if !ok {
			return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest,
				fmt.Sprintf("Unknown resource: %s", params.URI), nil)
		}
		contents, err = template.handler(ctx, params.URI, vars)
	}
	if err != nil {
		m.logger.Warnf("Resource %s read failed: %v", params.URI, err)
		return newJSONRPCErrorResponse(req.ID, ErrCodeInternal, err.Error(), nil)
	}

	return newJSONRPCResponse(req.ID, &ReadResourceResult{Contents: contents})
}
