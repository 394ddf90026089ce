// Package toolkit exposes the resource catalog as named, schema-described
// tools an agent framework can enumerate and invoke.
package toolkit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Tool is one callable operation: a name, a human description, a JSON
// schema for its parameters, and a handler.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	RequiredParameters() []string
	Execute(ctx context.Context, args map[string]any) (any, error)
}

type funcTool struct {
	name        string
	description string
	parameters  map[string]any
	required    []string
	handler     func(ctx context.Context, args map[string]any) (any, error)
}

func (t *funcTool) Name() string                 { return t.name }
func (t *funcTool) Description() string          { return t.description }
func (t *funcTool) Parameters() map[string]any   { return t.parameters }
func (t *funcTool) RequiredParameters() []string { return t.required }

func (t *funcTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.handler(ctx, args)
}

// Registry manages the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("toolkit: tool is required")
	}
	name := strings.TrimSpace(tool.Name())
	if name == "" {
		return fmt.Errorf("toolkit: tool name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("toolkit: tool %q already registered", name)
	}
	r.tools[name] = tool
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[strings.TrimSpace(name)]
	return tool, exists
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name() < tools[j].Name()
	})
	return tools
}

// Specs returns the catalog as JSON-schema tool specifications.
func (r *Registry) Specs() []map[string]any {
	tools := r.List()
	specs := make([]map[string]any, len(tools))
	for i, tool := range tools {
		required := tool.RequiredParameters()
		if required == nil {
			required = []string{}
		}
		specs[i] = map[string]any{
			"name":        tool.Name(),
			"description": tool.Description(),
			"parameters": map[string]any{
				"type":       "object",
				"properties": tool.Parameters(),
				"required":   required,
			},
		}
	}
	return specs
}

// Invoke looks up a tool by name and executes it.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, exists := r.Get(name)
	if !exists {
		return nil, fmt.Errorf("toolkit: unknown tool %q", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Execute(ctx, args)
}
