package toolkit

import (
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/resources"
)

func requireStringArg(args map[string]any, key string) (string, error) {
	value, err := stringArg(args, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("toolkit: argument %q is required", key)
	}
	return value, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("toolkit: argument %q must be a string", key)
	}
	return strings.TrimSpace(value), nil
}

func boolArg(args map[string]any, key string) (bool, error) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("toolkit: argument %q must be a boolean", key)
	}
	return value, nil
}

// intArg tolerates the float64 JSON decoding produces for numbers.
func intArg(args map[string]any, key string) (int64, error) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return 0, nil
	}
	switch value := raw.(type) {
	case float64:
		return int64(value), nil
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	default:
		return 0, fmt.Errorf("toolkit: argument %q must be a number", key)
	}
}

func paramsArg(args map[string]any, key string) (core.Params, error) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return nil, nil
	}
	value, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("toolkit: argument %q must be an object", key)
	}
	return core.NewParams(value), nil
}

// stringSliceArg accepts either a JSON array of strings or a single
// comma-separated string.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	raw, exists := args[key]
	if !exists || raw == nil {
		return nil, nil
	}
	switch value := raw.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return nil, nil
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("toolkit: argument %q must contain strings", key)
			}
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, text)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("toolkit: argument %q must be an array of strings", key)
	}
}

func pageQueryArg(args map[string]any) (resources.PageQuery, error) {
	pageSize, err := intArg(args, "page_size")
	if err != nil {
		return resources.PageQuery{}, err
	}
	page, err := intArg(args, "page")
	if err != nil {
		return resources.PageQuery{}, err
	}
	textSearch, err := stringArg(args, "text_search")
	if err != nil {
		return resources.PageQuery{}, err
	}
	sortProperty, err := stringArg(args, "sort_property")
	if err != nil {
		return resources.PageQuery{}, err
	}
	sortOrder, err := stringArg(args, "sort_order")
	if err != nil {
		return resources.PageQuery{}, err
	}
	return resources.PageQuery{
		PageSize:     int(pageSize),
		Page:         int(page),
		TextSearch:   textSearch,
		SortProperty: sortProperty,
		SortOrder:    sortOrder,
	}, nil
}

func pageParameterSchema() map[string]any {
	return map[string]any{
		"page_size":     map[string]any{"type": "integer", "description": "Maximum results per page (default 10)"},
		"page":          map[string]any{"type": "integer", "description": "Zero-based page index"},
		"text_search":   map[string]any{"type": "string", "description": "Case-insensitive substring filter"},
		"sort_property": map[string]any{"type": "string", "description": "Property to sort by"},
		"sort_order":    map[string]any{"type": "string", "description": "ASC or DESC"},
	}
}

func mergeSchemas(base map[string]any, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}
