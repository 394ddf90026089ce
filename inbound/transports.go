// Package inbound hosts the surfaces agents connect through: a
// line-delimited stdio loop and a small HTTP server. Both expose the same
// tool registry.
package inbound

import (
	"fmt"
	"sort"
	"strings"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// transportAliases folds the historical transport spellings onto the two
// surfaces actually served.
var transportAliases = map[string]string{
	TransportStdio:    TransportStdio,
	TransportHTTP:     TransportHTTP,
	"sse":             TransportHTTP,
	"streamable-http": TransportHTTP,
}

// ResolveTransport validates a configured transport name and returns the
// canonical surface it maps to.
func ResolveTransport(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := transportAliases[name]; ok {
		return resolved, nil
	}

	valid := make([]string, 0, len(transportAliases))
	for alias := range transportAliases {
		valid = append(valid, alias)
	}
	sort.Strings(valid)
	return "", fmt.Errorf(
		"inbound: invalid transport %q (valid: %s)",
		name,
		strings.Join(valid, ", "),
	)
}
