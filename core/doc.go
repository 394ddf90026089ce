// Package core implements the ThingsBoard request-dispatch runtime: a
// lazily-acquired bearer credential, a transport-backed request path, and a
// mutation gate that turns unconfirmed non-GET calls into confirmation
// descriptors instead of executing them.
package core
