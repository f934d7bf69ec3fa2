// Package core holds the HTTP error taxonomy and JSON response helpers
// shared by the module routers. Domain packages define their own
// sentinel errors; routers translate them to core.HTTPError values at
// the edge.
package core
