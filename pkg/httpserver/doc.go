// Package httpserver provides an HTTP server with environment-driven
// configuration, OS signal handling, graceful shutdown, and probe
// handlers for liveness and readiness checks.
package httpserver
