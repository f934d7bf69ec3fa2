// Package pg provides PostgreSQL connection pooling for the
// pgx-backed storage implementations (enrollments, invoices, fee
// catalog, notification inbox).
package pg
