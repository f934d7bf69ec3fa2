// Package catalog owns fee definitions and class offerings.
//
// Fee amounts here are the source of truth only until issuance: the
// billing module snapshots amount and currency onto each invoice, so
// editing a fee never rewrites history.
package catalog
