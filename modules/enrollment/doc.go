// Package enrollment governs a student's request to join a class:
// pending on submission, approved by an admin.
//
// Approval is the one mutual-exclusion boundary of the pipeline. The
// pending -> approved transition is claimed through a conditional
// storage update, so N concurrent approvals produce exactly one
// transition and exactly one invoice per attached fee; losers observe
// ErrNotPending. A failed issuance rolls the claim back - the
// enrollment is never left approved with missing invoices.
package enrollment
