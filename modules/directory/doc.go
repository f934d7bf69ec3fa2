// Package directory defines the identity lookups the billing and
// notification pipeline consumes from the accounts collaborator:
// resolving students and their guardians to addressable people.
package directory
