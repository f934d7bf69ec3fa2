package enrollment

import "errors"

var (
	// ErrNotFound is returned when a referenced enrollment does not exist.
	ErrNotFound = errors.New("enrollment: not found")
	// ErrStudentNotFound is returned by Submit for an unknown student.
	ErrStudentNotFound = errors.New("enrollment: student not found")
	// ErrClassNotFound is returned by Submit for an unknown class.
	ErrClassNotFound = errors.New("enrollment: class not found")
	// ErrAlreadySubmitted is returned by Submit when a pending
	// enrollment already exists for the (student, class) pair.
	ErrAlreadySubmitted = errors.New("enrollment: pending request already exists for this student and class")
	// ErrNotPending is returned by Approve for an enrollment that is not
	// pending; concurrent approvers lose the claim with this error.
	ErrNotPending = errors.New("enrollment: not in pending state")
	// ErrIssuanceFailed is returned when invoice issuance failed during
	// approval. The approval is rolled back: the enrollment stays
	// pending and no invoices remain.
	ErrIssuanceFailed = errors.New("enrollment: invoice issuance failed, approval rolled back")
)
