package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrPersonNotFound is returned when a referenced user does not exist.
	ErrPersonNotFound = errors.New("directory: person not found")
	// ErrNoGuardian is returned when a student has no linked guardian.
	ErrNoGuardian = errors.New("directory: student has no guardian")
)

// Person is the minimal identity projection the pipeline needs:
// enough to address a notification and label a document.
type Person struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Resolver looks up people in the school's identity system. The real
// implementation lives with the account/session collaborator; this
// package only defines the consumed surface plus an in-memory resolver
// for development and tests.
type Resolver interface {
	// Student resolves a student by id.
	Student(ctx context.Context, id uuid.UUID) (Person, error)

	// Guardian resolves the guardian responsible for a student's billing.
	Guardian(ctx context.Context, studentID uuid.UUID) (Person, error)
}

// MemoryResolver is an in-memory Resolver implementation.
type MemoryResolver struct {
	mu        sync.RWMutex
	students  map[uuid.UUID]Person
	guardians map[uuid.UUID]Person // studentID -> guardian
}

// NewMemoryResolver creates an empty in-memory resolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		students:  make(map[uuid.UUID]Person),
		guardians: make(map[uuid.UUID]Person),
	}
}

// AddStudent registers a student, optionally with a guardian.
func (r *MemoryResolver) AddStudent(student Person, guardian *Person) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.students[student.ID] = student
	if guardian != nil {
		r.guardians[student.ID] = *guardian
	}
}

func (r *MemoryResolver) Student(ctx context.Context, id uuid.UUID) (Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.students[id]
	if !ok {
		return Person{}, ErrPersonNotFound
	}
	return p, nil
}

func (r *MemoryResolver) Guardian(ctx context.Context, studentID uuid.UUID) (Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.students[studentID]; !ok {
		return Person{}, ErrPersonNotFound
	}
	g, ok := r.guardians[studentID]
	if !ok {
		return Person{}, ErrNoGuardian
	}
	return g, nil
}
