package ticket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyTitle is returned when a ticket title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a ticket title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrEmptyMessage is returned when a comment message is blank.
	ErrEmptyMessage = errors.New("comment message cannot be empty")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrAlreadyClosed is returned when closing a ticket that is already closed.
	ErrAlreadyClosed = errors.New("ticket is already closed")

	// ErrTicketNotFound is returned when no ticket with the given ID exists.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrNoTicketStore is returned when the ticket directory does not exist.
	// Run "ticket init" to create it.
	ErrNoTicketStore = errors.New("no ticket store found (run \"ticket init\")")
)

// DocumentError reports a stored document that could not be parsed or that
// violates a document invariant. Path is empty when the document did not come
// from disk.
type DocumentError struct {
	Path   string
	Reason string
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid ticket document: %s", e.Reason)
	}
	return fmt.Sprintf("invalid ticket document %s: %s", e.Path, e.Reason)
}

func documentErrorf(format string, args ...any) error {
	return &DocumentError{Reason: fmt.Sprintf(format, args...)}
}

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateTicket checks the invariants every in-memory ticket must satisfy.
// Parse applies the same checks to documents read from disk.
func ValidateTicket(t *Ticket) error {
	if t.ID == uuid.Nil {
		return documentErrorf("missing id")
	}
	if t.Title == "" {
		return documentErrorf("missing title")
	}
	if len(t.Title) > MaxTitleLength {
		return documentErrorf("title exceeds %d characters", MaxTitleLength)
	}
	if !t.Status.IsValid() {
		return documentErrorf("unknown status %q", t.Status)
	}
	if t.Version != CurrentVersion {
		return documentErrorf("unexpected version %q", t.Version)
	}

	seen := make(map[uuid.UUID]struct{}, len(t.Assignees))
	for _, a := range t.Assignees {
		if a.ID == uuid.Nil {
			return documentErrorf("assignee %q has no id", a.Name)
		}
		if _, ok := seen[a.ID]; ok {
			return documentErrorf("duplicate assignee id %s", a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	for i, c := range t.Comments {
		if c.ID == uuid.Nil {
			return documentErrorf("comment %d has no id", i)
		}
		if c.Message == "" {
			return documentErrorf("comment %d has no message", i)
		}
		if i > 0 && c.CreatedAt.Before(t.Comments[i-1].CreatedAt) {
			return documentErrorf("comment %d is out of order: %s is before %s",
				i, c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				t.Comments[i-1].CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	return nil
}
