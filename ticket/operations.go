package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The operations here are pure transformations: each takes a loaded ticket
// and returns the updated ticket, leaving persistence to the caller. The CLI
// and the TUI both run load -> transform -> Save around them.

// Close transitions a ticket from open to closed. The caller's Save then
// relocates the document into the closed partition.
func Close(t Ticket) (Ticket, error) {
	if t.Status == StatusClosed {
		return Ticket{}, fmt.Errorf("%w: %s", ErrAlreadyClosed, t.ID)
	}
	t.Status = StatusClosed
	return t, nil
}

// AddComment appends a comment to the ticket's thread. Comments are
// append-only; nothing ever reorders or removes them.
func AddComment(t Ticket, authorID uuid.UUID, authorName, message string, now time.Time) (Ticket, error) {
	if strings.TrimSpace(message) == "" {
		return Ticket{}, ErrEmptyMessage
	}

	id, err := NewID()
	if err != nil {
		return Ticket{}, fmt.Errorf("mint comment id: %w", err)
	}

	// Thread order is append order. Clamp against clock skew so the stored
	// created_at sequence stays monotonic.
	if last := len(t.Comments); last > 0 && now.Before(t.Comments[last-1].CreatedAt) {
		now = t.Comments[last-1].CreatedAt
	}

	comments := make([]Comment, len(t.Comments), len(t.Comments)+1)
	copy(comments, t.Comments)
	t.Comments = append(comments, Comment{
		ID:         id,
		AuthorID:   authorID,
		AuthorName: authorName,
		Message:    message,
		CreatedAt:  now,
	})
	return t, nil
}

// Assign adds an assignee to the ticket. Idempotent by assignee id: assigning
// someone who is already assigned is a no-op.
func Assign(t Ticket, assignee Assignee) Ticket {
	if t.HasAssignee(assignee.ID) {
		return t
	}
	assignees := make([]Assignee, len(t.Assignees), len(t.Assignees)+1)
	copy(assignees, t.Assignees)
	t.Assignees = append(assignees, assignee)
	return t
}
