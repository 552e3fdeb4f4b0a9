// Package ticket implements an in-repository issue tracker.
//
// Tickets are stored as TOML documents under .dev-suite/ticket inside the
// repository itself, partitioned into open/ and closed/ directories so the
// ticket history travels with the code history.
//
// The public API mirrors the CLI commands:
//   - NewTicket, Close, AddComment, Assign for ticket lifecycle
//   - Load, List for querying
//   - Migrate, MigrateAll for upgrading old document formats
package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a ticket.
type Status string

const (
	// StatusOpen indicates the ticket describes unresolved work.
	StatusOpen Status = "open"

	// StatusClosed indicates the ticket has been resolved.
	StatusClosed Status = "closed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusOpen, StatusClosed}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Version identifies which on-disk document format produced a ticket.
type Version string

const (
	// V0 is the original format: numbered slug filenames, an optional
	// bare-string assignee, and no comments. It carries no version tag.
	V0 Version = "v0"

	// V1 is the current format: uuid identifiers for tickets and
	// assignees, and a structured comment list.
	V1 Version = "v1"

	// CurrentVersion is the format written by Save.
	CurrentVersion = V1
)

// Ticket represents a single tracked unit of work.
//
// Field order here fixes the on-disk field order: serializing a parsed,
// unchanged ticket reproduces the document byte for byte, which keeps
// version-control diffs limited to real changes.
type Ticket struct {
	// ID is the unique identifier, minted once at creation. Time-ordered,
	// so sorting by ID yields creation order.
	ID uuid.UUID `toml:"id"`

	// Title is the short summary of the ticket.
	Title string `toml:"title"`

	// Description provides additional context. May be empty.
	Description string `toml:"description"`

	// Status is the current state of the ticket and determines which
	// partition directory holds its document.
	Status Status `toml:"status"`

	// Version tags the document format. Load-time concern only.
	Version Version `toml:"version"`

	// Assignees are the people responsible for the ticket, unique by ID.
	Assignees []Assignee `toml:"assignees,omitempty"`

	// Comments is the append-only conversation thread, in append order.
	Comments []Comment `toml:"comments,omitempty"`
}

// Assignee is a person responsible for a ticket. Two assignees are the same
// entity iff their IDs match; names are display-only.
type Assignee struct {
	ID   uuid.UUID `toml:"id"`
	Name string    `toml:"name"`
}

// Comment is one immutable entry in a ticket's conversation thread.
type Comment struct {
	// ID is a time-ordered identifier minted when the comment is appended.
	ID uuid.UUID `toml:"id"`

	// AuthorID identifies the comment author.
	AuthorID uuid.UUID `toml:"author_id"`

	// AuthorName is the author's display name at the time of writing.
	AuthorName string `toml:"author_name"`

	// Message is the comment body.
	Message string `toml:"message"`

	// CreatedAt is when the comment was appended.
	CreatedAt time.Time `toml:"created_at"`
}

// HasAssignee returns true if the ticket already has an assignee with the
// given id.
func (t Ticket) HasAssignee(id uuid.UUID) bool {
	for _, a := range t.Assignees {
		if a.ID == id {
			return true
		}
	}
	return false
}

// MaxTitleLength is the maximum allowed length for a ticket title.
const MaxTitleLength = 500
