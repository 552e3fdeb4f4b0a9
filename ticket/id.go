package ticket

import "github.com/google/uuid"

// NewID mints a time-ordered identifier for a ticket or comment. Time-ordered
// ids keep directory listings and comment threads in creation order without a
// separate counter.
func NewID() (uuid.UUID, error) {
	return uuid.NewV7()
}

// NewAssigneeID mints a random identifier for an assignee that has no stable
// identity, such as a bare-name assignee found during migration.
func NewAssigneeID() uuid.UUID {
	return uuid.New()
}
