package ticket

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"valid short", "Fix bug", nil},
		{"valid long", strings.Repeat("a", MaxTitleLength), nil},
		{"empty", "", ErrEmptyTitle},
		{"whitespace", "   ", ErrEmptyTitle},
		{"too long", strings.Repeat("a", MaxTitleLength+1), ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTitle(%q) unexpected error: %v", tt.title, err)
				}
			} else {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateTitle(%q) = %v, want %v", tt.title, err, tt.wantErr)
				}
			}
		})
	}
}

func validTicket(t *testing.T) Ticket {
	t.Helper()

	id, err := NewID()
	if err != nil {
		t.Fatalf("mint id: %v", err)
	}
	return Ticket{
		ID:      id,
		Title:   "A valid ticket",
		Status:  StatusOpen,
		Version: CurrentVersion,
	}
}

func TestValidateTicket(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	author := uuid.New()

	tests := []struct {
		name       string
		mutate     func(*Ticket)
		wantReason string
	}{
		{"valid", func(*Ticket) {}, ""},
		{"missing id", func(tk *Ticket) { tk.ID = uuid.Nil }, "missing id"},
		{"missing title", func(tk *Ticket) { tk.Title = "" }, "missing title"},
		{"unknown status", func(tk *Ticket) { tk.Status = "limbo" }, "unknown status"},
		{"wrong version", func(tk *Ticket) { tk.Version = "v9" }, "unexpected version"},
		{
			"assignee without id",
			func(tk *Ticket) { tk.Assignees = []Assignee{{Name: "Alice"}} },
			"has no id",
		},
		{
			"duplicate assignee",
			func(tk *Ticket) {
				shared := uuid.New()
				tk.Assignees = []Assignee{{ID: shared, Name: "Alice"}, {ID: shared, Name: "Bob"}}
			},
			"duplicate assignee",
		},
		{
			"comment without message",
			func(tk *Ticket) {
				tk.Comments = []Comment{{ID: uuid.New(), AuthorID: author, CreatedAt: base}}
			},
			"has no message",
		},
		{
			"comments out of order",
			func(tk *Ticket) {
				tk.Comments = []Comment{
					{ID: uuid.New(), AuthorID: author, Message: "second", CreatedAt: base.Add(time.Hour)},
					{ID: uuid.New(), AuthorID: author, Message: "first", CreatedAt: base},
				}
			},
			"out of order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := validTicket(t)
			tt.mutate(&tk)

			err := ValidateTicket(&tk)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("ValidateTicket() unexpected error: %v", err)
				}
				return
			}
			var docErr *DocumentError
			if !errors.As(err, &docErr) {
				t.Fatalf("ValidateTicket() = %v, want *DocumentError", err)
			}
			if !strings.Contains(docErr.Reason, tt.wantReason) {
				t.Errorf("reason %q does not mention %q", docErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestDocumentErrorMessageIncludesPath(t *testing.T) {
	err := &DocumentError{Path: "open/x.toml", Reason: "missing title"}
	if got := err.Error(); !strings.Contains(got, "open/x.toml") || !strings.Contains(got, "missing title") {
		t.Errorf("Error() = %q, want path and reason", got)
	}
}
