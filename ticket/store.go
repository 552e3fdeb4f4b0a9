package ticket

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// OpenDir is the partition directory holding open tickets.
	OpenDir = "open"

	// ClosedDir is the partition directory holding closed tickets.
	ClosedDir = "closed"

	documentExt = ".toml"
)

// Store provides access to the ticket documents under a single root
// directory. It holds no in-memory cache: every operation is a fresh
// load-transform-save cycle against the filesystem, so each load observes
// the latest persisted state.
//
// Concurrent processes are synchronized only by atomic rename. A reader never
// observes a half-written document, but two processes editing the same ticket
// at the same instant resolve last-writer-wins on the whole document.
type Store struct {
	root string
}

// Open returns a store for the ticket directory at root. The root is
// supplied by the caller; the store never searches for it.
func Open(root string) *Store {
	return &Store{root: root}
}

// Root returns the ticket directory this store reads and writes.
func (s *Store) Root() string {
	return s.root
}

// Init creates the open and closed partition directories.
func (s *Store) Init() error {
	for _, dir := range []string{OpenDir, ClosedDir} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s partition: %w", dir, err)
		}
	}
	return nil
}

func (s *Store) exists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// partitionDir returns the partition directory implied by a status.
func partitionDir(status Status) string {
	if status == StatusClosed {
		return ClosedDir
	}
	return OpenDir
}

func (s *Store) documentPath(partition string, id uuid.UUID) string {
	return filepath.Join(s.root, partition, id.String()+documentExt)
}

// ListFilter configures which tickets List returns.
type ListFilter struct {
	// Status limits the scan to one partition. Nil scans both.
	Status *Status
}

// ScanFailure records one document that could not be loaded during a scan.
type ScanFailure struct {
	Path string
	Err  error
}

// ScanReport summarizes the per-document outcomes of a scan. A scan never
// aborts on a single bad document; failures are recorded here and the scan
// continues.
type ScanReport struct {
	// Scanned is the number of documents visited.
	Scanned int

	// Migrated is the number of documents that needed an in-memory
	// format upgrade. List does not persist upgrades; see MigrateAll.
	Migrated int

	// Failures are the documents that were skipped.
	Failures []ScanFailure
}

// List enumerates, parses, and (if needed) migrates every document in the
// filtered partitions. Results are sorted by ticket id, which is creation
// order. Documents that fail to load are skipped and reported.
func (s *Store) List(filter ListFilter) ([]Ticket, ScanReport, error) {
	if !s.exists() {
		return nil, ScanReport{}, ErrNoTicketStore
	}

	partitions := []string{OpenDir, ClosedDir}
	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, ScanReport{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *filter.Status)
		}
		partitions = []string{partitionDir(*filter.Status)}
	}

	var tickets []Ticket
	var report ScanReport
	for _, partition := range partitions {
		entries, err := os.ReadDir(filepath.Join(s.root, partition))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, ScanReport{}, fmt.Errorf("read %s partition: %w", partition, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), documentExt) {
				continue
			}
			path := filepath.Join(s.root, partition, entry.Name())
			report.Scanned++

			t, migrated, err := loadDocument(path)
			if err != nil {
				report.Failures = append(report.Failures, ScanFailure{Path: path, Err: err})
				continue
			}
			if migrated {
				report.Migrated++
			}
			tickets = append(tickets, t)
		}
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ID.String() < tickets[j].ID.String()
	})
	return tickets, report, nil
}

func loadDocument(path string) (Ticket, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Ticket{}, false, fmt.Errorf("read document: %w", err)
	}
	t, migrated, err := Migrate(raw)
	if err != nil {
		if docErr := (*DocumentError)(nil); errors.As(err, &docErr) && docErr.Path == "" {
			docErr.Path = path
		}
		return Ticket{}, false, err
	}
	return t, migrated, nil
}

// Load returns the ticket with the given id, searching both partitions.
// An id is unique across partitions, so the first match wins.
func (s *Store) Load(id uuid.UUID) (Ticket, error) {
	if !s.exists() {
		return Ticket{}, ErrNoTicketStore
	}

	for _, partition := range []string{OpenDir, ClosedDir} {
		path := s.documentPath(partition, id)
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Ticket{}, fmt.Errorf("read document: %w", err)
		}

		t, err := Parse(raw)
		if err != nil {
			if docErr := (*DocumentError)(nil); errors.As(err, &docErr) && docErr.Path == "" {
				docErr.Path = path
			}
			return Ticket{}, err
		}
		return t, nil
	}

	return Ticket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
}

// Save atomically persists the ticket into the partition implied by its
// status: the document is serialized to a temporary file in the target
// partition and renamed over the final path. If the ticket previously lived
// in the other partition, the stale copy is removed as part of the same
// logical operation, so no reader ever sees two live copies of one id.
func (s *Store) Save(t Ticket) error {
	if err := ValidateTicket(&t); err != nil {
		return err
	}
	if !s.exists() {
		return ErrNoTicketStore
	}

	raw, err := t.MarshalDocument()
	if err != nil {
		return err
	}

	partition := partitionDir(t.Status)
	finalPath := s.documentPath(partition, t.ID)
	tmpPath := filepath.Join(s.root, partition, "."+t.ID.String()+documentExt+".tmp")

	if err := os.WriteFile(tmpPath, raw, 0o644); err != nil {
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename document: %w", err)
	}

	// Drop the stale copy if the ticket moved between partitions.
	other := OpenDir
	if partition == OpenDir {
		other = ClosedDir
	}
	stalePath := s.documentPath(other, t.ID)
	if err := os.Remove(stalePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale document: %w", err)
	}

	return nil
}

// NewTicket mints an id, creates an open ticket with the given title and
// description, and persists it immediately.
func (s *Store) NewTicket(title, description string) (Ticket, error) {
	if err := ValidateTitle(title); err != nil {
		return Ticket{}, err
	}

	id, err := NewID()
	if err != nil {
		return Ticket{}, fmt.Errorf("mint ticket id: %w", err)
	}

	t := Ticket{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      StatusOpen,
		Version:     CurrentVersion,
	}
	if err := s.Save(t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// MigrateAction classifies the outcome of migrating one document.
type MigrateAction int

const (
	// MigrateUnchanged means the document was already in the current format.
	MigrateUnchanged MigrateAction = iota

	// MigrateUpgraded means the document was rewritten in the current format.
	MigrateUpgraded

	// MigrateFailed means the document could not be upgraded and was left
	// untouched.
	MigrateFailed
)

// MigrateOutcome reports what happened to one document during MigrateAll.
type MigrateOutcome struct {
	Path   string
	Action MigrateAction
	Ticket Ticket // zero value when Action is MigrateFailed
	Err    error  // non-nil only when Action is MigrateFailed
}

// MigrateReport aggregates per-document outcomes of a store-wide migration.
type MigrateReport struct {
	Outcomes []MigrateOutcome
}

// Counts returns the number of upgraded, unchanged, and failed documents.
func (r MigrateReport) Counts() (upgraded, unchanged, failed int) {
	for _, outcome := range r.Outcomes {
		switch outcome.Action {
		case MigrateUpgraded:
			upgraded++
		case MigrateUnchanged:
			unchanged++
		case MigrateFailed:
			failed++
		}
	}
	return upgraded, unchanged, failed
}

// MigrateAll upgrades every document in both partitions to the current
// format and persists the result. Upgraded documents are written under their
// new id and the old file is removed. A document that fails to upgrade is
// recorded and skipped; the scan always continues.
//
// Running MigrateAll on a fully migrated store changes nothing.
func (s *Store) MigrateAll() (MigrateReport, error) {
	if !s.exists() {
		return MigrateReport{}, ErrNoTicketStore
	}

	var report MigrateReport
	for _, partition := range []string{OpenDir, ClosedDir} {
		entries, err := os.ReadDir(filepath.Join(s.root, partition))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return MigrateReport{}, fmt.Errorf("read %s partition: %w", partition, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), documentExt) {
				continue
			}
			path := filepath.Join(s.root, partition, entry.Name())

			t, migrated, err := loadDocument(path)
			if err != nil {
				report.Outcomes = append(report.Outcomes, MigrateOutcome{
					Path:   path,
					Action: MigrateFailed,
					Err:    err,
				})
				continue
			}
			if !migrated {
				report.Outcomes = append(report.Outcomes, MigrateOutcome{
					Path:   path,
					Action: MigrateUnchanged,
					Ticket: t,
				})
				continue
			}

			if err := s.Save(t); err != nil {
				report.Outcomes = append(report.Outcomes, MigrateOutcome{
					Path:   path,
					Action: MigrateFailed,
					Err:    err,
				})
				continue
			}
			// The upgraded document lives under its new id; drop the
			// old file unless Save already wrote over it.
			if path != s.documentPath(partitionDir(t.Status), t.ID) {
				if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
					report.Outcomes = append(report.Outcomes, MigrateOutcome{
						Path:   path,
						Action: MigrateFailed,
						Err:    fmt.Errorf("remove old document: %w", err),
					})
					continue
				}
			}
			report.Outcomes = append(report.Outcomes, MigrateOutcome{
				Path:   path,
				Action: MigrateUpgraded,
				Ticket: t,
			})
		}
	}

	return report, nil
}
