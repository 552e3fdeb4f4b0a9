package ticket

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// storedDocument is a version-tagged view of one on-disk document. Exactly
// one variant field is populated for the document's current version; each
// migration step moves the document to the next variant.
type storedDocument struct {
	version Version
	v0      *docV0
	ticket  *Ticket
}

// docV0 is the original document format. Tickets were addressed by a
// human-chosen number rather than a generated identifier, the assignee was
// either absent or a bare name, and comments did not exist yet.
type docV0 struct {
	Title       string
	Status      string
	Number      int
	Assignee    v0Assignee
	Description string
}

// v0Assignee models the two shapes the legacy assignee field took: a bare
// name string, or (in documents written by early migration drafts) a table
// with an id and name. This ambiguity exists only at the V0 boundary.
type v0Assignee struct {
	present bool
	name    string
	id      uuid.UUID // uuid.Nil when the document carried only a name
}

type migrationStep struct {
	from  Version
	to    Version
	apply func(*storedDocument) error
}

// migrationSteps upgrades one version at a time. Adding a future V2 means
// adding one step from V1 to V2; the chain composes the rest.
var migrationSteps = []migrationStep{
	{from: V0, to: V1, apply: stepV0ToV1},
}

// DetectVersion reports which document format produced the raw document.
// V0 documents carry no version tag, so an absent or undecodable tag means V0.
func DetectVersion(raw []byte) Version {
	var probe struct {
		Version string `toml:"version"`
	}
	if _, err := toml.Decode(string(raw), &probe); err != nil {
		return V0
	}
	if probe.Version == "" {
		return V0
	}
	return Version(strings.ToLower(probe.Version))
}

// Migrate parses a raw document of any known version and upgrades it to the
// current format. The returned bool reports whether an upgrade happened.
//
// Migrate is idempotent: a current-format document is returned unchanged.
func Migrate(raw []byte) (Ticket, bool, error) {
	doc, err := decodeStored(raw)
	if err != nil {
		return Ticket{}, false, err
	}

	migrated := false
	for doc.version != CurrentVersion {
		step, ok := stepFrom(doc.version)
		if !ok {
			return Ticket{}, false, documentErrorf("no migration from version %q", doc.version)
		}
		if err := step.apply(doc); err != nil {
			return Ticket{}, false, err
		}
		doc.version = step.to
		migrated = true
	}

	if err := ValidateTicket(doc.ticket); err != nil {
		return Ticket{}, false, err
	}
	return *doc.ticket, migrated, nil
}

func stepFrom(version Version) (migrationStep, bool) {
	for _, step := range migrationSteps {
		if step.from == version {
			return step, true
		}
	}
	return migrationStep{}, false
}

func decodeStored(raw []byte) (*storedDocument, error) {
	switch version := DetectVersion(raw); version {
	case CurrentVersion:
		t, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		return &storedDocument{version: CurrentVersion, ticket: &t}, nil
	case V0:
		v0, err := decodeV0(raw)
		if err != nil {
			return nil, err
		}
		return &storedDocument{version: V0, v0: v0}, nil
	default:
		return nil, documentErrorf("unknown version %q", version)
	}
}

func decodeV0(raw []byte) (*docV0, error) {
	var aux struct {
		Title       string         `toml:"title"`
		Status      string         `toml:"status"`
		Number      int            `toml:"number"`
		Assignee    toml.Primitive `toml:"assignee"`
		Description string         `toml:"description"`
	}
	md, err := toml.Decode(string(raw), &aux)
	if err != nil {
		return nil, documentErrorf("decode v0: %v", err)
	}

	doc := &docV0{
		Title:       aux.Title,
		Status:      aux.Status,
		Number:      aux.Number,
		Description: aux.Description,
	}
	if doc.Title == "" {
		return nil, documentErrorf("v0 document has no title")
	}

	if md.IsDefined("assignee") {
		doc.Assignee.present = true

		var name string
		if err := md.PrimitiveDecode(aux.Assignee, &name); err == nil {
			doc.Assignee.name = name
			return doc, nil
		}

		var structured struct {
			ID   uuid.UUID `toml:"id"`
			Name string    `toml:"name"`
		}
		if err := md.PrimitiveDecode(aux.Assignee, &structured); err != nil {
			return nil, documentErrorf("v0 assignee is neither a name nor an id/name table: %v", err)
		}
		doc.Assignee.name = structured.Name
		doc.Assignee.id = structured.ID
	}

	return doc, nil
}

// stepV0ToV1 upgrades a V0 document. A fresh ticket id is minted since V0 had
// none; the old number is dropped. A bare-name assignee gets a freshly minted
// id because no stable identifier existed in V0. Both are lossy and
// one-directional.
func stepV0ToV1(doc *storedDocument) error {
	if doc.v0 == nil {
		return documentErrorf("v0 migration input is missing")
	}

	id, err := NewID()
	if err != nil {
		return documentErrorf("mint id: %v", err)
	}

	status := Status(strings.ToLower(doc.v0.Status))
	if status == "" {
		status = StatusOpen
	}
	if !status.IsValid() {
		return documentErrorf("v0 document has unknown status %q", doc.v0.Status)
	}

	t := &Ticket{
		ID:          id,
		Title:       doc.v0.Title,
		Description: doc.v0.Description,
		Status:      status,
		Version:     V1,
	}

	if doc.v0.Assignee.present && doc.v0.Assignee.name != "" {
		assigneeID := doc.v0.Assignee.id
		if assigneeID == uuid.Nil {
			assigneeID = NewAssigneeID()
		}
		t.Assignees = []Assignee{{ID: assigneeID, Name: doc.v0.Assignee.name}}
	}

	doc.v0 = nil
	doc.ticket = t
	return nil
}
