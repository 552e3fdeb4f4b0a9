package ticket

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Parse decodes a current-format ticket document and checks its invariants.
// Documents in older formats are rejected; use Migrate for those.
func Parse(raw []byte) (Ticket, error) {
	var t Ticket
	if _, err := toml.Decode(string(raw), &t); err != nil {
		return Ticket{}, documentErrorf("decode: %v", err)
	}
	if err := ValidateTicket(&t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// MarshalDocument serializes the ticket to its on-disk TOML form.
//
// The output is stable: field order follows the Ticket struct definition and
// assignees and comments keep their in-memory order, so serializing a parsed,
// unchanged ticket is byte-identical to the input document.
func (t Ticket) MarshalDocument() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode ticket %s: %w", t.ID, err)
	}
	return buf.Bytes(), nil
}
