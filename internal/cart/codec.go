package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion is the current schema version of the persisted cart.
const SnapshotVersion = 1

// ErrCorruptSnapshot marks a persisted cart that cannot be decoded.
// Callers are expected to fall back to an empty cart.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// snapshotEnvelope versions the persisted cart so a format change does
// not silently corrupt older saves.
type snapshotEnvelope struct {
	SchemaVersion int       `json:"schemaVersion"`
	SavedAt       time.Time `json:"savedAt"`
	Items         []Product `json:"items"`
}

// EncodeSnapshot serializes the full cart into the versioned envelope.
func EncodeSnapshot(items []Product) ([]byte, error) {
	env := snapshotEnvelope{
		SchemaVersion: SnapshotVersion,
		SavedAt:       time.Now().UTC(),
		Items:         items,
	}
	return json.Marshal(env)
}

// DecodeSnapshot parses a persisted cart. A bare JSON array is accepted
// as the legacy unversioned format. Input that fails to parse, carries
// an unknown schema version, or violates the quantity invariant is
// reported as ErrCorruptSnapshot.
func DecodeSnapshot(data []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrCorruptSnapshot)
	}

	if trimmed[0] == '[' {
		var items []Product
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		return validateItems(items)
	}

	var env snapshotEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if env.SchemaVersion != SnapshotVersion {
		return nil, fmt.Errorf("%w: unknown schema version %d", ErrCorruptSnapshot, env.SchemaVersion)
	}
	return validateItems(env.Items)
}

func validateItems(items []Product) ([]Product, error) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: entry without product id", ErrCorruptSnapshot)
		}
		if it.Amount < 1 {
			return nil, fmt.Errorf("%w: product %s has amount %d", ErrCorruptSnapshot, it.ID, it.Amount)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate entry for product %s", ErrCorruptSnapshot, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}
