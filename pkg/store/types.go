package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ref identifies one stored snapshot: the dataset fingerprint plus an
// optional name distinguishing multiple reports over the same dataset.
type Ref struct {
	Hash string
	Name string
}

// Identifier returns the canonical storage key for the ref.
func (r Ref) Identifier() (string, error) {
	if r.Hash == "" {
		return "", fmt.Errorf("store: ref requires a dataset hash")
	}
	if r.Name == "" {
		return r.Hash, nil
	}
	return fmt.Sprintf("%s/%s", r.Hash, r.Name), nil
}

// Meta is storage-owned metadata kept alongside a snapshot blob.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one snapshot blob per Ref. Implementations must be
// safe for concurrent use within a process.
type Store interface {
	Load(ctx context.Context, ref Ref) (blob []byte, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, blob []byte, meta Meta) (Meta, error)
}

// stampMeta fills storage-owned fields the caller left blank.
func stampMeta(meta Meta, now time.Time) Meta {
	if meta.SnapshotID == "" {
		meta.SnapshotID = uuid.NewString()
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = now
	}
	return meta
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
