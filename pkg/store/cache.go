package store

import (
	"context"
	"fmt"

	snap "github.com/goliatone/go-snapshot"
)

// Cache pairs a Store with report dump/load so repeated profiling of the
// same dataset can reuse prior results.
type Cache struct {
	Store Store
}

// Put serializes the report and saves the blob under its dataset identity.
func (c Cache) Put(ctx context.Context, r *snap.Report, meta Meta) (Meta, error) {
	if c.Store == nil {
		return Meta{}, fmt.Errorf("store: cache requires a store")
	}
	blob, err := r.Dumps()
	if err != nil {
		return Meta{}, fmt.Errorf("store: dump report: %w", err)
	}
	ref := Ref{Hash: r.DatasetHash(), Name: r.Title()}
	return c.Store.Save(ctx, ref, blob, meta)
}

// Get restores the stored snapshot for ref into target, reporting whether a
// snapshot existed. The merge follows the snap.Report.Loads contract.
func (c Cache) Get(ctx context.Context, ref Ref, target *snap.Report, ignoreConfig bool) (bool, error) {
	if c.Store == nil {
		return false, fmt.Errorf("store: cache requires a store")
	}
	blob, _, ok, err := c.Store.Load(ctx, ref)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if _, err := target.Loads(blob, ignoreConfig); err != nil {
		return false, fmt.Errorf("store: restore snapshot: %w", err)
	}
	return true, nil
}
