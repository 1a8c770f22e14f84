// Package store defines persistence-facing contracts for caching serialized
// report snapshots keyed by dataset identity, plus a small cache that pairs a
// Store with snap.Report dump/load.
//
// Responsibilities:
//   - Store only loads/saves one snapshot blob for a single Ref.
//   - Cache dumps a report and saves the blob under its dataset hash, and
//     restores a stored blob into a target report via snap.Report.Loads.
//   - The core snap package stays persistence-agnostic; all storage logic
//     lives behind Store implementations supplied by consumers.
//
// Deterministic keys:
//
//	Ref.Identifier() is the canonical storage key (dataset hash, optionally
//	qualified by a report name). Adapters that persisted keys under another
//	layout handle their own migration.
package store
