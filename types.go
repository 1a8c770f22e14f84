package snap

// PackageInfo records which library build produced a description set.
type PackageInfo struct {
	Version string `json:"version" yaml:"version"`
}

// TableDescription aggregates dataset-level statistics.
type TableDescription struct {
	RowCount      int `json:"row_count" yaml:"row_count"`
	VariableCount int `json:"variable_count" yaml:"variable_count"`
	MissingCells  int `json:"missing_cells" yaml:"missing_cells"`
	DuplicateRows int `json:"duplicate_rows" yaml:"duplicate_rows"`
}

// VariableDescription holds the computed statistics for a single variable.
type VariableDescription struct {
	Type    string         `json:"type" yaml:"type"`
	Count   int            `json:"count" yaml:"count"`
	Missing int            `json:"missing" yaml:"missing"`
	Stats   map[string]any `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// DescriptionSet is the computed-statistics payload produced by the analysis
// pipeline. The snapshot layer treats it as opaque data apart from the
// package version marker consulted by the load-time version advisory.
type DescriptionSet struct {
	Package   PackageInfo                    `json:"package" yaml:"package"`
	Table     TableDescription               `json:"table" yaml:"table"`
	Variables map[string]VariableDescription `json:"variables,omitempty" yaml:"variables,omitempty"`
	Alerts    []string                       `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// ReportTree is the rendered presentation tree produced by the rendering
// pipeline. Opaque to the snapshot layer; it only needs to round-trip.
type ReportTree struct {
	Name    string         `json:"name" yaml:"name"`
	Kind    string         `json:"kind" yaml:"kind"`
	Content map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
	Items   []*ReportTree  `json:"items,omitempty" yaml:"items,omitempty"`
}
