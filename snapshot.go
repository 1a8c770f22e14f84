package snap

import "fmt"

// snapshotEnvelope is the wire unit written by Dumps: a point-in-time capture
// of a report's identity, configuration and computed artifacts. The field set
// and FormatVersion are part of the format contract; previously written
// snapshots break if either changes.
type snapshotEnvelope struct {
	FormatVersion  int             `json:"format_version" yaml:"format_version"`
	DataframeHash  string          `json:"dataframe_hash,omitempty" yaml:"dataframe_hash,omitempty"`
	Config         *Config         `json:"config" yaml:"config"`
	DescriptionSet *DescriptionSet `json:"description_set,omitempty" yaml:"description_set,omitempty"`
	Report         *ReportTree     `json:"report,omitempty" yaml:"report,omitempty"`
	Title          string          `json:"title,omitempty" yaml:"title,omitempty"`
}

// validate runs the structural checks a decoded envelope must pass before any
// target mutation. A failure means the bytes are damaged or were written by
// an incompatible version.
func (e snapshotEnvelope) validate() error {
	switch {
	case e.FormatVersion != FormatVersion:
		return &IncompatibleFormatError{Reason: fmt.Sprintf("unsupported format version %d", e.FormatVersion)}
	case e.Config == nil:
		return &IncompatibleFormatError{Reason: "snapshot carries no config"}
	}
	return nil
}
