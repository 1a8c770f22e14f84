package snap

// Version is the library version marker. The analysis pipeline stamps it into
// DescriptionSet.Package when a description set is computed; Loads compares
// it against the marker carried by a snapshot and reports skew as an advisory
// notice.
const Version = "0.9.0"

// FormatVersion identifies the snapshot envelope layout. It is part of the
// wire contract: readers reject any other value as an incompatible format.
const FormatVersion = 1
