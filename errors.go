package snap

import "fmt"

// DeserializationError reports that snapshot bytes could not be decoded. The
// codec's failure is preserved as the cause.
type DeserializationError struct {
	Codec string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Codec == "" {
		return fmt.Sprintf("snap: failed to load data: %v", e.Err)
	}
	return fmt.Sprintf("snap: failed to load data (%s): %v", e.Codec, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IncompatibleFormatError reports that decoded bytes do not carry a
// well-formed snapshot: the file may be damaged or written by an
// incompatible version.
type IncompatibleFormatError struct {
	Reason string
}

func (e *IncompatibleFormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason == "" {
		return "snap: file may be damaged or from an incompatible version"
	}
	return fmt.Sprintf("snap: file may be damaged or from an incompatible version: %s", e.Reason)
}

// DatasetMismatchError reports that a snapshot belongs to a different dataset
// than the target report. The target is left untouched.
type DatasetMismatchError struct {
	Want string
	Got  string
}

func (e *DatasetMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("snap: dataset does not match the current report (have %s, snapshot %s)", describeHash(e.Want), describeHash(e.Got))
}

func describeHash(hash string) string {
	if hash == "" {
		return "<none>"
	}
	return fmt.Sprintf("%q", hash)
}
