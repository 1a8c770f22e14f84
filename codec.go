package snap

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// Codec serializes snapshot envelopes to and from bytes. Implementations
// must round-trip the envelope's plain-data fields without loss and return
// an error on malformed input.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// JSONCodec is the default codec.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (JSONCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }
func (JSONCodec) Name() string                    { return "json" }

// GobCodec is a binary alternative for snapshots that never leave Go.
type GobCodec struct{}

func init() {
	// Payload trees may hold loosely typed content.
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

func (GobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GobCodec) Unmarshal(b []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}

func (GobCodec) Name() string { return "gob" }
