package snap_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	snap "github.com/goliatone/go-snapshot"
)

func sampleDescriptionSet(version string) *snap.DescriptionSet {
	return &snap.DescriptionSet{
		Package: snap.PackageInfo{Version: version},
		Table:   snap.TableDescription{RowCount: 891, VariableCount: 3, MissingCells: 177, DuplicateRows: 0},
		Variables: map[string]snap.VariableDescription{
			"age":  {Type: "numeric", Count: 714, Missing: 177, Stats: map[string]any{"mean": 29.7}},
			"name": {Type: "categorical", Count: 891, Missing: 0},
		},
		Alerts: []string{"age has 177 missing values"},
	}
}

func sampleTree() *snap.ReportTree {
	return &snap.ReportTree{
		Name: "Titanic Report",
		Kind: "root",
		Items: []*snap.ReportTree{
			{Name: "Overview", Kind: "section", Content: map[string]any{"rows": "891"}},
			{Name: "Variables", Kind: "section"},
		},
	}
}

func cmpJSON(want, got any) string {
	wantRaw, err := json.Marshal(want)
	if err != nil {
		return "marshal want: " + err.Error()
	}
	gotRaw, err := json.Marshal(got)
	if err != nil {
		return "marshal got: " + err.Error()
	}
	if string(wantRaw) == string(gotRaw) {
		return ""
	}
	return "want=" + string(wantRaw) + " got=" + string(gotRaw)
}

// mustDump captures the report's serialized state so tests can assert a
// failed load left it bit-for-bit unchanged.
func mustDump(t *testing.T, r *snap.Report) []byte {
	t.Helper()
	data, err := r.Dumps()
	if err != nil {
		t.Fatalf("dumps: %v", err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		withDS   bool
		withTree bool
	}{
		{name: "neither payload"},
		{name: "description set only", withDS: true},
		{name: "report tree only", withTree: true},
		{name: "both payloads", withDS: true, withTree: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			options := []snap.Option{
				snap.WithDatasetHash("abc"),
				snap.WithTitle("Titanic"),
			}
			if tc.withDS {
				options = append(options, snap.WithDescriptionSet(sampleDescriptionSet(snap.Version)))
			}
			if tc.withTree {
				options = append(options, snap.WithReportTree(sampleTree()))
			}
			source := snap.New(options...)

			blob := mustDump(t, source)
			target := snap.New()
			got, err := target.Loads(blob, false)
			if err != nil {
				t.Fatalf("loads: %v", err)
			}
			if got != target {
				t.Fatal("expected Loads to return the target for chaining")
			}

			if target.DatasetHash() != "abc" {
				t.Errorf("hash mismatch: got %q", target.DatasetHash())
			}
			if target.Title() != "Titanic" {
				t.Errorf("title mismatch: got %q", target.Title())
			}
			if diff := cmpJSON(source.DescriptionSet(), target.DescriptionSet()); diff != "" {
				t.Errorf("description set mismatch: %s", diff)
			}
			if diff := cmpJSON(source.ReportTree(), target.ReportTree()); diff != "" {
				t.Errorf("report tree mismatch: %s", diff)
			}
		})
	}
}

func TestLoadsPreservesPopulatedFields(t *testing.T) {
	existing := sampleDescriptionSet(snap.Version)
	sink := &snap.CollectorSink{}
	target := snap.New(
		snap.WithDescriptionSet(existing),
		snap.WithNoticeSink(sink),
	)

	source := snap.New(
		snap.WithDatasetHash("xyz"),
		snap.WithDescriptionSet(sampleDescriptionSet(snap.Version)),
		snap.WithReportTree(sampleTree()),
	)
	other := mustDump(t, source)

	if _, err := target.Loads(other, false); err != nil {
		t.Fatalf("loads: %v", err)
	}

	if target.DescriptionSet() != existing {
		t.Error("existing description set was overwritten")
	}
	if target.ReportTree() == nil {
		t.Error("empty report tree should have adopted the loaded value")
	}

	notices := sink.Notices()
	if len(notices) != 1 {
		t.Fatalf("expected exactly one notice, got %d: %v", len(notices), notices)
	}
	if notices[0].Code != snap.NoticeFieldPreserved || notices[0].Field != "description_set" {
		t.Errorf("unexpected notice: %+v", notices[0])
	}
}

func TestLoadsDatasetMismatch(t *testing.T) {
	cfg := snap.DefaultConfig()
	cfg.Minimal = boolPtr(true)

	target := snap.New(
		snap.WithDatasetHash("abc"),
		snap.WithConfig(cfg),
		snap.WithTitle("mine"),
		snap.WithDescriptionSet(sampleDescriptionSet(snap.Version)),
	)
	before := mustDump(t, target)

	other := mustDump(t, snap.New(
		snap.WithDatasetHash("xyz"),
		snap.WithTitle("theirs"),
	))

	_, err := target.Loads(other, false)
	var mismatch *snap.DatasetMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DatasetMismatchError, got %v", err)
	}
	if mismatch.Want != "abc" || mismatch.Got != "xyz" {
		t.Errorf("unexpected mismatch detail: %+v", mismatch)
	}

	after := mustDump(t, target)
	if !bytes.Equal(before, after) {
		t.Error("target state changed after a failed load")
	}
}

func TestLoadsDatasetBoundBlocksBypass(t *testing.T) {
	// Default config but a dataset bound: not a fresh load destination.
	target := snap.New(
		snap.WithDataset(struct{}{}),
		snap.WithDatasetHash("abc"),
	)
	other := mustDump(t, snap.New(snap.WithDatasetHash("xyz")))

	var mismatch *snap.DatasetMismatchError
	if _, err := target.Loads(other, false); !errors.As(err, &mismatch) {
		t.Fatalf("expected DatasetMismatchError, got %v", err)
	}
}

func TestLoadsDefaultTargetBypass(t *testing.T) {
	blob := mustDump(t, snap.New(
		snap.WithDatasetHash("anything"),
		snap.WithTitle("Any"),
		snap.WithReportTree(sampleTree()),
	))

	target := snap.New()
	if _, err := target.Loads(blob, false); err != nil {
		t.Fatalf("fresh target should accept any valid snapshot: %v", err)
	}
	if target.DatasetHash() != "anything" {
		t.Errorf("hash not adopted: %q", target.DatasetHash())
	}
}

func TestLoadsCorruptInput(t *testing.T) {
	valid := mustDump(t, snap.New(snap.WithDatasetHash("abc")))

	cases := []struct {
		name         string
		data         []byte
		wantDecode   bool
		wantShape    bool
	}{
		{name: "random bytes", data: []byte("\x00\x01\x02garbage"), wantDecode: true},
		{name: "empty input", data: nil, wantDecode: true},
		{name: "truncated snapshot", data: valid[:len(valid)-5], wantDecode: true},
		{name: "json null", data: []byte("null"), wantShape: true},
		{name: "missing config", data: []byte(`{"format_version":1}`), wantShape: true},
		{name: "unknown format version", data: []byte(`{"format_version":99,"config":{}}`), wantShape: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := snap.New(snap.WithTitle("existing"))
			before := mustDump(t, target)

			_, err := target.Loads(tc.data, false)
			if err == nil {
				t.Fatal("expected an error")
			}

			var decodeErr *snap.DeserializationError
			var shapeErr *snap.IncompatibleFormatError
			switch {
			case tc.wantDecode && !errors.As(err, &decodeErr):
				t.Errorf("expected DeserializationError, got %T: %v", err, err)
			case tc.wantShape && !errors.As(err, &shapeErr):
				t.Errorf("expected IncompatibleFormatError, got %T: %v", err, err)
			}

			after := mustDump(t, target)
			if !bytes.Equal(before, after) {
				t.Error("target state changed after a failed load")
			}
		})
	}
}

func TestLoadsDeserializationErrorKeepsCause(t *testing.T) {
	target := snap.New()
	_, err := target.Loads([]byte("not json"), false)

	var decodeErr *snap.DeserializationError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DeserializationError, got %v", err)
	}
	if decodeErr.Unwrap() == nil {
		t.Error("expected the codec failure to be preserved as the cause")
	}
}

func TestLoadsMergesConfig(t *testing.T) {
	cfg := snap.DefaultConfig()
	cfg.Minimal = boolPtr(true)
	cfg.Plot.DPI = intPtr(300)

	blob := mustDump(t, snap.New(snap.WithConfig(cfg), snap.WithDatasetHash("abc")))

	target := snap.New()
	if _, err := target.Loads(blob, false); err != nil {
		t.Fatalf("loads: %v", err)
	}

	got := target.Config()
	if got.Minimal == nil || !*got.Minimal {
		t.Error("loaded minimal setting did not take effect")
	}
	if got.Plot == nil || got.Plot.DPI == nil || *got.Plot.DPI != 300 {
		t.Error("loaded plot DPI did not take effect")
	}
	if got.Plot.ImageFormat == nil || *got.Plot.ImageFormat != "svg" {
		t.Error("untouched settings should keep their current values")
	}
}

func TestLoadsIgnoreConfigSkipsMerge(t *testing.T) {
	cfg := snap.DefaultConfig()
	cfg.Minimal = boolPtr(true)

	blob := mustDump(t, snap.New(
		snap.WithConfig(cfg),
		snap.WithDatasetHash("abc"),
		snap.WithTitle("Titanic"),
	))

	target := snap.New()
	if _, err := target.Loads(blob, true); err != nil {
		t.Fatalf("loads: %v", err)
	}

	if !target.Config().IsDefault() {
		t.Error("ignoreConfig should leave the active config untouched")
	}
	// Identity still updates.
	if target.DatasetHash() != "abc" || target.Title() != "Titanic" {
		t.Errorf("identity not adopted: hash=%q title=%q", target.DatasetHash(), target.Title())
	}
}

func TestLoadsVersionSkewNotice(t *testing.T) {
	blob := mustDump(t, snap.New(
		snap.WithDatasetHash("abc"),
		snap.WithDescriptionSet(sampleDescriptionSet("0.1.0")),
	))

	sink := &snap.CollectorSink{}
	target := snap.New(snap.WithNoticeSink(sink))
	if _, err := target.Loads(blob, false); err != nil {
		t.Fatalf("version skew must never block a load: %v", err)
	}

	notices := sink.Notices()
	if len(notices) != 1 || notices[0].Code != snap.NoticeVersionSkew {
		t.Fatalf("expected a single version skew notice, got %v", notices)
	}
}

func TestLoadsMatchingVersionNoNotice(t *testing.T) {
	blob := mustDump(t, snap.New(
		snap.WithDatasetHash("abc"),
		snap.WithDescriptionSet(sampleDescriptionSet(snap.Version)),
	))

	sink := &snap.CollectorSink{}
	target := snap.New(snap.WithNoticeSink(sink))
	if _, err := target.Loads(blob, false); err != nil {
		t.Fatalf("loads: %v", err)
	}
	if notices := sink.Notices(); len(notices) != 0 {
		t.Errorf("expected no notices, got %v", notices)
	}
}

func TestRoundTripGobCodec(t *testing.T) {
	source := snap.New(
		snap.WithCodec(snap.GobCodec{}),
		snap.WithDatasetHash("abc"),
		snap.WithTitle("Titanic"),
		snap.WithDescriptionSet(sampleDescriptionSet(snap.Version)),
		snap.WithReportTree(sampleTree()),
	)
	blob := mustDump(t, source)

	target := snap.New(snap.WithCodec(snap.GobCodec{}))
	if _, err := target.Loads(blob, false); err != nil {
		t.Fatalf("loads: %v", err)
	}
	if diff := cmpJSON(source.DescriptionSet(), target.DescriptionSet()); diff != "" {
		t.Errorf("description set mismatch: %s", diff)
	}

	var decodeErr *snap.DeserializationError
	if _, err := snap.New(snap.WithCodec(snap.GobCodec{})).Loads([]byte("junk"), false); !errors.As(err, &decodeErr) {
		t.Errorf("expected DeserializationError for junk gob input, got %v", err)
	}
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }
