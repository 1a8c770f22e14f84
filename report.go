// Package snap persists and restores the computed state of a data-profiling
// report so expensive analysis results can be cached, shared, or reloaded
// without recomputation.
//
// A Report is captured with Dumps/Dump and restored with Loads/Load. All
// decision logic lives in Loads: a snapshot merges into a target only when
// their dataset identities are compatible, already-computed fields are
// preserved (with an advisory Notice) rather than overwritten, and decode or
// shape failures abort before the target is touched.
package snap

import "fmt"

// Report is the live profiling-report state snapshots are captured from and
// merged into. It is not safe for concurrent use; callers serialize access.
type Report struct {
	cfg   Config
	codec Codec
	sink  NoticeSink

	// dataset is the in-memory source data. This layer only ever checks it
	// for presence, never content.
	dataset        any
	datasetHash    string
	title          string
	descriptionSet *DescriptionSet
	reportTree     *ReportTree
}

// Option configures a Report at construction time.
type Option func(*Report)

// WithConfig sets the report's configuration. Without it the report runs on
// DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(r *Report) { r.cfg = cfg }
}

// WithCodec selects the snapshot codec. Defaults to JSONCodec.
func WithCodec(c Codec) Option {
	return func(r *Report) {
		if c != nil {
			r.codec = c
		}
	}
}

// WithNoticeSink routes load advisories to sink instead of discarding them.
func WithNoticeSink(sink NoticeSink) Option {
	return func(r *Report) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// WithDataset binds the in-memory source dataset.
func WithDataset(dataset any) Option {
	return func(r *Report) { r.dataset = dataset }
}

// WithDatasetHash sets the content fingerprint of the source dataset.
func WithDatasetHash(hash string) Option {
	return func(r *Report) { r.datasetHash = hash }
}

// WithTitle sets the report's display title.
func WithTitle(title string) Option {
	return func(r *Report) { r.title = title }
}

// WithDescriptionSet seeds the computed-statistics payload.
func WithDescriptionSet(ds *DescriptionSet) Option {
	return func(r *Report) { r.descriptionSet = ds }
}

// WithReportTree seeds the rendered presentation payload.
func WithReportTree(rt *ReportTree) Option {
	return func(r *Report) { r.reportTree = rt }
}

// New constructs a report. With no options it is a fresh, unconfigured load
// destination: default config, no dataset bound.
func New(options ...Option) *Report {
	r := &Report{
		cfg:   DefaultConfig(),
		codec: JSONCodec{},
		sink:  noopNoticeSink{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Config returns the active configuration.
func (r *Report) Config() Config { return r.cfg }

// DatasetHash returns the dataset fingerprint, empty when none is set.
func (r *Report) DatasetHash() string { return r.datasetHash }

// Title returns the display title, empty when none is set.
func (r *Report) Title() string { return r.title }

// DescriptionSet returns the computed statistics, nil if analysis has not
// run.
func (r *Report) DescriptionSet() *DescriptionSet { return r.descriptionSet }

// ReportTree returns the rendered presentation tree, nil if rendering has
// not run.
func (r *Report) ReportTree() *ReportTree { return r.reportTree }

// Dumps serializes the report's current state and returns the snapshot
// bytes. The capture is by reference: payloads are not deep-copied. Codec
// failures propagate unmodified.
func (r *Report) Dumps() ([]byte, error) {
	cfg := r.cfg
	return r.codec.Marshal(snapshotEnvelope{
		FormatVersion:  FormatVersion,
		DataframeHash:  r.datasetHash,
		Config:         &cfg,
		DescriptionSet: r.descriptionSet,
		Report:         r.reportTree,
		Title:          r.title,
	})
}

// Loads restores snapshot bytes previously produced by Dumps into the
// report.
//
// The snapshot merges only when its dataset hash matches the report's, or
// when the report is a fresh load destination (default config, no dataset
// bound). Description set and report tree are adopted per field only where
// the report holds none; an already-computed field is preserved and an
// advisory Notice names it. The snapshot's config is merged into the active
// config unless ignoreConfig is true. Hash and title are always adopted.
//
// Decode failures surface as *DeserializationError, malformed snapshots as
// *IncompatibleFormatError, and identity conflicts as *DatasetMismatchError;
// in every error case the report is left untouched.
//
// Returns the report for chaining.
func (r *Report) Loads(data []byte, ignoreConfig bool) (*Report, error) {
	var env snapshotEnvelope
	if err := r.codec.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Codec: r.codec.Name(), Err: err}
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	compatible := env.DataframeHash == r.datasetHash ||
		(r.cfg.IsDefault() && r.dataset == nil)
	if !compatible {
		return nil, &DatasetMismatchError{Want: r.datasetHash, Got: env.DataframeHash}
	}

	if r.descriptionSet == nil {
		r.descriptionSet = env.DescriptionSet
	} else {
		r.notify(Notice{
			Code:    NoticeFieldPreserved,
			Field:   "description_set",
			Message: "the report already holds a description set; the loaded one is ignored",
		})
	}
	if r.reportTree == nil {
		r.reportTree = env.Report
	} else {
		r.notify(Notice{
			Code:    NoticeFieldPreserved,
			Field:   "report",
			Message: "the report already holds a rendered tree; the loaded one is ignored",
		})
	}

	if !ignoreConfig {
		r.cfg = MergeConfig(r.cfg, *env.Config)
	}

	if env.DescriptionSet != nil && env.DescriptionSet.Package.Version != Version {
		r.notify(Notice{
			Code: NoticeVersionSkew,
			Message: fmt.Sprintf(
				"snapshot was written by library version %s, currently running %s",
				env.DescriptionSet.Package.Version, Version,
			),
		})
	}

	r.datasetHash = env.DataframeHash
	r.title = env.Title
	return r, nil
}

func (r *Report) notify(n Notice) {
	if r.sink == nil {
		return
	}
	r.sink.Notify(n)
}
