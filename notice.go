package snap

import (
	"fmt"
	"sync"
)

// NoticeCode classifies an advisory emitted during a load.
type NoticeCode string

const (
	// NoticeFieldPreserved marks a snapshot field skipped because the target
	// report already holds a value for it.
	NoticeFieldPreserved NoticeCode = "field_preserved"
	// NoticeVersionSkew marks a snapshot written by a different library
	// version than the one running.
	NoticeVersionSkew NoticeCode = "version_skew"
)

// Notice is a non-fatal advisory produced while merging a snapshot. Notices
// never abort a load.
type Notice struct {
	Code    NoticeCode
	Field   string
	Message string
}

func (n Notice) String() string {
	if n.Field == "" {
		return fmt.Sprintf("%s: %s", n.Code, n.Message)
	}
	return fmt.Sprintf("%s (%s): %s", n.Code, n.Field, n.Message)
}

// NoticeSink receives load advisories.
type NoticeSink interface {
	Notify(Notice)
}

// NoticeSinkFunc adapts a function to NoticeSink.
type NoticeSinkFunc func(Notice)

// Notify implements NoticeSink.
func (f NoticeSinkFunc) Notify(n Notice) {
	if f != nil {
		f(n)
	}
}

type noopNoticeSink struct{}

func (noopNoticeSink) Notify(Notice) {}

// CollectorSink accumulates notices for later inspection. Safe for
// concurrent use.
type CollectorSink struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements NoticeSink.
func (s *CollectorSink) Notify(n Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
}

// Notices returns a copy of everything collected so far.
func (s *CollectorSink) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

// Reset discards collected notices.
func (s *CollectorSink) Reset() {
	s.mu.Lock()
	s.notices = nil
	s.mu.Unlock()
}
