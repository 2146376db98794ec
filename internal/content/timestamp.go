package content

import "time"

// Timestamp is a UTC instant. A nil *Timestamp means the date is unknown.
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC. It returns nil when t is nil.
func NewTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{Time: t.UTC()}
}

// String renders the instant as RFC 3339.
func (ts Timestamp) String() string {
	return ts.UTC().Format(time.RFC3339)
}
