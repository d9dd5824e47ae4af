package repository

import (
	"os"
	"time"
)

const (
	defaultFileMode    os.FileMode = 0o644
	defaultDocumentKey             = "scoreboard"
)

// Option applies a configuration option to a document store.
type Option func(*options)

type options struct {
	fileMode    os.FileMode
	documentKey string
	now         func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		fileMode:    defaultFileMode,
		documentKey: defaultDocumentKey,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFileMode sets the permission bits of the JSON file written by FileStore.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		if mode != 0 {
			o.fileMode = mode
		}
	}
}

// WithDocumentKey sets the row key SQLiteStore stores the document under.
func WithDocumentKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.documentKey = key
		}
	}
}

// WithClock overrides the time source used for update timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
