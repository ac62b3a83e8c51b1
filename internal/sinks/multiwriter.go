package sinks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cybertec-postgresql/orawatch/internal/planner"
)

// Writer is an interface that publishes planning results
type Writer interface {
	Write(res planner.Results) error
}

// MultiWriter ensures the simultaneous publishing of results to several sinks.
type MultiWriter struct {
	writers []Writer
	sync.Mutex
}

// NewSinkWriter creates and returns a writer for every sink URI, wrapped into MultiWriter if needed.
func NewSinkWriter(ctx context.Context, opts *CmdOpts) (w Writer, err error) {
	if len(opts.Sinks) == 0 {
		return nil, errors.New("no sinks specified for planning results")
	}
	mw := &MultiWriter{}
	for _, s := range opts.Sinks {
		scheme, path, found := strings.Cut(s, "://")
		if !found || scheme == "" || path == "" && scheme != "stdout" {
			return nil, fmt.Errorf("malformed sink URI %s", s)
		}
		switch scheme {
		case "stdout":
			w = NewTextWriter(os.Stdout)
		case "jsonfile":
			w, err = NewJSONWriter(ctx, path)
		case "prometheus":
			w, err = NewPrometheusWriter(ctx, path)
		case "promfile":
			w, err = NewPrometheusFileWriter(ctx, path)
		default:
			return nil, fmt.Errorf("unknown schema %s in sink URI %s", scheme, s)
		}
		if err != nil {
			return nil, err
		}
		mw.AddWriter(w)
	}
	if len(mw.writers) == 1 {
		return mw.writers[0], nil
	}
	return mw, nil
}

func (mw *MultiWriter) AddWriter(w Writer) {
	mw.Lock()
	mw.writers = append(mw.writers, w)
	mw.Unlock()
}

func (mw *MultiWriter) Write(res planner.Results) (err error) {
	for _, w := range mw.writers {
		err = errors.Join(err, w.Write(res))
	}
	return
}
