package sinks

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cybertec-postgresql/orawatch/internal/planner"
)

// failures are reported inside the instance section
const failureHeader = "<<<oracle_instance:sep(124)>>>"

// TextWriter prints the plan in the line oriented agent format: a header line per
// section followed by a comment naming the instance and the statements to run.
type TextWriter struct {
	out io.Writer
	sync.Mutex
}

func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{out: out}
}

func (tw *TextWriter) Write(res planner.Results) error {
	tw.Lock()
	defer tw.Unlock()
	w := bufio.NewWriter(tw.out)
	for _, work := range res.Works {
		for _, iw := range work.Instances {
			for _, item := range iw.Items {
				fmt.Fprintln(w, item.Header)
				fmt.Fprintf(w, "-- spot=%s instance=%s\n", work.Spot.Name, iw.Instance)
				for _, q := range item.Queries {
					fmt.Fprintln(w, strings.TrimSpace(q.SQL))
					fmt.Fprintln(w, "/")
				}
			}
		}
	}
	if len(res.Failures) > 0 {
		fmt.Fprintln(w, failureHeader)
		for _, f := range res.Failures {
			fmt.Fprintln(w, f.Err.Error())
		}
	}
	return w.Flush()
}
