package sinks

import (
	"context"
	"encoding/json"

	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"gopkg.in/natefinch/lumberjack.v2"
)

// JSONWriter is a sink that writes planning results to a file in JSON format, one line per spot.
// It supports compression and rotation of output files. The default rotation is based on the file size (100Mb).
type JSONWriter struct {
	ctx context.Context
	lw  *lumberjack.Logger
}

func NewJSONWriter(ctx context.Context, fname string) (*JSONWriter, error) {
	jw := &JSONWriter{
		ctx: ctx,
		lw:  &lumberjack.Logger{Filename: fname, Compress: true},
	}
	go jw.watchCtx()
	return jw, nil
}

func (jw *JSONWriter) Write(res planner.Results) error {
	if jw.ctx.Err() != nil {
		return jw.ctx.Err()
	}
	enc := json.NewEncoder(jw.lw)
	for _, w := range res.Works {
		dataRow := map[string]any{
			"spot":      w.Spot.Name,
			"target":    w.Spot.Target.DisplayName(),
			"instances": w.Instances,
		}
		if err := enc.Encode(dataRow); err != nil {
			return err
		}
	}
	for _, f := range res.Failures {
		dataRow := map[string]any{
			"spot":   f.Spot.Name,
			"target": f.Spot.Target.DisplayName(),
			"error":  f.Err.Error(),
		}
		if err := enc.Encode(dataRow); err != nil {
			return err
		}
	}
	return nil
}

func (jw *JSONWriter) watchCtx() {
	<-jw.ctx.Done()
	jw.lw.Close()
}
