package discovery

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// Process is a single entry of the process table
type Process interface {
	CmdlineSliceWithContext(ctx context.Context) ([]string, error)
}

// ProcessLister takes a snapshot of the process table
type ProcessLister interface {
	Processes(ctx context.Context) ([]Process, error)
}

// GopsutilLister reads the host process table using gopsutil
type GopsutilLister struct{}

func (GopsutilLister) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]Process, len(procs))
	for i, p := range procs {
		res[i] = p
	}
	return res, nil
}
