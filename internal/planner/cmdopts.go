package planner

import (
	"time"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// CmdOpts specifies the planning related command-line options
type CmdOpts struct {
	MaxParallelSpots int           `long:"max-parallel-spots" mapstructure:"max-parallel-spots" description:"Number of spots opened and planned concurrently" default:"8" env:"OW_MAX_PARALLEL_SPOTS"`
	Instances        []string      `long:"instance" mapstructure:"instance" description:"Plan only these instances. All discovered instances if not given" env:"OW_INSTANCE" env-delim:","`
	PMONPattern      string        `long:"pmon-pattern" mapstructure:"pmon-pattern" description:"Regular expression matching PMON process names, the second group captures the SID" env:"OW_PMON_PATTERN"`
	Interval         time.Duration `long:"interval" mapstructure:"interval" description:"Repeat planning with this interval until stopped. A single pass if 0" default:"0s" env:"OW_INTERVAL"`
	CheckLocal       bool          `long:"check-local" mapstructure:"check-local" description:"Warn about configured SIDs without a PMON process on this host" env:"OW_CHECK_LOCAL"`
}

func (c CmdOpts) InstanceNames() []targets.InstanceName {
	names := make([]targets.InstanceName, 0, len(c.Instances))
	for _, i := range c.Instances {
		names = append(names, targets.NewInstanceName(i))
	}
	return names
}
