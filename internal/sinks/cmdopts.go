package sinks

// CmdOpts specifies where planning results are published
type CmdOpts struct {
	Sinks []string `long:"sink" mapstructure:"sink" description:"URI where planning results will be published, can be used multiple times" default:"stdout://" env:"OW_SINK" env-delim:","`
}
