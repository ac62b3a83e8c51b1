package targets

import "time"

// CmdOpts specifies the targets related command-line options
type CmdOpts struct {
	Targets        string        `short:"t" long:"targets" mapstructure:"targets" description:"File or folder of YAML files containing info on which Oracle instances to monitor" env:"OW_TARGETS"`
	Groups         []string      `short:"g" long:"group" mapstructure:"group" description:"Groups for filtering which targets to monitor. By default all are monitored" env:"OW_GROUP" env-delim:","`
	ConnKind       string        `long:"conn-kind" mapstructure:"conn-kind" description:"Preferred connection string grammar" choice:"ez" choice:"tns" default:"ez" env:"OW_CONN_KIND"`
	ConnectTimeout time.Duration `long:"connect-timeout" mapstructure:"connect-timeout" description:"Timeout for opening a single connection" default:"5s" env:"OW_CONNECT_TIMEOUT"`
	ConnectRetries uint64        `long:"connect-retries" mapstructure:"connect-retries" description:"How many times to retry a failed connection before giving up" default:"3" env:"OW_CONNECT_RETRIES"`
}

// Kind returns the preferred grammar, Easy-Connect if unset or unknown
func (c CmdOpts) Kind() ConnStringKind {
	if k := ConnStringKind(c.ConnKind); k.IsValid() {
		return k
	}
	return EasyConnect
}
