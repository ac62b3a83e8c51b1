package cmdopts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/discovery"
	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/sinks"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
	flags "github.com/jessevdk/go-flags"
)

const (
	ExitCodeOK int32 = iota
	ExitCodeConfigError
	ExitCodeCmdError
	ExitCodeConnectError
	ExitCodeUserCancel
	ExitCodeFatalError
)

// Options contains the command line options.
type Options struct {
	Targets  targets.CmdOpts  `group:"Targets"`
	Sections sections.CmdOpts `group:"Sections"`
	Planner  planner.CmdOpts  `group:"Planner"`
	Sinks    sinks.CmdOpts    `group:"Sinks"`
	Logging  log.CmdOpts      `group:"Logging"`
	Help     bool

	TargetsReader  targets.Reader
	SectionsReader sections.Reader
	SinksWriter    sinks.Writer
	// ProcessLister is used by the PMON scanner, the host process table if nil
	ProcessLister discovery.ProcessLister

	ExitCode         int32
	CommandCompleted bool

	OutputWriter io.Writer
}

func addCommands(parser *flags.Parser, opts *Options) {
	_, _ = parser.AddCommand("target", "Inspect configured targets", "", NewTargetCommand(opts))
	_, _ = parser.AddCommand("sids", "List SIDs of Oracle instances running on this host", "", NewSIDsCommand(opts))
}

// New returns a new instance of Options and immediately executes the subcommand if specified.
// Subcommands are responsible for setting exit code.
// Function prints help message only if options are incorrect. If subcommand is executed
// but fails, function outputs the error message only, indicating that some argument
// values might be incorrect, e.g. wrong file name, lack of privileges, etc.
func New(writer io.Writer) (cmdOpts *Options, err error) {
	cmdOpts = new(Options)
	return cmdOpts, cmdOpts.parse(writer, os.Args[1:])
}

func (c *Options) parse(writer io.Writer, args []string) error {
	parser := flags.NewParser(c, flags.HelpFlag)
	parser.SubcommandsOptional = true // if no command specified, plan the work
	c.OutputWriter = writer
	addCommands(parser, c)
	nonParsedArgs, err := parser.ParseArgs(args) // parse and execute subcommand if any
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			c.Help = true
		}
		if !flags.WroteHelp(err) && !c.CommandCompleted && writer != nil {
			parser.WriteHelp(writer)
		}
		return err
	}
	if c.CommandCompleted { // subcommand executed, nothing to do more
		return nil
	}
	if len(nonParsedArgs) > 0 { // we don't expect any non-parsed arguments
		return fmt.Errorf("unknown argument(s): %v", nonParsedArgs)
	}
	return c.ValidateConfig()
}

func (c *Options) CompleteCommand(code int32) {
	c.CommandCompleted = true
	c.ExitCode = code
}

// Verbose returns true if the debug log is enabled
func (c *Options) Verbose() bool {
	return c.Logging.LogLevel == "debug"
}

func (c *Options) output() io.Writer {
	if c.OutputWriter == nil {
		return os.Stdout
	}
	return c.OutputWriter
}

// InitTargetsReader creates a new targets reader for the --targets file or folder
func (c *Options) InitTargetsReader(ctx context.Context) (err error) {
	if c.Targets.Targets == "" {
		return errors.New("--targets is empty")
	}
	c.TargetsReader, err = targets.NewYAMLTargetsReader(ctx, c.Targets.Targets)
	return
}

// InitSectionsReader creates a new sections reader, built-in sections are used if --sections is empty
func (c *Options) InitSectionsReader(ctx context.Context) (err error) {
	c.SectionsReader, err = sections.NewYAMLSectionsReader(ctx, c.Sections.Sections, c.Sections.SQLDir)
	return
}

// InitConfigReaders creates the configuration readers based on the options.
func (c *Options) InitConfigReaders(ctx context.Context) error {
	return errors.Join(c.InitTargetsReader(ctx), c.InitSectionsReader(ctx))
}

// InitSinkWriter creates a new MultiWriter instance if needed.
func (c *Options) InitSinkWriter(ctx context.Context) (err error) {
	c.SinksWriter, err = sinks.NewSinkWriter(ctx, &c.Sinks)
	return
}

// ValidateConfig checks if the configuration is valid.
func (c *Options) ValidateConfig() error {
	if c.Targets.Targets == "" {
		return errors.New("--targets is empty")
	}
	if c.Planner.MaxParallelSpots < 1 {
		return errors.New("--max-parallel-spots must be >= 1")
	}
	if c.Targets.ConnectTimeout < 0 {
		return errors.New("--connect-timeout must not be negative")
	}
	if c.Planner.Interval < 0 {
		return errors.New("--interval must not be negative")
	}
	if c.Planner.Interval == 0 && slices.ContainsFunc(c.Sinks.Sinks, func(s string) bool {
		return strings.HasPrefix(s, "prometheus://")
	}) {
		return errors.New("prometheus:// sink needs --interval to stay up, use promfile:// for a single pass")
	}
	if _, err := c.Sections.BindParams(); err != nil {
		return err
	}
	if c.Planner.PMONPattern > "" {
		if _, err := discovery.NewScanner(c.Planner.PMONPattern, c.ProcessLister); err != nil {
			return err
		}
	}
	return nil
}

// Scanner returns a PMON scanner for the given pattern, --pmon-pattern if empty
func (c *Options) Scanner(pattern string) (*discovery.Scanner, error) {
	if pattern == "" {
		pattern = c.Planner.PMONPattern
	}
	return discovery.NewScanner(pattern, c.ProcessLister)
}
