package cmdopts

import (
	"context"
	"fmt"
	"slices"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

type TargetCommand struct {
	owner   *Options
	List    TargetListCommand    `command:"list" description:"List configured targets with their resolved identity"`
	ConnStr TargetConnStrCommand `command:"connstr" description:"Print connection strings of configured targets"`
}

func NewTargetCommand(owner *Options) *TargetCommand {
	return &TargetCommand{
		owner:   owner,
		List:    TargetListCommand{owner: owner},
		ConnStr: TargetConnStrCommand{owner: owner},
	}
}

// readTargets returns the targets named in args, all enabled targets if args is empty
func (c *Options) readTargets(ctx context.Context, args []string) (targets.Configs, error) {
	if err := c.InitTargetsReader(ctx); err != nil {
		return nil, err
	}
	cs, err := c.TargetsReader.GetTargets()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return cs.Enabled(c.Targets.Groups), nil
	}
	return slices.DeleteFunc(cs, func(cfg targets.Config) bool {
		return !slices.Contains(args, cfg.Name)
	}), nil
}

func identityKind(id targets.Identity) string {
	switch id.(type) {
	case targets.Alias:
		return "alias"
	case targets.Descriptor:
		return "service"
	case targets.StandaloneSid:
		return "sid"
	default:
		return "undefined"
	}
}

type TargetListCommand struct {
	owner *Options
}

func (cmd *TargetListCommand) Execute(args []string) error {
	cs, err := cmd.owner.readTargets(context.Background(), args)
	if err != nil {
		return err
	}
	w := cmd.owner.output()
	for _, cfg := range cs {
		t := cfg.Target()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s:%s\t%s\n", cfg.Name, cfg.Group, t.DisplayName(), t.Host, t.Port, identityKind(t.Identity))
	}
	cmd.owner.CompleteCommand(ExitCodeOK)
	return nil
}

type TargetConnStrCommand struct {
	owner    *Options
	Kind     string `long:"kind" description:"Connection string grammar, --conn-kind if not set" choice:"ez" choice:"tns"`
	Instance string `long:"instance" description:"Instance name replacing the configured one"`
}

func (cmd *TargetConnStrCommand) Execute(args []string) error {
	cs, err := cmd.owner.readTargets(context.Background(), args)
	if err != nil {
		return err
	}
	kind := cmd.owner.Targets.Kind()
	if cmd.Kind > "" {
		kind = targets.ConnStringKind(cmd.Kind)
	}
	w := cmd.owner.output()
	code := ExitCodeOK
	for _, cfg := range cs {
		if s, ok := cfg.Target().ConnectionString(targets.NewInstanceName(cmd.Instance), kind); ok {
			fmt.Fprintf(w, "%s=%s\n", cfg.Name, s)
		} else {
			fmt.Fprintf(w, "FAIL:\t%s (cannot be expressed as %s connection string)\n", cfg.Name, kind)
			code = ExitCodeCmdError
		}
	}
	cmd.owner.CompleteCommand(code)
	return nil
}
