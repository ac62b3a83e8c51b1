package cmdopts

import (
	"context"
	"fmt"
	"slices"

	"github.com/cybertec-postgresql/orawatch/internal/discovery"
)

type SIDsCommand struct {
	owner   *Options
	Pattern string `long:"pattern" description:"Regular expression matching PMON process names, --pmon-pattern if not set"`
	Expect  bool   `long:"expect" description:"Compare running SIDs with the ones of configured targets"`
}

func NewSIDsCommand(owner *Options) *SIDsCommand {
	return &SIDsCommand{owner: owner}
}

func (cmd *SIDsCommand) Execute(args []string) error {
	ctx := context.Background()
	scanner, err := cmd.owner.Scanner(cmd.Pattern)
	if err != nil {
		return err
	}
	found := scanner.FindSIDs(ctx)
	w := cmd.owner.output()
	if !cmd.Expect {
		for _, sid := range found.Sorted() {
			fmt.Fprintln(w, sid)
		}
		cmd.owner.CompleteCommand(ExitCodeOK)
		return nil
	}
	cs, err := cmd.owner.readTargets(ctx, args)
	if err != nil {
		return err
	}
	missing, unexpected := discovery.ReconcileTargets(cs.Targets(), found)
	for _, sid := range found.Sorted() {
		if !slices.Contains(unexpected, sid) {
			fmt.Fprintf(w, "OK:\t%s\n", sid)
		}
	}
	for _, sid := range missing {
		fmt.Fprintf(w, "MISSING:\t%s\n", sid)
	}
	for _, sid := range unexpected {
		fmt.Fprintf(w, "UNEXPECTED:\t%s\n", sid)
	}
	code := ExitCodeOK
	if len(missing) > 0 {
		code = ExitCodeCmdError
	}
	cmd.owner.CompleteCommand(code)
	return nil
}
