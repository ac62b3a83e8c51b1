package planner

import (
	"fmt"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// driver specific prefix removed from messages to keep the output stable across driver versions
const ociErrorPrefix = "OCI Error: "

// DiscoveryError is returned for a spot whose instances could not be listed.
// Its message is the failure line reported to the monitoring server.
type DiscoveryError struct {
	Target targets.Target
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("REMOTE_INSTANCE_%s|FAILURE|WARNING: %s",
		e.Target.DisplayName(), strings.ReplaceAll(e.Err.Error(), ociErrorPrefix, ""))
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
