package discovery

import (
	"slices"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// Reconcile compares configured SIDs against the ones found running. Comparison
// ignores case. Missing are configured but not running, unexpected are running
// but not configured. Both are sorted.
func Reconcile(expected []targets.Sid, found SIDSet) (missing, unexpected []targets.Sid) {
	running := make(map[string]struct{}, len(found))
	for sid := range found {
		running[strings.ToUpper(string(sid))] = struct{}{}
	}
	configured := make(map[string]struct{}, len(expected))
	for _, sid := range expected {
		key := strings.ToUpper(string(sid))
		configured[key] = struct{}{}
		if _, ok := running[key]; !ok && !slices.Contains(missing, sid) {
			missing = append(missing, sid)
		}
	}
	for _, sid := range found.Sorted() {
		if _, ok := configured[strings.ToUpper(string(sid))]; !ok {
			unexpected = append(unexpected, sid)
		}
	}
	slices.Sort(missing)
	return
}

// ReconcileTargets compares the local SIDs of targets with the running ones
func ReconcileTargets(ts []targets.Target, found SIDSet) (missing, unexpected []targets.Sid) {
	expected := make([]targets.Sid, 0, len(ts))
	for _, t := range ts {
		if sid, ok := t.LocalSid(); ok {
			expected = append(expected, sid)
		}
	}
	return Reconcile(expected, found)
}
