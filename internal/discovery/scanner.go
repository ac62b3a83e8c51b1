package discovery

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// DefaultPattern matches PMON processes of database, ASM and XE instances,
// the second group captures the SID
const DefaultPattern = `^(asm_pmon_|ora_pmon_|xe_pmon_|db_pmon_)(.+)$`

var ErrPattern = errors.New("invalid PMON pattern")

// SIDSet is a deduplicated set of SIDs
type SIDSet map[targets.Sid]struct{}

func NewSIDSet(sids ...targets.Sid) SIDSet {
	s := make(SIDSet, len(sids))
	for _, sid := range sids {
		s[sid] = struct{}{}
	}
	return s
}

func (s SIDSet) Contains(sid targets.Sid) bool {
	_, ok := s[sid]
	return ok
}

// Sorted returns the SIDs in lexical order
func (s SIDSet) Sorted() []targets.Sid {
	return slices.Sorted(maps.Keys(s))
}

// Scanner finds SIDs of running instances. It holds no state besides its pattern
// and may be used concurrently.
type Scanner struct {
	pattern *regexp.Regexp
	lister  ProcessLister
}

// NewScanner compiles the pattern, DefaultPattern if empty. The pattern must have
// at least two capture groups, the second one yields the SID.
func NewScanner(pattern string, lister ProcessLister) (*Scanner, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPattern, err)
	}
	if re.NumSubexp() < 2 {
		return nil, fmt.Errorf("%w: %q needs at least 2 capture groups, has %d", ErrPattern, pattern, re.NumSubexp())
	}
	if lister == nil {
		lister = GopsutilLister{}
	}
	return &Scanner{pattern: re, lister: lister}, nil
}

// FindSIDs scans one snapshot of the process table. Processes whose command line
// cannot be read or does not match are skipped. A process table that cannot be
// listed yields an empty set.
func (s *Scanner) FindSIDs(ctx context.Context) SIDSet {
	l := log.GetLogger(ctx)
	sids := make(SIDSet)
	procs, err := s.lister.Processes(ctx)
	if err != nil {
		l.WithError(err).Warning("cannot list processes")
		return sids
	}
	for _, p := range procs {
		cmdline, err := p.CmdlineSliceWithContext(ctx)
		if err != nil || len(cmdline) == 0 {
			continue
		}
		if sid, ok := s.match(cmdline[len(cmdline)-1]); ok {
			l.WithField("sid", sid).Debug("PMON process found")
			sids[sid] = struct{}{}
		}
	}
	return sids
}

func (s *Scanner) match(token string) (targets.Sid, bool) {
	token = token[strings.LastIndexByte(token, ' ')+1:]
	token = token[strings.LastIndexByte(token, '/')+1:]
	m := s.pattern.FindStringSubmatch(token)
	if m == nil || m[2] == "" {
		return "", false
	}
	return targets.Sid(m[2]), true
}

// FindSIDs scans the host process table for PMON processes
func FindSIDs(ctx context.Context, pattern string) (SIDSet, error) {
	s, err := NewScanner(pattern, GopsutilLister{})
	if err != nil {
		return nil, err
	}
	return s.FindSIDs(ctx), nil
}
