package sections

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// Affinity pairs what an instance can serve with what a section requires
type Affinity string

const (
	AffinityAll Affinity = "all"
	AffinityDB  Affinity = "db"
	AffinityASM Affinity = "asm"
)

func (a Affinity) IsValid() bool {
	return a == AffinityAll || a == AffinityDB || a == AffinityASM
}

// AffinityOf returns the affinity an instance advertises, ASM instances are named +ASM[n]
func AffinityOf(instance targets.InstanceName) Affinity {
	if strings.HasPrefix(string(instance), "+ASM") {
		return AffinityASM
	}
	return AffinityDB
}

// InstanceInfo describes a running instance as reported by GV$INSTANCE
type InstanceInfo struct {
	Name    targets.InstanceName `json:"name"`
	Version string               `json:"version"`
	Edition string               `json:"edition,omitempty"`
	Host    string               `json:"host,omitempty"`
	Status  string               `json:"status,omitempty"`
}

func (i InstanceInfo) Affinity() Affinity {
	return AffinityOf(i.Name)
}

// IsSuitableAffinity tells if the instance can serve a section requiring the given affinity.
// Every instance satisfies AffinityAll.
func (i InstanceInfo) IsSuitableAffinity(required Affinity) bool {
	return required == AffinityAll || required == i.Affinity()
}

// MajorVersion returns the leading number of the version, e.g. 19 for 19.0.0.0.0
func (i InstanceInfo) MajorVersion() int {
	major, _, _ := strings.Cut(i.Version, ".")
	v, err := strconv.Atoi(major)
	if err != nil {
		return 0
	}
	return v
}

// BindParam is a named value bound to :name placeholders
type BindParam struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ParseBindParam parses name=value
func ParseBindParam(s string) (BindParam, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimPrefix(strings.TrimSpace(name), ":")
	if !ok || name == "" {
		return BindParam{}, fmt.Errorf("invalid bind parameter %q, expected name=value", s)
	}
	return BindParam{Name: name, Value: value}, nil
}

// Query is a single statement ready to be executed against an instance
type Query struct {
	SQL    string      `json:"sql"`
	Params []BindParam `json:"params,omitempty"`
}

type SQLs map[int]string

type Section struct {
	Name        string   `yaml:"name"`
	Affinity    Affinity `yaml:"affinity"`
	Separator   string   `yaml:"sep,omitempty"`
	Description string   `yaml:"description,omitempty"`
	SQLs        SQLs     `yaml:"sqls"`
}

type Sections []Section

const defaultSeparator = '|'

// GetSQL returns the statement for the given major version or the closest lower one
func (s Section) GetSQL(version int) string {
	if val, ok := s.SQLs[version]; ok {
		return val
	}
	var closestVersion int
	for v := range s.SQLs {
		if v < version && (closestVersion == 0 || v > closestVersion) {
			closestVersion = v
		}
	}
	return s.SQLs[closestVersion]
}

func (s Section) separator() byte {
	if s.Separator == "" {
		return defaultSeparator
	}
	return s.Separator[0]
}

// WorkHeader is the line announcing the section output, e.g. <<<oracle_instance:sep(124)>>>
func (s Section) WorkHeader() string {
	return fmt.Sprintf("<<<oracle_%s:sep(%d)>>>", s.Name, s.separator())
}

// FindQueries returns the statements to run for the instance, nil if there is nothing to do.
// Only bind parameters referenced in a statement are passed along with it.
func (s Section) FindQueries(info InstanceInfo, params []BindParam) []Query {
	var queries []Query
	for _, stmt := range splitStatements(s.GetSQL(info.MajorVersion())) {
		queries = append(queries, Query{SQL: stmt, Params: referencedParams(stmt, params)})
	}
	return queries
}

var blockStart = regexp.MustCompile(`(?i)^(begin|declare)\b`)

// splitStatements splits a script on lines holding a single slash, SQL*Plus style.
// Trailing semicolons are removed from plain statements but kept on PL/SQL blocks.
func splitStatements(script string) (stmts []string) {
	var current []string
	flush := func() {
		stmt := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if !blockStart.MatchString(stmt) {
			stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
		}
		if stmt > "" {
			stmts = append(stmts, stmt)
		}
	}
	for line := range strings.Lines(script) {
		if strings.TrimSpace(line) == "/" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, "\r\n"))
	}
	flush()
	return
}

func referencedParams(stmt string, params []BindParam) (res []BindParam) {
	for _, p := range params {
		re, err := regexp.Compile(`:` + regexp.QuoteMeta(p.Name) + `\b`)
		if err == nil && re.MatchString(stmt) {
			res = append(res, p)
		}
	}
	return
}

// Select returns the named sections in the given order, all of them if no names given
func (ss Sections) Select(names []string) (Sections, error) {
	if len(names) == 0 {
		return ss, nil
	}
	res := make(Sections, 0, len(names))
	for _, name := range names {
		i := ss.index(name)
		if i < 0 {
			return nil, fmt.Errorf("section '%s' not found", name)
		}
		res = append(res, ss[i])
	}
	return res, nil
}

func (ss Sections) index(name string) int {
	for i, s := range ss {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (ss Sections) Validate() error {
	names := map[string]any{}
	for _, s := range ss {
		if s.Name == "" {
			return fmt.Errorf("section without name found")
		}
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("duplicate section with name '%s' found", s.Name)
		}
		if !s.Affinity.IsValid() {
			return fmt.Errorf("section '%s' has unknown affinity '%s'", s.Name, s.Affinity)
		}
		names[s.Name] = nil
	}
	return nil
}

type Reader interface {
	GetSections() (Sections, error)
}
