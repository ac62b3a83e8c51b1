package targets

import (
	"strconv"
	"strings"
)

type (
	HostName      string
	Port          uint16
	ServiceName   string
	ServiceType   string
	Sid           string
	DescriptorSid string
	InstanceAlias string
	// InstanceName is always upper case, use NewInstanceName to construct it
	InstanceName string
)

const DefaultPort Port = 1521

func NewInstanceName(name string) InstanceName {
	return InstanceName(strings.ToUpper(name))
}

func (h HostName) String() string      { return string(h) }
func (p Port) String() string          { return strconv.Itoa(int(p)) }
func (s ServiceName) String() string   { return string(s) }
func (s ServiceType) String() string   { return string(s) }
func (s Sid) String() string           { return string(s) }
func (s DescriptorSid) String() string { return string(s) }
func (a InstanceAlias) String() string { return string(a) }
func (i InstanceName) String() string  { return string(i) }

// ConnStringKind selects the grammar of a rendered connection string
type ConnStringKind string

const (
	EasyConnect ConnStringKind = "ez"
	TNS         ConnStringKind = "tns"
)

var ConnStringKinds = []ConnStringKind{EasyConnect, TNS}

func (k ConnStringKind) IsValid() bool {
	return k == EasyConnect || k == TNS
}

// Other returns the alternative grammar
func (k ConnStringKind) Other() ConnStringKind {
	if k == TNS {
		return EasyConnect
	}
	return TNS
}

// Authentication holds the credentials used to open a session
type Authentication struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role,omitempty"` // sysdba, sysoper, sysasm...
}

// String hides the password so targets can be logged safely
func (a Authentication) String() string {
	s := a.Username
	if a.Role > "" {
		s += " as " + a.Role
	}
	return s
}
