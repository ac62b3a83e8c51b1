package targets

import (
	"fmt"
	"strings"
)

// Target is one monitored instance endpoint. It is a value type, none of its methods modify it.
type Target struct {
	Host     HostName
	Port     Port
	Auth     Authentication
	Identity Identity
}

func (t Target) identity() Identity {
	if t.Identity == nil {
		return Undefined{}
	}
	return t.Identity
}

func (t Target) ServiceName() (ServiceName, bool)     { return ServiceNameOf(t.identity()) }
func (t Target) ServiceType() (ServiceType, bool)     { return ServiceTypeOf(t.identity()) }
func (t Target) InstanceName() (InstanceName, bool)   { return InstanceNameOf(t.identity()) }
func (t Target) DescriptorSid() (DescriptorSid, bool) { return DescriptorSidOf(t.identity()) }
func (t Target) StandaloneSid() (Sid, bool)           { return StandaloneSidOf(t.identity()) }
func (t Target) Alias() (InstanceAlias, bool)         { return AliasOf(t.identity()) }

// IsDefined returns false when no alias, service name or sid was configured.
// A variant built by hand with an empty key field is undefined as well.
func (t Target) IsDefined() bool {
	switch id := t.identity().(type) {
	case Alias:
		return id.Alias > ""
	case StandaloneSid:
		return id.Sid > ""
	case Descriptor:
		return id.ServiceName > ""
	default:
		return false
	}
}

// DisplayName is the upper-cased name used in logs and agent output, never on the wire
func (t Target) DisplayName() string {
	var name string
	switch id := t.identity().(type) {
	case Alias:
		name = id.Alias.String()
	case StandaloneSid:
		name = id.Sid.String()
	case Descriptor:
		name = id.ServiceName.String()
		if id.InstanceName > "" {
			name = id.InstanceName.String()
		}
	}
	if name == "" {
		name = "undefined"
	}
	return strings.ToUpper(name)
}

// LocalSid returns the SID a PMON process of this target would carry
func (t Target) LocalSid() (Sid, bool) {
	if sid, ok := t.StandaloneSid(); ok {
		return sid, true
	}
	if sid, ok := t.DescriptorSid(); ok {
		return Sid(sid), true
	}
	if name, ok := t.InstanceName(); ok {
		return Sid(name), true
	}
	return "", false
}

func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%s", t.DisplayName(), t.Host, t.Port)
}
