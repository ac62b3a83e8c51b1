package targets

import (
	"fmt"
	"strings"
)

const defaultServer = "DEDICATED"

// ConnectionString renders the target in the requested grammar. A non-empty instance
// replaces the configured instance name. The second result is false when the identity
// cannot be expressed in that grammar (undefined target, sid with Easy-Connect).
// Variants with an empty key field count as undefined.
// An alias is returned verbatim regardless of kind and instance.
func (t Target) ConnectionString(instance InstanceName, kind ConnStringKind) (string, bool) {
	if !t.IsDefined() {
		return "", false
	}
	switch id := t.identity().(type) {
	case Alias:
		return id.Alias.String(), true
	case StandaloneSid:
		if kind == EasyConnect {
			return "", false
		}
		return t.tnsString(""), true
	case Descriptor:
		if kind == EasyConnect {
			return t.ezString(instance), true
		}
		return t.tnsString(instance), true
	default:
		return "", false
	}
}

func (t Target) effectiveInstance(instance InstanceName) InstanceName {
	if instance > "" {
		return instance
	}
	name, _ := t.InstanceName()
	return name
}

func appendIf[T ~string](sb *strings.Builder, sep string, value T) {
	if value > "" {
		sb.WriteString(sep)
		sb.WriteString(string(value))
	}
}

// HOST:PORT/SERVICE[:SERVICE_TYPE][/INSTANCE]
func (t Target) ezString(instance InstanceName) string {
	service, _ := t.ServiceName()
	serviceType, _ := t.ServiceType()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%s/%s", t.Host, t.Port, service)
	appendIf(&sb, ":", serviceType)
	appendIf(&sb, "/", t.effectiveInstance(instance))
	return sb.String()
}

func (t Target) tnsString(instance InstanceName) string {
	server := defaultServer
	if st, ok := t.ServiceType(); ok {
		server = strings.ToUpper(st.String())
	}
	parts := []string{fmt.Sprintf("(SERVER = %s)", server)}
	if service, ok := t.ServiceName(); ok {
		parts = append(parts, fmt.Sprintf("(SERVICE_NAME = %s)", service))
		if name := t.effectiveInstance(instance); name > "" {
			parts = append(parts, fmt.Sprintf("(INSTANCE_NAME = %s)", name))
		}
		if sid, ok := t.DescriptorSid(); ok {
			parts = append(parts, fmt.Sprintf("(SID = %s)", sid))
		}
	} else if sid, ok := t.StandaloneSid(); ok {
		parts = append(parts, fmt.Sprintf("(SID = %s)", sid))
	}
	return fmt.Sprintf("(DESCRIPTION = (ADDRESS = (PROTOCOL = TCP)(HOST = %s)(PORT = %s)) (CONNECT_DATA = %s))",
		t.Host, t.Port, strings.Join(parts, " "))
}
