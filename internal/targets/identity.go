package targets

// Identity is the resolved way an instance is addressed. The set of implementations
// is closed: Descriptor, StandaloneSid, Alias and Undefined.
type Identity interface {
	isIdentity()
}

type (
	// Descriptor addresses an instance by service name. ServiceType, InstanceName and Sid
	// are optional, the zero value means absent.
	Descriptor struct {
		ServiceName  ServiceName
		ServiceType  ServiceType
		InstanceName InstanceName
		Sid          DescriptorSid
	}

	// StandaloneSid addresses an instance by SID only
	StandaloneSid struct {
		Sid Sid
	}

	// Alias is a net service name resolved through tnsnames.ora
	Alias struct {
		Alias InstanceAlias
	}

	// Undefined is a target without alias, service name or sid
	Undefined struct{}
)

func (Descriptor) isIdentity()    {}
func (StandaloneSid) isIdentity() {}
func (Alias) isIdentity()         {}
func (Undefined) isIdentity()     {}

// IdentityBuilder collects optional identity inputs and resolves them with Build.
// Identities should be constructed through it, hand-built variants with an empty
// key field are treated as undefined by Target.
type IdentityBuilder struct {
	alias        InstanceAlias
	serviceName  ServiceName
	serviceType  ServiceType
	instanceName InstanceName
	sid          string
}

// NewIdentityBuilder returns a builder without any inputs, Build yields Undefined
func NewIdentityBuilder() *IdentityBuilder {
	return &IdentityBuilder{}
}

// Alias sets the net service name, it takes precedence over all other inputs
func (b *IdentityBuilder) Alias(alias InstanceAlias) *IdentityBuilder {
	b.alias = alias
	return b
}

// ServiceName sets the service, producing a Descriptor unless an alias is set
func (b *IdentityBuilder) ServiceName(name ServiceName) *IdentityBuilder {
	b.serviceName = name
	return b
}

// ServiceType is only kept for a Descriptor
func (b *IdentityBuilder) ServiceType(typ ServiceType) *IdentityBuilder {
	b.serviceType = typ
	return b
}

// InstanceName is only kept for a Descriptor, use NewInstanceName to build the value
func (b *IdentityBuilder) InstanceName(name InstanceName) *IdentityBuilder {
	b.instanceName = name
	return b
}

// Sid sets the raw SID. It becomes the DescriptorSid when a service name is set,
// a StandaloneSid otherwise.
func (b *IdentityBuilder) Sid(sid string) *IdentityBuilder {
	b.sid = sid
	return b
}

// Build resolves the inputs, first match wins: alias, service name, sid.
// Inputs not used by the chosen variant are dropped.
func (b *IdentityBuilder) Build() Identity {
	switch {
	case b.alias > "":
		return Alias{Alias: b.alias}
	case b.serviceName > "":
		return Descriptor{
			ServiceName:  b.serviceName,
			ServiceType:  b.serviceType,
			InstanceName: b.instanceName,
			Sid:          DescriptorSid(b.sid),
		}
	case b.sid > "":
		return StandaloneSid{Sid: Sid(b.sid)}
	default:
		return Undefined{}
	}
}

func asDescriptor(id Identity) (Descriptor, bool) {
	d, ok := id.(Descriptor)
	return d, ok
}

// The *Of accessors below return ok=false for every variant not carrying the value.
// Optional descriptor fields also report ok=false when empty.

// ServiceNameOf returns the service name of a Descriptor
func ServiceNameOf(id Identity) (ServiceName, bool) {
	if d, ok := asDescriptor(id); ok {
		return d.ServiceName, true
	}
	return "", false
}

// ServiceTypeOf returns the service type of a Descriptor
func ServiceTypeOf(id Identity) (ServiceType, bool) {
	if d, ok := asDescriptor(id); ok && d.ServiceType > "" {
		return d.ServiceType, true
	}
	return "", false
}

// InstanceNameOf returns the instance name of a Descriptor
func InstanceNameOf(id Identity) (InstanceName, bool) {
	if d, ok := asDescriptor(id); ok && d.InstanceName > "" {
		return d.InstanceName, true
	}
	return "", false
}

// DescriptorSidOf returns the sid carried inside a Descriptor
func DescriptorSidOf(id Identity) (DescriptorSid, bool) {
	if d, ok := asDescriptor(id); ok && d.Sid > "" {
		return d.Sid, true
	}
	return "", false
}

// StandaloneSidOf returns the sid of a StandaloneSid, a Descriptor sid is not reported
func StandaloneSidOf(id Identity) (Sid, bool) {
	if s, ok := id.(StandaloneSid); ok {
		return s.Sid, true
	}
	return "", false
}

// AliasOf returns the alias of an Alias
func AliasOf(id Identity) (InstanceAlias, bool) {
	if a, ok := id.(Alias); ok {
		return a.Alias, true
	}
	return "", false
}
