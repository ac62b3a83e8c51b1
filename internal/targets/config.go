package targets

import (
	"cmp"
	"fmt"
	"slices"
)

type (
	// Config is a target definition as written in the YAML configuration.
	// Identity inputs are optional, see IdentityBuilder for precedence.
	Config struct {
		Name         string         `yaml:"name"`
		Group        string         `yaml:"group,omitempty"`
		Host         string         `yaml:"host"`
		Port         uint16         `yaml:"port,omitempty"`
		Auth         Authentication `yaml:"authentication"`
		Alias        string         `yaml:"alias,omitempty"`
		ServiceName  string         `yaml:"service_name,omitempty"`
		ServiceType  string         `yaml:"service_type,omitempty"`
		InstanceName string         `yaml:"instance_name,omitempty"`
		Sid          string         `yaml:"sid,omitempty"`
		Disabled     bool           `yaml:"disabled,omitempty"`
	}

	Configs []Config
)

// Target resolves the configuration into a target, applying localhost:1521 defaults
func (c Config) Target() Target {
	return Target{
		Host: HostName(cmp.Or(c.Host, "localhost")),
		Port: cmp.Or(Port(c.Port), DefaultPort),
		Auth: c.Auth,
		Identity: NewIdentityBuilder().
			Alias(InstanceAlias(c.Alias)).
			ServiceName(ServiceName(c.ServiceName)).
			ServiceType(ServiceType(c.ServiceType)).
			InstanceName(NewInstanceName(c.InstanceName)).
			Sid(c.Sid).
			Build(),
	}
}

// Validate names unnamed targets after their display name and rejects duplicates
func (cs Configs) Validate() (Configs, error) {
	names := map[string]any{}
	for i := range cs {
		if cs[i].Name == "" {
			cs[i].Name = cs[i].Target().DisplayName()
		}
		if _, ok := names[cs[i].Name]; ok {
			return nil, fmt.Errorf("duplicate target with name '%s' found", cs[i].Name)
		}
		names[cs[i].Name] = nil
	}
	return cs, nil
}

// Enabled returns enabled targets belonging to one of the groups, all groups if none given
func (cs Configs) Enabled(groups []string) Configs {
	return slices.DeleteFunc(slices.Clone(cs), func(c Config) bool {
		return c.Disabled || len(groups) > 0 && !slices.Contains(groups, c.Group)
	})
}

func (cs Configs) Targets() []Target {
	res := make([]Target, 0, len(cs))
	for _, c := range cs {
		res = append(res, c.Target())
	}
	return res
}
