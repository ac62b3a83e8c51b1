// Provides the description of monitored Oracle targets.
//
// A target is a host and port plus exactly one identity telling how the instance is addressed:
// a tnsnames alias, a service descriptor, a raw SID or nothing at all.
//
// * `types.go` defines the scalar value types.
// * `identity.go` defines the identity variants and the precedence used to resolve them.
// * `target.go` and `connstr.go` render Easy-Connect and TNS descriptor connection strings.
// * `config.go` and `yaml.go` read target definitions from YAML files.
// * `sample.targets.yaml` is a sample configuration file.
package targets
