// # Sections
//
// A section is one category of monitoring checks, e.g. tablespaces or ASM disk groups.
// It declares the affinity an instance must satisfy and holds the SQL to run, keyed by
// the lowest Oracle major version the statement works with.
//
// # Content
//
//   - `types.go` defines sections, affinities, instance info and queries.
//   - `yaml.go` reads section definitions from YAML files.
//   - `sections.yaml` holds the default sections.
package sections
