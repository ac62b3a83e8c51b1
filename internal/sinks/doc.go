// Package sinks provides functionality to publish planning results in different ways.
//
// At the moment we provide sink connectors for
//   - standard output in the agent section format,
//   - Prometheus,
//   - and plain JSON files.
//
// To ensure the simultaneous publishing to several sinks, the `MultiWriter` class is implemented.
package sinks
