// Package planner turns opened spots into per-instance work lists.
//
// Every spot is asked for its instances and closed right after. Spots failing discovery
// end up in Results.Failures, all others in Results.Works, both in input order.
package planner
