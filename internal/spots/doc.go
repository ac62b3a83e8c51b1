// Package spots opens connections to configured targets.
//
// A spot is an opened connection that can discover the instances reachable through it.
// Closing a spot turns it into a Closed value, which only remembers the target and the
// name the spot was opened under.
package spots
