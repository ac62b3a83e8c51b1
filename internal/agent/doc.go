// Package agent runs one planning pass: it reads the configuration, opens all enabled
// targets, plans the work for their instances and publishes the results to the sinks.
package agent
