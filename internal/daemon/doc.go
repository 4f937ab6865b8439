// Package daemon provides the plumbing around the effect's render thread.
// It hot-reloads the configuration file and marshals requests from other
// goroutines, such as D-Bus method calls, onto the frame loop.
package daemon
