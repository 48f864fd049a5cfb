// Package main hosts the vynlassets CLI entrypoint and command graph.
//
// The Cobra command tree exposes the two publishing jobs (friends, social),
// a combined run, a read-only preflight check, the run history, and config
// scaffolding. Config resolution, logger construction, and the run lock are
// centralized in commandContext so subcommands only choose which jobs to run
// and how to render the outcome.
package main
