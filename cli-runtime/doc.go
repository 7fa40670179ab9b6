// Package cliruntime groups the command line layer of the tutor.
//
// It includes:
//   - engine: keyword check, namespace extraction and action routing
//   - handlers: one pure function per action over the cluster store
//   - flags and options: token level flag extraction and typed option parsing
//   - printers: tables, describe reports, rollout history, json, yaml and name output
//   - builders: fluent resource construction and selection
package cliruntime
