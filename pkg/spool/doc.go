// Package spool keeps a durable local history of emitted metrics in
// SQLite.
//
// The model-server frontend scrapes worker stdout for metric lines; the
// spool is the agent-side complement, letting an operator inspect what
// was emitted after the fact (and letting the agent prune old history
// on a schedule). One row per emitted metric, dimensions stored as
// JSON, WAL mode for concurrent readers.
package spool
