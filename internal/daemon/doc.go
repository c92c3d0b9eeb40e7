// Package daemon coordinates the long-running ReelForge process.
//
// It wires configuration, queue storage, and the workflow manager into a
// single lifecycle with flock-based locking to prevent multiple instances.
// On startup stuck in-flight projects are rolled back to their stage start
// status; on shutdown any remaining in-flight work is marked failed so the
// queue never reports phantom progress.
//
// Keep orchestration logic here: individual workflow stages live in their
// respective packages while the daemon focuses on startup, shutdown, and
// queue maintenance helpers.
package daemon
