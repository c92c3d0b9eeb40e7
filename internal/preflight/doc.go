// Package preflight provides readiness checks for external services
// and filesystem paths that Reelforge depends on.
//
// These checks run in two contexts:
//   - The workflow manager calls RunAll before processing each queue item.
//     If any check fails, the lane halts to avoid wasting a long render on
//     a doomed run.
//   - The CLI "reelforge status" command uses individual check functions
//     (CheckLLM, CheckDirectoryAccess) to display service health.
//
// Checks gated by a config toggle are skipped when the feature is disabled.
package preflight
