// Package preflight provides readiness checks for the external tools,
// font files, and API credentials that calvid depends on.
//
// These checks run in two contexts:
//   - The CLI "calvid status" command uses RunAll, CheckSystemDeps, and
//     ProbeEncoder to display environment health in one table.
//   - Individual check functions (CheckFileAccess, CheckOpenAI) run before
//     long batch work so a missing font or bad key fails in milliseconds
//     instead of partway through a few hundred renders.
//
// Checks for unconfigured paths are skipped.
package preflight
