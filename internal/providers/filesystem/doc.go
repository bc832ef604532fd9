// Package filesystem is the safety layer between the agent and untrusted
// filesystem state.
//
// It covers three coupled concerns:
//
//   - Pattern resolution: SQL-style glob patterns (% wildcards, relative
//     paths) resolved to absolute matches, with bounded recursive expansion
//     that terminates even on cyclic symlink structures.
//   - Bounded reading: reads with owner-dependent size ceilings, optional
//     privilege drop before open, streaming for special files, and optional
//     forensic timestamp preservation.
//   - Permission validation: a default-deny check deciding whether a
//     discovered file may be trusted as loadable content.
//
// All operations are synchronous and share no mutable state beyond the
// process-wide configuration captured at construction, so a single Provider
// is safe for concurrent use. The filesystem itself is not transactional:
// a path may change between a SafePermissions verdict and a subsequent
// ReadFile, and callers must not assume atomicity across calls.
package filesystem
