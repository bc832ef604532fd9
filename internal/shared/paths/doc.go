// Package paths provides the low-level path predicates the filesystem layer
// builds on: existence and kind checks, canonicalization, home-shorthand
// detection, and temp-like directory detection.
//
// Everything here answers a single question about one path and performs at
// most one or two stat calls. The interesting policy (size ceilings, safe
// permissions, glob recursion bounds) lives in the filesystem provider; this
// package deliberately stays mechanism-only so those policies remain
// testable against plain temp directories.
package paths
