// Command agent scans host filesystem state through the safety layer.
//
// Patterns given as arguments are resolved (SQL % wildcards and recursive
// ** are accepted), every match is gated through the permission validator,
// and surviving files are read under the configured size ceilings. Results
// are reported as structured log lines.
//
// Configuration comes from the environment: READ_MAX, READ_USER_MAX,
// ALLOW_UNSAFE, DISABLE_FORENSIC, LOG_LEVEL, LOG_DEV.
package main
