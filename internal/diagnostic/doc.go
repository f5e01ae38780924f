// Package diagnostic provides the typed errors and the problem collector
// shared by every stage of the generator.
//
// Key capabilities:
//   - Typed stage errors matched with errors.Is against the Err* sentinels
//     and with errors.As for the offending identifier
//   - Collection of several plan problems into a single error
package diagnostic
