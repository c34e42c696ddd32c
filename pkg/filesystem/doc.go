// Package filesystem provides implementations of the types.FS interface.
//
// Two implementations are available:
//   - NewOS: the real OS filesystem, used in production
//   - NewAferoFS / NewMemory: afero-backed, used for in-memory testing
package filesystem
