// Package fs abstracts the file system operations used by the local blob
// store so tests can inject I/O failures.
//
//   - [LocalFS] delegates to the os package.
//   - [FaultyFS] wraps another FileSystem and fails writes, syncs, closes
//     or renames on files whose name matches a rule.
//
// Calls do not take a context; local file operations cannot be interrupted
// at the syscall level.
package fs
