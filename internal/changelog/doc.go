// Package changelog implements the History.txt changelog engine for historian.
//
// This package implements:
//   - parsing of the line-oriented changelog grammar into current state
//   - semantic version bumps derived from pending change significance
//   - rendering of pending changes and release entries
//   - the prepend-and-truncate rewrite that cuts releases
//   - read-only queries over the released history
//
// The grammar recognized is:
//
//	== 1.2.3 Release Name - 2010/12/12   release header
//	== In Progress                       unreleased marker
//	=== Major Changes                    significance section
//	* message                            change entry
//
// The Engine works against any Storage (an *os.File opened read-write, or
// the in-memory buffer from internal/store) and owns it for the session.
package changelog
