// Package gen turns a generation plan into source fragments on disk.
//
// Generation approach uses text/template over the shape registry, with
// change-aware emission so unchanged fragments keep their mtime.
//
// Run stages:
//   - Enumerate contexts (package plan)
//   - Instantiate one fragment per context
//   - Emit the fixed struct wrapper fragments
//   - Write every fragment through WriteIfDifferent
//   - Aggregate all fragment paths into the sorted include manifest
package gen
