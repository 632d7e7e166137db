// Package form implements the operator-facing form and results grid.
//
// A Form holds what the window shows: three input fields (name, code,
// details), one search field, the grid rows from the most recent search
// and at most one highlighted row. Its actions mirror the window's
// buttons:
//
//   - Add inserts a record from the input fields and clears them. The grid
//     is left alone; it only ever reflects the last search.
//   - Search replaces the grid wholesale with the store's result.
//   - MarkSelectedCured flips the highlighted row to Cured and re-runs the
//     search with whatever text is in the search field.
//
// Operator mistakes (missing fields, no highlighted row, a row already
// Cured) are not errors. They queue a Notice and leave all state as it
// was. Front-ends drain the queue with Notices after each action. An error
// return always means the store itself failed.
//
// MarkSelectedCured reads the id and status from the displayed grid, not
// from the store, so the grid may be stale relative to the database.
//
// A Form is driven by one operator and is not safe for concurrent use.
package form
