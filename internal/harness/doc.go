// Package harness replays scripted operator sessions against the form.
//
// A scenario drives a fresh in-memory store through the same actions the
// window offers (add, search, select, cure) and checks the notices raised
// and the final grid.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: jane_lifecycle
//	description: "Two patients, one cured"
//	steps:
//	  - add: { name: "Jane Doe", code: "P001", details: "flu" }
//	  - search: "Jane"
//	  - select: 1     # zero-based row of the displayed grid
//	  - cure: true
//	expect:
//	  notices:
//	    - { kind: success, message: "Record added successfully as Active." }
//	  rows:
//	    - { id: 1, status: Cured }
//	  records: 1
//
// Each step names exactly one action. Files are decoded strictly (unknown
// fields are rejected) and then checked against an embedded CUE schema.
//
// # Expectations
//
//   - notices: every notice raised during the run, in order (kind, and
//     message when given)
//   - rows: the final grid, row for row; only fields given are compared
//   - records: total rows in the store at the end
//
// # Deterministic Testing
//
// The harness uses:
//   - In-memory SQLite database (isolated per run)
//   - testutil.DeterministicClock for record timestamps
//   - a fixed session token
//
// so the text trace of a run is byte-identical across runs and can be
// compared with a golden file (see RunWithGolden).
package harness
