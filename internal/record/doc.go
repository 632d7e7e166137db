// Package record defines the health record entity shared by the store,
// the form interface and the front-ends.
//
// A HealthRecord is created Active by the store, may be flipped to Cured
// exactly once, and is never deleted. Its ID and Timestamp are assigned at
// insert and never change afterwards.
package record
