// Package traj reads trajectory documents.
//
// A trajectory describes a multi-dimensional parameter sweep as a tree of
// nested loops:
//
//	{
//	  init:  { counter: { countAgainst: "'TIME'" } },
//	  loops: [{
//	    vary:  { T: {range: 6}, sampleTemperature: "15.0 + T*5.0" },
//	    loops: [{ vary: { S: {range: 10} } }]
//	  }]
//	}
//
// Documents are written in relaxed JSON (comments, unquoted keys, single
// quotes and trailing commas are accepted) or YAML. Both decode into the same
// value model, with mappings kept in document order as *[Map].
//
// The built-in demonstrations refl and sans are available through
// [Example].
package traj
