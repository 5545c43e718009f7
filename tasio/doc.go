// Package tasio provides the abstract byte-buffer interfaces used to move
// optimizer runs, settings, and scripts between processes.
//
// What & why:
//
//	The optimizer core never touches the network. Collaborators (the game
//	host, an external controller) hand it a Writer to fill or a Reader to
//	drain; the wire layout of every serialized object is defined purely by
//	its sequence of field writes, and the matching reader must consume the
//	same fields in the same order.
//
// Guarantees:
//   - Little-endian encoding for all fixed-width values.
//   - Strings are length-prefixed (uint32) with no terminator.
//   - Reads never panic: draining past the end returns ErrShortBuffer.
//   - Buffer implements both Reader and Writer and round-trips exactly.
//
// See optimizer.Run.WriteToBuffer / ReadFromBuffer for the canonical usage.
package tasio
