// Package reembed recomputes the vectors of every stored chunk, typically
// after switching embedding model.
//
// Chunks are walked in batches, embedded with retry and exponential backoff,
// normalized to unit length and written back. Progress is reported to a writer.
package reembed
