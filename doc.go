// Package buflog is a buffered, rotating file log sink.
//
// Producers render lines and copy them into one of two fixed-size buffers
// under a mutex. A single background writer swaps the buffers and drains the
// captured one to disk, so file I/O never happens on the logging path. When
// both buffers fill, producers block until the writer frees space; lines are
// never dropped for backpressure and buffers never grow.
//
// Files are named <name>.<N>.<ext> with a monotonically increasing sequence
// number and rotate once a configured byte count has been written. Output is
// plain text or a deflate stream.
package buflog
