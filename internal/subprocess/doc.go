// Package subprocess runs external commands while streaming their output into
// the log line by line.
//
// Every line a child writes to stdout or stderr becomes an info record tagged
// with the stream it came from, so output from concurrent jobs lands in the log
// next to the records of the job that produced it, carrying that job's prefix.
// The raw bytes are buffered as well and returned in a Result once the process
// exits. A non-zero exit status is data, not an error: it is returned in the
// Result and announced with a short advisory record.
package subprocess
