// Package logs reads back the files written by the log sinks.
//
// Lines are only returned once their terminating newline has been written, so
// a reader polling a file that a running slide is appending to never sees half
// a record. Records keep their escape sequences; printing them to a terminal
// reproduces the colors of the original run.
package logs
