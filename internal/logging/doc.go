// Package logging renders printf-style log calls into append-only text sinks.
//
// A log call keeps its template and arguments unrendered until a sink handles
// it. Each sink decides whether ANSI escapes are emitted: a colorized sink
// activates style.Styled arguments and arguments matched by the Registry, a
// plain sink prints the bare values and never runs escape code. Both see the
// same record, so one call lands as colored text in one file and as clean text
// in another.
//
// The location prefix of a record comes from the context passed to the log
// call. WithPrefix and Scoped derive child contexts whose prefix extends the
// parent's, so concurrent jobs started with their own contexts never see each
// other's prefix and leaving a scope never needs cleanup.
//
// Configure wires the standard layout: a colorized file, a plain file and a
// terminal sink filtered by severity, all fed from one fan-out handler, plus an
// optional hook that logs every process launched through package procexec.
package logging
