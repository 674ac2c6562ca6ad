// Package style renders ANSI SGR styling for log arguments.
//
// A Style describes a color and emphasis flags. It renders text by wrapping it
// in an opening escape sequence and a closing sequence that resets only the
// attributes it set, so styled segments can sit inside an already styled line
// without clobbering it. Styled pairs a value with a Style without deciding
// whether escapes are emitted; a log sink makes that decision later by
// activating the value or by unwrapping it to its plain form.
package style
