package style

import (
	"fmt"
)

// Styled is a value carrying a style that has not been rendered yet.
// Formatting a Styled directly produces the plain value, so a sink that does
// not emit escapes can print it without unwrapping.
type Styled struct {
	Value any
	Style Style
}

// Activate binds the value to the escape-emitting renderer of its style.
func (v Styled) Activate() Activated {
	return v.Style.Activate(v.Value)
}

// String returns the plain string form of the value.
func (v Styled) String() string {
	return fmt.Sprint(v.Value)
}

// Format formats the wrapped value with the same verb and flags.
func (v Styled) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), v.Value)
}

// Unwrap returns the plain value of a Styled or Activated argument and arg
// otherwise.
func Unwrap(arg any) any {
	switch v := arg.(type) {
	case Styled:
		return v.Value
	case Activated:
		return v.Value
	}
	return arg
}

// Activated is a value bound to a concrete render function. The value is
// formatted first, honoring verb, width and flags, and the result is wrapped.
type Activated struct {
	Value  any
	render func(string) string
}

// String renders the value with %v.
func (a Activated) String() string {
	return a.wrap(fmt.Sprint(a.Value))
}

// Format implements fmt.Formatter.
func (a Activated) Format(f fmt.State, verb rune) {
	text := fmt.Sprintf(fmt.FormatString(f, verb), a.Value)
	_, _ = f.Write([]byte(a.wrap(text)))
}

func (a Activated) wrap(text string) string {
	if a.render == nil {
		return text
	}
	return a.render(text)
}
