package logging

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"loggingtalk/internal/style"
)

// Fields is the named form of log arguments. Passed as the only argument, it
// fills %(name)verb placeholders such as "%(user)s" or "%(count)d".
type Fields map[string]any

// argsKey marks the attribute carrying the unrendered arguments of a call.
const argsKey = "\x00args"

type callArgs []any

// Render substitutes args into template as a sink without escapes would.
func Render(template string, args ...any) string {
	return renderMessage(template, args, style.Unwrap)
}

func renderMessage(template string, args []any, conv func(any) any) string {
	if len(args) == 0 {
		return template
	}
	if fields, ok := args[0].(Fields); ok && len(args) == 1 {
		if hasNamedPlaceholders(template) {
			return substituteNamed(template, fields, conv)
		}
	}
	converted := make([]any, len(args))
	for i, arg := range args {
		converted[i] = conv(arg)
	}
	return fmt.Sprintf(template, converted...)
}

// checkArgs describes what is wrong with the shape of a log call, or returns
// "" when template and args agree.
func checkArgs(template string, args []any) string {
	if len(args) == 0 {
		return ""
	}
	named := hasNamedPlaceholders(template)
	if fields, ok := args[0].(Fields); ok && len(args) == 1 && named {
		for _, name := range placeholderNames(template) {
			if _, ok := fields[name]; !ok {
				return fmt.Sprintf("missing key %q", name)
			}
		}
		return ""
	}
	if len(args) > 1 {
		for _, arg := range args {
			if _, ok := arg.(Fields); ok {
				return "mapping mixed with positional arguments"
			}
		}
	}
	if named {
		return "positional arguments for named placeholders"
	}
	want := countVerbs(template)
	if want >= 0 && want != len(args) {
		return fmt.Sprintf("%d placeholders but %d arguments", want, len(args))
	}
	return ""
}

func hasNamedPlaceholders(template string) bool {
	for i := 0; i < len(template)-1; i++ {
		if template[i] != '%' {
			continue
		}
		if template[i+1] == '%' {
			i++
			continue
		}
		if template[i+1] == '(' {
			return true
		}
	}
	return false
}

// countVerbs counts the arguments a positional template consumes. It returns
// -1 for templates using explicit argument indexes, which it does not model.
func countVerbs(template string) int {
	count := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		i++
		if i >= len(template) {
			break
		}
		if template[i] == '%' {
			continue
		}
		for i < len(template) && strings.IndexByte("+-# 0", template[i]) >= 0 {
			i++
		}
		if i < len(template) && template[i] == '[' {
			return -1
		}
		i = skipWidth(template, i, &count)
		if i < len(template) && template[i] == '.' {
			i = skipWidth(template, i+1, &count)
		}
		if i < len(template) {
			count++
		}
	}
	return count
}

func skipWidth(template string, i int, count *int) int {
	if i < len(template) && template[i] == '*' {
		*count++
		return i + 1
	}
	for i < len(template) && template[i] >= '0' && template[i] <= '9' {
		i++
	}
	return i
}

func placeholderNames(template string) []string {
	var names []string
	for i := 0; i < len(template)-1; i++ {
		if template[i] != '%' {
			continue
		}
		if template[i+1] == '%' {
			i++
			continue
		}
		if template[i+1] != '(' {
			continue
		}
		end := strings.IndexByte(template[i+2:], ')')
		if end < 0 {
			break
		}
		names = append(names, template[i+2:i+2+end])
		i += 2 + end
	}
	return names
}

// substituteNamed expands %(name)verb placeholders from fields. Positional
// verbs in a named template are left as they are.
func substituteNamed(template string, fields Fields, conv func(any) any) string {
	var b strings.Builder
	b.Grow(len(template) + 32)
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i == len(template)-1 {
			b.WriteByte(c)
			continue
		}
		if template[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if template[i+1] != '(' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i+2:], ')')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		name := template[i+2 : i+2+end]
		specStart := i + 3 + end
		specEnd := specStart
		for specEnd < len(template) && strings.IndexByte("+-# 0123456789.", template[specEnd]) >= 0 {
			specEnd++
		}
		if specEnd >= len(template) {
			b.WriteString(template[i:])
			break
		}
		verb, size := utf8.DecodeRuneInString(template[specEnd:])
		spec := "%" + template[specStart:specEnd+size]
		value, ok := fields[name]
		if !ok {
			b.WriteString("%!" + string(verb) + "(MISSING " + name + ")")
		} else {
			b.WriteString(fmt.Sprintf(spec, conv(value)))
		}
		i = specEnd + size - 1
	}
	return b.String()
}
