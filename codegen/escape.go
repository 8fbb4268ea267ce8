package codegen

import "strings"

var javaEscaper = strings.NewReplacer(
	"\x00", `\u0000`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	`\`, `\\`,
)

// Escape makes s safe to place between double quotes in Java source.
func Escape(s string) string {
	return javaEscaper.Replace(s)
}

// Quote returns s as a Java string literal.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
