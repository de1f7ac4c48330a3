package schema

import (
	"fmt"
	"strings"
)

// Describe renders a definition as a markdown document listing every leaf
// with its dotted path, type and whether it must be present.
func Describe(def Definition) string {
	var b strings.Builder

	switch d := def.(type) {
	case Primitive:
		fmt.Fprintf(&b, "# Scalar contract\n\nThe value must be a `%s`.\n", d.Name)
		return b.String()
	case Fields:
		b.WriteString("# Structured contract\n\n")
		if len(d) == 0 {
			b.WriteString("No fields are declared; any mapping is accepted.\n")
			return b.String()
		}
		b.WriteString("| Field | Type | Required |\n|---|---|---|\n")
		for _, field := range d {
			describeField(&b, field.Name, field.Type, field.Required)
		}
		b.WriteString("\nUndeclared top-level keys are kept. Undeclared keys of nested objects are removed.\n")
		return b.String()
	default:
		fmt.Fprintf(&b, "# Contract\n\n`%s`\n", typeString(def))
		return b.String()
	}
}

func describeField(b *strings.Builder, path string, def Definition, required bool) {
	switch d := def.(type) {
	case Primitive:
		fmt.Fprintf(b, "| `%s` | %s | %s |\n", path, d.Name, yesNo(required))
	case *Object:
		fmt.Fprintf(b, "| `%s` | object | %s |\n", path, yesNo(required))
		for _, k := range d.Keys {
			describeField(b, path+"."+k.Name, k.Type, true)
		}
	case ArrayOf:
		fmt.Fprintf(b, "| `%s` | array | %s |\n", path, yesNo(required))
		if d.Item != nil {
			for _, k := range d.Item.Keys {
				describeField(b, path+"[]."+k.Name, k.Type, true)
			}
		}
	default:
		fmt.Fprintf(b, "| `%s` | %s | %s |\n", path, typeString(def), yesNo(required))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
