package terraformgpt

import (
	"fmt"
	"strings"
)

// FormatResource formats a resource and its attributes as plain text.
// The same rendering is used for terminal display and as LLM context, so
// what the model sees is exactly what the attrs command prints.
func FormatResource(res *Resource, attrs []*Attribute) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Resource: %s.%s (version %s)\n", res.Provider, res.Name, res.Version)
	if res.DocURL != "" {
		fmt.Fprintf(&sb, "Documentation URL: %s\n", res.DocURL)
	}
	sb.WriteString("\nAttributes:\n")

	if len(attrs) == 0 {
		sb.WriteString("  (no attributes recorded)\n")
		return sb.String()
	}

	for _, attr := range attrs {
		requiredLabel := "optional"
		if attr.Required {
			requiredLabel = "required"
		}
		attrType := attr.Type
		if attrType == "" {
			attrType = "unknown"
		}
		since := attr.VersionAdded
		if since == "" {
			since = "n/a"
		}

		fmt.Fprintf(&sb, "- %s\n", attr.Name)
		fmt.Fprintf(&sb, "  Type: %s\n", attrType)
		fmt.Fprintf(&sb, "  Required: %s\n", requiredLabel)
		fmt.Fprintf(&sb, "  Since: %s\n", since)
		if attr.VersionRemoved != "" {
			fmt.Fprintf(&sb, "  Removed in: %s\n", attr.VersionRemoved)
		}
		sb.WriteString("  Description:\n")
		fmt.Fprintf(&sb, "    %s\n", attr.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}
