// Package markdown parses Terraform provider resource documentation into
// structured attributes. Provider docs follow a stable convention: an
// "Argument Reference" section listing configurable arguments as bullets
// annotated with (Required) or (Optional), and an "Attributes Reference"
// section listing exported read-only attributes.
package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/meronimo/terraformgpt"
)

// Ensure Parser implements terraformgpt.DocParser at compile time.
var _ terraformgpt.DocParser = (*Parser)(nil)

// Parser parses provider doc markdown.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	frontMatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)
	pageTitleRe   = regexp.MustCompile(`(?m)^page_title:\s*"?([^"\n]+)"?\s*$`)
	headingRe     = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	codeBlockRe   = regexp.MustCompile("(?s)```.*?```")

	// Bullets look like: * `name` - (Required) The name of the account.
	// The annotation and the leading dash are both optional in the wild.
	attrBulletRe = regexp.MustCompile("^[*-]\\s+`([A-Za-z0-9_.]+)`\\s*[-–—]?\\s*(?:\\((Required|Optional)\\)\\s*)?(.*)$")
)

// Parse parses provider resource documentation markdown.
func (p *Parser) Parse(markdown string) (*terraformgpt.ParsedDoc, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "empty markdown input")
	}

	doc := &terraformgpt.ParsedDoc{}

	// Front matter carries the page title; the body may repeat it as an H1.
	if m := pageTitleRe.FindStringSubmatch(markdown); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}
	body := frontMatterRe.ReplaceAllString(markdown, "")

	// Remove code blocks so example HCL cannot masquerade as bullets or
	// headings.
	cleaned := codeBlockRe.ReplaceAllString(body, "")

	if doc.Title == "" {
		if m := regexp.MustCompile(`(?m)^#\s+(.+)$`).FindStringSubmatch(cleaned); m != nil {
			doc.Title = strings.TrimSpace(m[1])
		}
	}

	seen := make(map[string]bool)
	for _, section := range splitSections(cleaned) {
		readOnly, relevant := classifySection(section.title)
		if !relevant {
			continue
		}
		for _, attr := range parseBullets(section.body, readOnly) {
			if seen[attr.Name] {
				continue
			}
			seen[attr.Name] = true
			doc.Attributes = append(doc.Attributes, attr)
		}
	}

	return doc, nil
}

// section is a heading plus the text that follows it.
type section struct {
	title string
	body  string
}

// splitSections splits markdown into H2-level sections.
func splitSections(markdown string) []section {
	matches := headingRe.FindAllStringSubmatchIndex(markdown, -1)

	var sections []section
	for i, m := range matches {
		level := m[3] - m[2]
		if level != 2 {
			continue
		}
		title := strings.TrimSpace(markdown[m[4]:m[5]])

		end := len(markdown)
		for _, next := range matches[i+1:] {
			if next[3]-next[2] <= 2 {
				end = next[0]
				break
			}
		}
		sections = append(sections, section{title: title, body: markdown[m[1]:end]})
	}
	return sections
}

// classifySection reports whether a section holds attributes, and whether
// those attributes are exported read-only values.
func classifySection(title string) (readOnly, relevant bool) {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "argument"):
		return false, true
	case strings.Contains(t, "attribute"):
		return true, true
	}
	return false, false
}

// parseBullets extracts attribute bullets from a section body. Description
// text wraps onto following lines until the next bullet or blank line.
func parseBullets(body string, readOnly bool) []terraformgpt.ParsedAttribute {
	var attrs []terraformgpt.ParsedAttribute

	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); i++ {
		m := attrBulletRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}

		name := m[1]
		required := m[2] == "Required" && !readOnly
		desc := strings.TrimSpace(m[3])

		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || attrBulletRe.MatchString(next) || strings.HasPrefix(next, "#") {
				break
			}
			desc += " " + next
			i++
		}

		attrs = append(attrs, terraformgpt.ParsedAttribute{
			Name:        name,
			Description: desc,
			Required:    required,
			Type:        inferType(desc),
			DocAnchor:   "#" + anchor(name),
			ReadOnly:    readOnly,
		})
	}

	return attrs
}

// inferType guesses an attribute type from conventional description
// phrasing. Provider docs rarely state types outright, so this only needs
// to catch the common patterns; everything else defaults to string.
func inferType(desc string) string {
	d := strings.ToLower(desc)
	switch {
	case strings.Contains(d, "a mapping of") || strings.Contains(d, "a map of"):
		return "map"
	case strings.Contains(d, "a list of") || strings.Contains(d, "one or more"):
		return "list"
	case strings.Contains(d, "block supports") || strings.Contains(d, "block as defined below"):
		return "block"
	case strings.Contains(d, "defaults to `true`") || strings.Contains(d, "defaults to `false`") ||
		strings.Contains(d, "boolean") || strings.HasPrefix(d, "should ") || strings.HasPrefix(d, "whether "):
		return "bool"
	case strings.Contains(d, "the number of") || regexp.MustCompile("defaults to `[0-9]+`").MatchString(d):
		return "number"
	default:
		return "string"
	}
}

// anchor creates a URL-safe anchor from an attribute name. Doc sites keep
// underscores in attribute anchors, so snake_case names pass through intact.
func anchor(name string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '.' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
