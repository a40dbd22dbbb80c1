package filestore

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// timestampLayout is the frontmatter timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// frontmatter is the structured metadata at the top of a stored note file.
// The folder field is the flat model's only notion of hierarchy.
type frontmatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Tags     []string `yaml:"tags,flow"`
	Folder   string   `yaml:"folder,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Created  string   `yaml:"created"`
	Modified string   `yaml:"modified"`
}

// parseFrontmatter extracts frontmatter from a note document and returns the
// parsed data plus the body. A document with no frontmatter block yields a
// nil frontmatter and the whole content as body.
func parseFrontmatter(content string) (*frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	return &fm, matches[2], nil
}

// buildDocument combines frontmatter and body into a complete note document.
// Fields are emitted in a fixed order so rewrites are diff-stable.
func buildDocument(fm *frontmatter, body string) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", fm.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", quoteIfNeeded(fm.Title)))
	sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	if fm.Folder != "" {
		sb.WriteString(fmt.Sprintf("folder: %s\n", quoteIfNeeded(fm.Folder)))
	}
	if fm.Type != "" {
		sb.WriteString(fmt.Sprintf("type: %s\n", fm.Type))
	}
	sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	sb.WriteString(fmt.Sprintf("modified: %s\n", fm.Modified))
	sb.WriteString("---\n")

	if body == "" {
		return sb.String()
	}
	if !strings.HasPrefix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	return sb.String()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

// formatYAMLArray renders tags as a YAML flow-style array.
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteIfNeeded(item)
	}
	return fmt.Sprintf("[%s]", strings.Join(quoted, ", "))
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",:[]{}\"'#") || s != strings.TrimSpace(s) {
		return fmt.Sprintf("%q", s)
	}
	return s
}
