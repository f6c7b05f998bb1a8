package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"realty-content-engine/internal/model"
)

// Export formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatSocial   = "social"
)

// socialSnippetLimit caps the plain-text snippet length.
const socialSnippetLimit = 280

// File is one rendered export.
type File struct {
	Name string
	MIME string
	Body []byte
}

// frontMatter is the YAML block prepended to markdown exports.
type frontMatter struct {
	Title       string    `yaml:"title"`
	ContentType string    `yaml:"content_type"`
	SessionID   string    `yaml:"session_id,omitempty"`
	Prompt      string    `yaml:"prompt,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
	ExportedAt  time.Time `yaml:"exported_at"`
}

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatMarkdown, FormatHTML, FormatJSON, FormatSocial}
}

// Supported reports whether format names a known export format.
func Supported(format string) bool {
	switch format {
	case FormatMarkdown, FormatHTML, FormatJSON, FormatSocial:
		return true
	}
	return false
}

// Export renders one history entry in the requested format.
func Export(entry model.HistoryEntry, format string) (File, error) {
	switch format {
	case FormatMarkdown:
		return exportMarkdown(entry)
	case FormatHTML:
		return exportHTML(entry)
	case FormatJSON:
		return exportJSON(entry)
	case FormatSocial:
		return exportSocial(entry)
	default:
		return File{}, fmt.Errorf("unknown export format %q", format)
	}
}

func exportMarkdown(entry model.HistoryEntry) (File, error) {
	fm := frontMatter{
		Title:       titleOf(entry),
		ContentType: entry.ContentType.String(),
		SessionID:   entry.SessionID,
		Prompt:      entry.Prompt,
		CreatedAt:   entry.CreatedAt,
		ExportedAt:  time.Now(),
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return File{}, fmt.Errorf("marshal front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	buf.WriteString(entry.Content)
	buf.WriteString("\n")

	return File{
		Name: filename(entry, "md"),
		MIME: "text/markdown; charset=utf-8",
		Body: buf.Bytes(),
	}, nil
}

func exportJSON(entry model.HistoryEntry) (File, error) {
	body, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("marshal entry: %w", err)
	}
	return File{
		Name: filename(entry, "json"),
		MIME: "application/json",
		Body: body,
	}, nil
}

func exportHTML(entry model.HistoryEntry) (File, error) {
	var buf bytes.Buffer

	title := html.EscapeString(titleOf(entry))
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	buf.WriteString(renderHTMLBody(entry.Content))
	buf.WriteString("</body>\n</html>\n")

	return File{
		Name: filename(entry, "html"),
		MIME: "text/html; charset=utf-8",
		Body: buf.Bytes(),
	}, nil
}

// exportSocial produces a plain-text snippet with the hashtag block
// preserved, sized for social reposting.
func exportSocial(entry model.HistoryEntry) (File, error) {
	body, hashtags := splitHashtags(entry.Content)
	snippet := plainText(body)
	if len(snippet) > socialSnippetLimit {
		cut := strings.LastIndex(snippet[:socialSnippetLimit], " ")
		if cut <= 0 {
			cut = socialSnippetLimit
		}
		snippet = snippet[:cut] + "..."
	}
	if hashtags != "" {
		snippet += "\n\n" + hashtags
	}

	return File{
		Name: filename(entry, "txt"),
		MIME: "text/plain; charset=utf-8",
		Body: []byte(snippet),
	}, nil
}

var (
	exportTitleRe   = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	exportHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	exportImageRe   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	exportBoldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	exportMarkRe    = regexp.MustCompile("[*_`#>]")
	exportSpaceRe   = regexp.MustCompile(`\s+`)
	unsafeFileRe    = regexp.MustCompile(`[^a-z0-9-]+`)
)

// renderHTMLBody converts the markdown subset the generators emit
// (headings, images, bold, paragraphs, list items) into HTML.
func renderHTMLBody(content string) string {
	var buf bytes.Buffer

	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if m := exportHeadingRe.FindStringSubmatch(lines[0]); m != nil {
			level := len(m[1])
			fmt.Fprintf(&buf, "<h%d>%s</h%d>\n", level, inlineHTML(m[2]), level)
			if rest := strings.TrimSpace(strings.Join(lines[1:], "\n")); rest != "" {
				fmt.Fprintf(&buf, "<p>%s</p>\n", inlineHTML(rest))
			}
			continue
		}

		if strings.HasPrefix(lines[0], "- ") || strings.HasPrefix(lines[0], "* ") {
			buf.WriteString("<ul>\n")
			for _, line := range lines {
				item := strings.TrimSpace(strings.TrimLeft(line, "-* "))
				if item != "" {
					fmt.Fprintf(&buf, "<li>%s</li>\n", inlineHTML(item))
				}
			}
			buf.WriteString("</ul>\n")
			continue
		}

		fmt.Fprintf(&buf, "<p>%s</p>\n", inlineHTML(block))
	}

	return buf.String()
}

func inlineHTML(s string) string {
	// Images first so their URLs survive escaping.
	type img struct{ alt, src string }
	var images []img
	s = exportImageRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := exportImageRe.FindStringSubmatch(m)
		images = append(images, img{alt: parts[1], src: parts[2]})
		return fmt.Sprintf("\x00img%d\x00", len(images)-1)
	})

	s = html.EscapeString(s)
	s = exportBoldRe.ReplaceAllString(s, "<strong>$1</strong>")

	for i, im := range images {
		tag := fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(im.src), html.EscapeString(im.alt))
		s = strings.Replace(s, fmt.Sprintf("\x00img%d\x00", i), tag, 1)
	}
	return strings.ReplaceAll(s, "\n", "<br>\n")
}

func titleOf(entry model.HistoryEntry) string {
	if m := exportTitleRe.FindStringSubmatch(entry.Content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if entry.Prompt != "" {
		return entry.Prompt
	}
	return fmt.Sprintf("%s #%d", entry.ContentType, entry.ID)
}

func filename(entry model.HistoryEntry, ext string) string {
	slug := strings.ToLower(titleOf(entry))
	slug = unsafeFileRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		slug = fmt.Sprintf("%s-%d", entry.ContentType, entry.ID)
	}
	return fmt.Sprintf("%s.%s", slug, ext)
}

// splitHashtags separates a trailing hashtag block from the body.
func splitHashtags(content string) (body, hashtags string) {
	parts := strings.Split(strings.TrimSpace(content), "\n\n")
	if len(parts) == 0 {
		return content, ""
	}
	last := strings.TrimSpace(parts[len(parts)-1])
	if strings.Count(last, "#") >= 3 && strings.HasPrefix(last, "#") {
		return strings.Join(parts[:len(parts)-1], "\n\n"), last
	}
	return content, ""
}

func plainText(s string) string {
	s = exportImageRe.ReplaceAllString(s, "")
	s = exportMarkRe.ReplaceAllString(s, "")
	return strings.TrimSpace(exportSpaceRe.ReplaceAllString(s, " "))
}
