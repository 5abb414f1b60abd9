package wiki

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Section is one top-level (h2) section of an article.
type Section struct {
	Name string
	Text string
}

// article is a parsed extract: the lead text before the first heading and
// the sections that follow, in page order.
type article struct {
	Lead     string
	Sections []Section
}

// FullText joins the lead and every section with its heading, the way the
// article reads top to bottom.
func (a *article) FullText() string {
	var b strings.Builder
	b.WriteString(a.Lead)
	for _, s := range a.Sections {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Name)
		if s.Text != "" {
			b.WriteString("\n")
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// blockElements are emitted as one line of text each. Their children are
// not visited separately.
var blockElements = map[string]bool{
	"p": true, "li": true, "dd": true, "dt": true, "blockquote": true, "pre": true,
	"h3": true, "h4": true, "h5": true, "h6": true,
	"td": true, "th": true, "figcaption": true,
}

// skippedElements never contribute text.
var skippedElements = map[string]bool{
	"style": true, "script": true, "sup": true,
}

// parseExtract splits a MediaWiki HTML extract into lead and sections.
func parseExtract(extract string) (*article, error) {
	doc, err := html.Parse(strings.NewReader(extract))
	if err != nil {
		return nil, fmt.Errorf("parsing extract HTML: %w", err)
	}

	var (
		lead    []string
		current *Section
		body    []string
		out     article
	)
	flush := func() {
		if current != nil {
			current.Text = strings.Join(body, "\n")
			out.Sections = append(out.Sections, *current)
		}
		body = nil
	}
	emit := func(line string) {
		if line == "" {
			return
		}
		if current == nil {
			lead = append(lead, line)
		} else {
			body = append(body, line)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case skippedElements[n.Data]:
				return
			case n.Data == "h2":
				flush()
				current = &Section{Name: collapseSpace(textContent(n))}
				return
			case blockElements[n.Data]:
				emit(collapseSpace(textContent(n)))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush()

	out.Lead = strings.Join(lead, "\n")
	return &out, nil
}

// textContent returns the concatenated text of a node and its children,
// skipping footnote markers and inline styles.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// collapseSpace trims s and folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
