package docx

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// ExportHTML writes a renderable snapshot of the document. The output is
// deliberately plain and deterministic: one block element per paragraph,
// inline styles for the formatting attributes the engine manages, list
// markers rendered as literal text. It exists for preview, not fidelity.
func (d *Document) ExportHTML(w io.Writer, title string) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")

	for _, p := range d.Paragraphs() {
		b.WriteString("<p")
		if style := paragraphCSS(p); style != "" {
			fmt.Fprintf(&b, " style=%q", style)
		}
		b.WriteString(">")
		if p.IsListItem() && p.ListMarker() != "" {
			b.WriteString(html.EscapeString(p.ListMarker()))
			b.WriteString(" ")
		}
		for _, r := range p.Runs() {
			writeRunHTML(&b, r)
		}
		b.WriteString("</p>\n")
	}

	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func paragraphCSS(p *Paragraph) string {
	var rules []string
	if align := p.AlignmentName(); align != "left" {
		rules = append(rules, "text-align:"+align)
	}
	if v, ok := p.LeftIndent(); ok && v != 0 {
		rules = append(rules, fmt.Sprintf("margin-left:%gpt", v))
	}
	if v, ok := p.RightIndent(); ok && v != 0 {
		rules = append(rules, fmt.Sprintf("margin-right:%gpt", v))
	}
	if v, ok := p.FirstLineIndent(); ok && v != 0 {
		rules = append(rules, fmt.Sprintf("text-indent:%gpt", v))
	}
	if v, ok := p.SpaceBefore(); ok && v != 0 {
		rules = append(rules, fmt.Sprintf("margin-top:%gpt", v))
	}
	if v, ok := p.SpaceAfter(); ok && v != 0 {
		rules = append(rules, fmt.Sprintf("margin-bottom:%gpt", v))
	}
	return strings.Join(rules, ";")
}

func writeRunHTML(b *strings.Builder, r *Run) {
	text := r.Text()
	if text == "" {
		return
	}
	var rules []string
	if r.Bold() {
		rules = append(rules, "font-weight:bold")
	}
	if r.Italic() {
		rules = append(rules, "font-style:italic")
	}
	if r.Underline() {
		rules = append(rules, "text-decoration:underline")
	}
	if name := r.FontName(); name != "" {
		rules = append(rules, "font-family:'"+name+"'")
	}
	if size := r.FontSize(); size != 0 {
		rules = append(rules, fmt.Sprintf("font-size:%gpt", size))
	}
	if color := r.FontColor(); color != "" {
		rules = append(rules, "color:#"+color)
	}
	if len(rules) == 0 {
		b.WriteString(html.EscapeString(text))
		return
	}
	fmt.Fprintf(b, "<span style=%q>%s</span>", strings.Join(rules, ";"), html.EscapeString(text))
}
