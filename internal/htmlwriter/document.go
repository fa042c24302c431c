// Package htmlwriter renders decoded bitmaps as self-contained HTML pages.
package htmlwriter

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
)

// Document is a minimal HTML page: a title, a style sheet and a body.
type Document struct {
	Title   string
	Style   string // contents of the <style> element, omitted if empty
	Content func(w io.Writer) error
}

// Write renders the page to w.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "<!DOCTYPE html>")
	fmt.Fprintln(bw, "<html>")

	fmt.Fprintln(bw, "<head>")
	fmt.Fprintln(bw, `<meta charset="utf-8" />`)
	fmt.Fprintf(bw, "<title>%s</title>\n", html.EscapeString(d.Title))
	if d.Style != "" {
		fmt.Fprintln(bw, `<style type="text/css">`)
		fmt.Fprint(bw, d.Style)
		fmt.Fprintln(bw, "</style>")
	}
	fmt.Fprintln(bw, "</head>")

	fmt.Fprintln(bw, "<body>")
	if d.Content != nil {
		if err := d.Content(bw); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw, "</body>")

	fmt.Fprintln(bw, "</html>")

	// bufio.Writer keeps the first write error
	return bw.Flush()
}

// Escape escapes s for HTML text and turns spaces into non-breaking
// spaces so that runs of them survive rendering.
func Escape(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), " ", "&nbsp;")
}
