package aurclient

import "strings"

// extractComments is a minimal, tolerant HTML scrape for AUR package-page
// comments. The AUR page structure uses a "comment-header" H4 per comment
// holding the author/date, followed by a "article" div holding the body.
// This is explicitly best-effort: markup drift degrades to fewer or zero
// comments, never an error, matching the spec's "parser degradation"
// error-handling policy.
func extractComments(html string) []Comment {
	var comments []Comment

	headers := splitAll(html, `<h4 id="comment-`)
	for _, chunk := range headers[1:] {
		header, rest, ok := strings.Cut(chunk, "</h4>")
		if !ok {
			continue
		}
		author, date := parseCommentHeader(header)

		body := ""
		if start := strings.Index(rest, `<div class="article-content">`); start >= 0 {
			rest = rest[start+len(`<div class="article-content">`):]
			if end := strings.Index(rest, "</div>"); end >= 0 {
				body = stripTags(rest[:end])
			}
		}

		if author == "" && body == "" {
			continue
		}
		comments = append(comments, Comment{Author: author, Date: date, Body: strings.TrimSpace(body)})
	}

	return comments
}

func parseCommentHeader(header string) (author, date string) {
	text := stripTags(header)
	// Header text is typically "Comment by: <author> <date>" — the exact
	// wording varies by AUR version, so only the first token after "by:"
	// is treated as the author and the remainder as the date, best-effort.
	if idx := strings.Index(text, "by:"); idx >= 0 {
		remainder := strings.TrimSpace(text[idx+len("by:"):])
		fields := strings.Fields(remainder)
		if len(fields) > 0 {
			author = fields[0]
		}
		if len(fields) > 1 {
			date = strings.Join(fields[1:], " ")
		}
	}
	return author, date
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func splitAll(s, sep string) []string {
	return strings.Split(s, sep)
}
