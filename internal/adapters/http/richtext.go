package web

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer passes through the markup already allowed in stored messages;
// its output is re-sanitised by richTextPolicy before leaving the process.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
		goldmarkHTML.WithUnsafe(),
	),
)

var richTextPolicy = bluemonday.UGCPolicy()

// renderRichText renders a stored message as HTML for display on the signup form.
// POST: output only contains markup allowed by the UGC policy
func renderRichText(msg string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(msg), &buf); err != nil {
		return html.EscapeString(msg)
	}
	return richTextPolicy.Sanitize(buf.String())
}

// renderAll renders every message in msgs.
func renderAll(msgs []string) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, renderRichText(m))
	}
	return out
}
