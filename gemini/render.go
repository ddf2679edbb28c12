package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// PrintResult writes body re-indented when it is JSON and reports true. Otherwise it
// writes a failure notice followed by the raw text and reports false.
func PrintResult(w io.Writer, body []byte) bool {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		fmt.Fprintln(w, "Failed to parse response:", string(body))
		return false
	}
	out.WriteByte('\n')
	_, _ = out.WriteTo(w)
	return true
}

type responseShapes struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		Output string `json:"output"`
	} `json:"candidates"`
	Choices []struct {
		Text    string `json:"text"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Text   string `json:"text"`
	Output string `json:"output"`
}

// ExtractText returns the generated text from the common response shapes, or the
// trimmed body when none match.
func ExtractText(body []byte) string {
	var parsed responseShapes
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Candidates) > 0 {
			c := parsed.Candidates[0]
			if len(c.Content.Parts) > 0 && c.Content.Parts[0].Text != "" {
				return c.Content.Parts[0].Text
			}
			if c.Output != "" {
				return c.Output
			}
		}
		if len(parsed.Choices) > 0 {
			if text := parsed.Choices[0].Message.Content; text != "" {
				return text
			}
			if text := parsed.Choices[0].Text; text != "" {
				return text
			}
		}
		if parsed.Text != "" {
			return parsed.Text
		}
		if parsed.Output != "" {
			return parsed.Output
		}
	}
	return strings.TrimSpace(string(body))
}
