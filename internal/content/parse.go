package content

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/localpages/internal/model"
)

// ParseError reports a generation reply that could not be mapped into
// structured content.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: parse response: %s", e.Reason)
}

// Generated is the structured result extracted from a model reply.
type Generated struct {
	Title           string     `json:"title"`
	MetaDescription string     `json:"metaDescription"`
	Content         string     `json:"content"`
	Questions       []model.QA `json:"questions"`
	Keywords        []string   `json:"keywords"`
	WordCount       int        `json:"wordCount"`
	QuestionsCount  int        `json:"questionsCount"`
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseResponse locates the first JSON object inside raw reply text,
// tolerating explanatory prose and markdown code fences around it, and
// maps it into a Generated record. Missing title, metaDescription, or
// content is a *ParseError; missing questions or keywords default to
// empty.
func ParseResponse(raw string) (*Generated, error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object found in reply"}
	}

	var g Generated
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if g.Title == "" || g.MetaDescription == "" || g.Content == "" {
		return nil, &ParseError{Reason: "reply missing title, metaDescription, or content"}
	}

	if g.Questions == nil {
		g.Questions = []model.QA{}
	}
	if g.Keywords == nil {
		g.Keywords = []string{}
	}

	g.WordCount = CountWords(g.Content)
	g.QuestionsCount = len(g.Questions)

	return &g, nil
}

// extractJSONObject strips code fences and returns the substring from the
// first '{' to the last '}'. Replies carry at most one top-level object.
func extractJSONObject(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// CountWords counts whitespace-delimited tokens after stripping markup
// tags from HTML content.
func CountWords(html string) int {
	text := tagPattern.ReplaceAllString(html, " ")
	return len(strings.Fields(text))
}
