// Package tags extracts and renders the XML-style tags agents use to mark
// up model output, such as <thought>, <tool_call> and <response>.
package tags

import (
	"regexp"
	"strings"
	"sync"
)

// Result holds every match of one tag in a piece of text.
type Result struct {
	Content []string
	Found   bool
}

var patterns sync.Map // tag name -> *regexp.Regexp

func pattern(tag string) *regexp.Regexp {
	if re, ok := patterns.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	q := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?s)<` + q + `>(.*?)</` + q + `>`)
	actual, _ := patterns.LoadOrStore(tag, re)
	return actual.(*regexp.Regexp)
}

// Extract returns the trimmed content of every <tag>...</tag> pair in text,
// scanning left to right. Matching is non-greedy and spans line breaks, so
// nested tags with the same name are closed by the first closing tag.
func Extract(text, tag string) Result {
	content := []string{}
	if text == "" || tag == "" {
		return Result{Content: content}
	}
	for _, m := range pattern(tag).FindAllStringSubmatch(text, -1) {
		content = append(content, strings.TrimSpace(m[1]))
	}
	return Result{Content: content, Found: len(content) > 0}
}

// First returns the first match of tag in text.
func First(text, tag string) (string, bool) {
	r := Extract(text, tag)
	if !r.Found {
		return "", false
	}
	return r.Content[0], true
}

// Wrap encloses content in tag as "<tag> content </tag>". An empty tag
// returns content unchanged.
func Wrap(tag, content string) string {
	if tag == "" {
		return content
	}
	return "<" + tag + "> " + content + " </" + tag + ">"
}
