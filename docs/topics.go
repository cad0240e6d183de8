// Package docs holds the user documentation of dash, one markdown file per topic.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var docs embed.FS

// index is the table of contents, it is not a topic.
const index = "readme"

// md converts topics to HTML, GitHub flavored for the tables.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Topic is a documentation page.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// GetTopic returns the markdown content of a topic, "*" being all of them.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(topic)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of topics concatenated together, "*" being
// expanded to all topics.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			var err error
			if names, err = GetAllTopics(); err != nil {
				return "", err
			}
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of all topics.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, f := range files {
		if name := strings.TrimSuffix(path.Base(f), ".md"); name != index {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)
	return topics, nil
}

// List returns all topics with their title, the first heading of the page.
func List() ([]Topic, error) {
	names, err := GetAllTopics()
	if err != nil {
		return nil, err
	}
	topics := make([]Topic, 0, len(names))
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title([]byte(content), name)})
	}
	return topics, nil
}

// title returns the text of the first heading of source, or def.
func title(source []byte, def string) string {
	root := md.Parser().Parse(text.NewReader(source))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return b.String()
	}
	return def
}

// HTML returns a documentation topic rendered as an HTML fragment.
func HTML(topic string) (string, error) {
	content, err := GetTopic(topic)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := md.Convert([]byte(content), &b); err != nil {
		return "", fmt.Errorf("cannot render topic %q: %w", topic, err)
	}
	return b.String(), nil
}
