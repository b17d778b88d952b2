package deckgen

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/question.html.go.tmpl
var questionTemplateHTML string

//go:embed templates/answer.html.go.tmpl
var answerTemplateHTML string

// Card HTML uses Anki's own {{Field}} syntax, so the Go templates render
// with [[ ]] delimiters to keep the braces literal.
var (
	questionTemplate = template.Must(template.New("question").Delims("[[", "]]").Parse(questionTemplateHTML))
	answerTemplate   = template.Must(template.New("answer").Delims("[[", "]]").Parse(answerTemplateHTML))
)

// cardFace is one way of studying an item: the field shown on the question
// side and leading the answer side.
type cardFace struct {
	Name   string
	Center bool
}

// cardFaces are the study directions every group gets a subdeck for, and
// also the field layout of every model.
var cardFaces = []cardFace{
	{Name: "Hanzi", Center: true},
	{Name: "Pinyin", Center: true},
	{Name: "English"},
}

type answerPanel struct {
	Title   string
	Content string
	Open    bool
	Center  bool
}

func renderQuestionHTML(face cardFace) (string, error) {
	var out strings.Builder
	if err := questionTemplate.Execute(&out, struct{ Face cardFace }{Face: face}); err != nil {
		return "", fmt.Errorf("render question template: %w", err)
	}
	return out.String(), nil
}

// renderAnswerHTML renders the answer side: one collapsible panel per face
// with the active face's panel first and open.
func renderAnswerHTML(face cardFace, baseDeckID int64) (string, error) {
	panels := []answerPanel{{
		Title:   face.Name,
		Content: fieldRef(face.Name),
		Open:    true,
		Center:  face.Center,
	}}
	for _, other := range cardFaces {
		if other.Name == face.Name {
			continue
		}
		panels = append(panels, answerPanel{
			Title:   other.Name,
			Content: fieldRef(other.Name),
			Center:  other.Center,
		})
	}

	var out strings.Builder
	err := answerTemplate.Execute(&out, struct {
		BaseDeckID int64
		Panels     []answerPanel
	}{
		BaseDeckID: baseDeckID,
		Panels:     panels,
	})
	if err != nil {
		return "", fmt.Errorf("render answer template: %w", err)
	}
	return out.String(), nil
}

// fieldRef is an Anki field reference like {{Hanzi}}.
func fieldRef(name string) string {
	return "{{" + name + "}}"
}
