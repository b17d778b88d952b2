package anki

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const defaultCSS = `.card {
    font-family: arial;
    font-size: 20px;
    text-align: center;
    color: black;
    background-color: white;
}
.cloze {
    font-weight: bold;
    color: blue;
}`

const (
	defaultLatexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
		"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
		"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	defaultLatexPost = "\\end{document}"
)

// Field is one field definition of a model. Ordinals are dense, zero based
// and unique within the model.
type Field struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	RTL    bool     `json:"rtl"`
	Sticky bool     `json:"sticky"`
	Media  []string `json:"media"`
}

// Template is one card template of a model. A card's ord column indexes
// into its model's template list.
type Template struct {
	Name         string `json:"name"`
	Ord          int    `json:"ord"`
	Qfmt         string `json:"qfmt"`
	Afmt         string `json:"afmt"`
	Bqfmt        string `json:"bqfmt"`
	Bafmt        string `json:"bafmt"`
	DeckOverride *int64 `json:"did"`
}

// Requirement declares which field ordinals a template needs to produce a
// card. It serializes to the [ord, "any"|"all", [fieldOrds]] triple Anki
// stores in the model's req array.
type Requirement struct {
	TemplateOrd int
	Kind        string
	FieldOrds   []int
}

// MarshalJSON implements the heterogeneous array encoding of req entries.
func (r Requirement) MarshalJSON() ([]byte, error) {
	ords := r.FieldOrds
	if ords == nil {
		ords = []int{}
	}
	return json.Marshal([]any{r.TemplateOrd, r.Kind, ords})
}

// UnmarshalJSON implements the reverse of MarshalJSON.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("req entry has %d elements, want 3", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.TemplateOrd); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[1], &r.Kind); err != nil {
		return err
	}
	return json.Unmarshal(parts[2], &r.FieldOrds)
}

// Model is a note type: an ordered field list plus one or more card
// templates, stored in the col row's models column.
type Model struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	DeckID    int64         `json:"did"`
	Flds      []Field       `json:"flds"`
	Tmpls     []Template    `json:"tmpls"`
	Req       []Requirement `json:"req"`
	CSS       string        `json:"css"`
	LatexPre  string        `json:"latexPre"`
	LatexPost string        `json:"latexPost"`
	SortField int           `json:"sortf"`
	Type      int           `json:"type"`
	Mod       int64         `json:"mod"`
	USN       int           `json:"usn"`
	Vers      []int         `json:"vers"`
	Tags      []string      `json:"tags"`
}

// ModelSpec describes a model to create. Fields need at least a name;
// templates need a name plus question and answer formats. Omitted field and
// template ordinals are assigned densely in input order, and an omitted Req
// defaults to "every template accepts any of all field ordinals".
type ModelSpec struct {
	Name      string
	DeckID    int64
	Fields    []Field
	Templates []Template
	Req       []Requirement
	CSS       string
	SortField int
}

// AddModel merges the spec over the model defaults, persists the model into
// the col row's models column and registers it for note and card
// validation. The returned model's ID is what notes reference through mid.
func (p *Package) AddModel(ctx context.Context, spec ModelSpec) (Model, error) {
	if p.db == nil {
		return Model{}, fmt.Errorf("package is not initialized")
	}
	if len(spec.Templates) == 0 {
		return Model{}, fmt.Errorf("model %q needs at least one template", spec.Name)
	}
	if spec.SortField < 0 || spec.SortField >= len(spec.Fields) {
		return Model{}, fmt.Errorf("model %q: sort field %d out of range", spec.Name, spec.SortField)
	}

	id, err := newID()
	if err != nil {
		return Model{}, err
	}

	model := Model{
		ID:        id,
		Name:      spec.Name,
		DeckID:    spec.DeckID,
		CSS:       spec.CSS,
		LatexPre:  defaultLatexPre,
		LatexPost: defaultLatexPost,
		SortField: spec.SortField,
		USN:       -1,
		Mod:       time.Now().Unix(),
		Vers:      []int{},
		Tags:      []string{},
	}
	if model.Name == "" {
		model.Name = "New Model"
	}
	if model.CSS == "" {
		model.CSS = defaultCSS
	}

	model.Flds = make([]Field, len(spec.Fields))
	for i, fld := range spec.Fields {
		if fld.Font == "" {
			fld.Font = "Liberation Sans"
		}
		if fld.Size == 0 {
			fld.Size = 20
		}
		if fld.Media == nil {
			fld.Media = []string{}
		}
		fld.Ord = i
		model.Flds[i] = fld
	}

	model.Tmpls = make([]Template, len(spec.Templates))
	for i, tmpl := range spec.Templates {
		if tmpl.Name == "" {
			return Model{}, fmt.Errorf("model %q: template %d has no name", model.Name, i)
		}
		tmpl.Ord = i
		model.Tmpls[i] = tmpl
	}

	model.Req = spec.Req
	if model.Req == nil {
		ords := make([]int, len(model.Flds))
		for i := range model.Flds {
			ords[i] = i
		}
		for i := range model.Tmpls {
			model.Req = append(model.Req, Requirement{TemplateOrd: i, Kind: "any", FieldOrds: ords})
		}
	}
	for _, req := range model.Req {
		if req.TemplateOrd < 0 || req.TemplateOrd >= len(model.Tmpls) {
			return Model{}, fmt.Errorf("model %q: req references template %d of %d",
				model.Name, req.TemplateOrd, len(model.Tmpls))
		}
		for _, ord := range req.FieldOrds {
			if ord < 0 || ord >= len(model.Flds) {
				return Model{}, fmt.Errorf("model %q: req references field ordinal %d of %d",
					model.Name, ord, len(model.Flds))
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	models := map[string]Model{}
	if err := p.readColJSON(ctx, "models", &models); err != nil {
		return Model{}, err
	}
	models[strconv.FormatInt(id, 10)] = model
	if err := p.writeColJSON(ctx, "models", models); err != nil {
		return Model{}, err
	}

	p.models[id] = model
	return model, nil
}
