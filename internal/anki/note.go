package anki

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// fieldSeparator joins a note's field values inside the flds column.
const fieldSeparator = "\x1f"

// Note is one row of the notes table.
type Note struct {
	ID        int64
	GUID      string
	ModelID   int64
	Mod       int64
	USN       int
	Tags      []string
	Fields    []string
	SortField string
	Checksum  int64
}

// NoteSpec describes a note to create. Fields must match the model's field
// count exactly; SortField defaults to the first field value.
type NoteSpec struct {
	ModelID   int64
	Fields    []string
	Tags      []string
	SortField string
}

// Card is one row of the cards table. Generated packages only ever contain
// new cards, so every scheduling column starts at zero.
type Card struct {
	ID             int64
	NoteID         int64
	DeckID         int64
	OriginalDeckID int64
	TemplateOrd    int
	Mod            int64
	USN            int
}

// CardSpec describes a card to create. OriginalDeckID defaults to DeckID;
// TemplateOrd must index an existing template of the note's model.
type CardSpec struct {
	NoteID         int64
	DeckID         int64
	OriginalDeckID int64
	TemplateOrd    int
}

// AddNote inserts one note row. The model must have been registered through
// AddModel first; a field-count mismatch is a programmer error and is
// rejected rather than padded or truncated.
func (p *Package) AddNote(ctx context.Context, spec NoteSpec) (Note, error) {
	if p.db == nil {
		return Note{}, fmt.Errorf("package is not initialized")
	}

	p.mu.Lock()
	model, ok := p.models[spec.ModelID]
	p.mu.Unlock()
	if !ok {
		return Note{}, fmt.Errorf("note references unknown model %d", spec.ModelID)
	}
	if len(spec.Fields) != len(model.Flds) {
		return Note{}, fmt.Errorf("note for model %q has %d fields, model defines %d",
			model.Name, len(spec.Fields), len(model.Flds))
	}

	id, err := newID()
	if err != nil {
		return Note{}, err
	}
	guid, err := newGUID()
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        id,
		GUID:      guid,
		ModelID:   spec.ModelID,
		Mod:       time.Now().Unix(),
		USN:       -1,
		Tags:      spec.Tags,
		Fields:    spec.Fields,
		SortField: spec.SortField,
	}
	if note.SortField == "" && len(note.Fields) > 0 {
		note.SortField = note.Fields[0]
	}
	first := ""
	if len(note.Fields) > 0 {
		first = note.Fields[0]
	}
	note.Checksum = FieldChecksum(first)

	// Tags are framed by spaces so the consumer can run LIKE "% tag %" queries.
	tags := " " + strings.Join(note.Tags, " ") + " "

	if _, err := p.db.ExecContext(ctx,
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, '')`,
		note.ID, note.GUID, note.ModelID, note.Mod, note.USN,
		tags, strings.Join(note.Fields, fieldSeparator), note.SortField, note.Checksum,
	); err != nil {
		return Note{}, fmt.Errorf("db.ExecContext(notes) > %w", err)
	}

	p.mu.Lock()
	p.noteModels[note.ID] = note.ModelID
	p.mu.Unlock()
	return note, nil
}

// AddCard inserts one card row linking a note to a deck and a template.
// The referenced note must have been created through AddNote, and the
// template ordinal is checked against the note's model so an unplayable
// card can never reach the package.
func (p *Package) AddCard(ctx context.Context, spec CardSpec) (Card, error) {
	if p.db == nil {
		return Card{}, fmt.Errorf("package is not initialized")
	}

	p.mu.Lock()
	modelID, ok := p.noteModels[spec.NoteID]
	model := p.models[modelID]
	p.mu.Unlock()
	if !ok {
		return Card{}, fmt.Errorf("card references unknown note %d", spec.NoteID)
	}
	if spec.TemplateOrd < 0 || spec.TemplateOrd >= len(model.Tmpls) {
		return Card{}, fmt.Errorf("card ordinal %d out of range: model %q has %d templates",
			spec.TemplateOrd, model.Name, len(model.Tmpls))
	}

	id, err := newID()
	if err != nil {
		return Card{}, err
	}
	card := Card{
		ID:             id,
		NoteID:         spec.NoteID,
		DeckID:         spec.DeckID,
		OriginalDeckID: spec.OriginalDeckID,
		TemplateOrd:    spec.TemplateOrd,
		Mod:            time.Now().Unix(),
		USN:            -1,
	}
	if card.OriginalDeckID == 0 {
		card.OriginalDeckID = card.DeckID
	}

	if _, err := p.db.ExecContext(ctx,
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl,
		                    factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, ?, ?, ?, 0, 0, 0, 0, 0, 0, 0, 0, 0, ?, 0, '')`,
		card.ID, card.NoteID, card.DeckID, card.TemplateOrd, card.Mod, card.USN,
		card.OriginalDeckID,
	); err != nil {
		return Card{}, fmt.Errorf("db.ExecContext(cards) > %w", err)
	}
	return card, nil
}
