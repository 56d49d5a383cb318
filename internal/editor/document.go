// Package editor provides section-level editing of a grammar document:
// replace, delete, insert, reorder and serialize back to text.
package editor

import (
	"errors"
	"slices"

	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/types"
)

// ErrOrderMismatch is returned by Reorder when the ids are not a permutation of the
// current section ids
var ErrOrderMismatch = errors.New("section order does not match document sections")

// Option configures a Document
type Option func(*Document)

// WithSegmenter sets the segmenter used to parse text and mint section ids
func WithSegmenter(s *parsing.Segmenter) Option {
	return func(d *Document) {
		if s != nil {
			d.segmenter = s
		}
	}
}

// WithOnChange registers a change listener at construction time
func WithOnChange(fn func(string)) Option {
	return func(d *Document) {
		d.OnChange(fn)
	}
}

// Document is an ordered sequence of sections owned by one editing context.
// It is not safe for concurrent use.
type Document struct {
	segmenter *parsing.Segmenter
	sections  []types.Section
	listeners []func(string)
	version   uint64
}

// New segments text into a Document. Empty text gives an empty document.
func New(text string, opts ...Option) *Document {
	d := &Document{segmenter: parsing.NewSegmenter(nil)}
	for _, opt := range opts {
		opt(d)
	}
	d.sections = d.segmenter.Segment(text)
	return d
}

// Sections returns a copy of the current sections in order
func (d *Document) Sections() []types.Section {
	return slices.Clone(d.sections)
}

// Section returns the section with the given id
func (d *Document) Section(id string) (types.Section, bool) {
	i := d.index(id)
	if i < 0 {
		return types.Section{}, false
	}
	return d.sections[i], true
}

// Len returns the number of sections
func (d *Document) Len() int { return len(d.sections) }

// IDs returns the section ids in order
func (d *Document) IDs() []string {
	ids := make([]string, len(d.sections))
	for i, sec := range d.sections {
		ids[i] = sec.ID
	}
	return ids
}

// Version increases on every successful mutation
func (d *Document) Version() uint64 { return d.version }

// Serialize joins the sections' raw text with one blank line between them
func (d *Document) Serialize() string {
	return parsing.Serialize(d.sections)
}

// OnChange registers fn to be called with the full serialized text after every
// successful mutation
func (d *Document) OnChange(fn func(string)) {
	if fn != nil {
		d.listeners = append(d.listeners, fn)
	}
}

// SetContent replaces the whole document, as done by template apply, AI rewrite,
// translation and import. All section ids are regenerated.
func (d *Document) SetContent(text string) {
	d.sections = d.segmenter.Segment(text)
	d.changed()
}

// Replace re-parses raw as a mini-document and puts the result where the section
// with id was. The first resulting section keeps id; extra sections are spliced in
// after it with fresh ids. Blank raw removes the section. Unknown ids are a no-op.
func (d *Document) Replace(id, raw string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	parsed := d.segmenter.Segment(raw)
	if len(parsed) > 0 {
		parsed[0].ID = id
	}
	d.sections = slices.Replace(d.sections, i, i+1, parsed...)
	d.changed()
	return true
}

// Delete removes the section with id. Removing the last section leaves an empty
// document.
func (d *Document) Delete(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.sections = slices.Delete(d.sections, i, i+1)
	d.changed()
	return true
}

// Insert adds new content of the given kind at pos and returns the id of the
// first inserted section. Text is turned into the kind's canonical form, or the
// kind's placeholder when empty. It fails when pos names an unknown section.
func (d *Document) Insert(pos Position, kind types.SectionKind, text string) (string, bool) {
	at, ok := d.resolve(pos)
	if !ok {
		return "", false
	}
	parsed := d.segmenter.Segment(CanonicalText(kind, text))
	if len(parsed) == 0 {
		return "", false
	}
	d.sections = slices.Insert(d.sections, at, parsed...)
	d.changed()
	return parsed[0].ID, true
}

// Reorder puts the sections in the order of ids. The document is unchanged and
// ErrOrderMismatch is returned unless ids holds every current id exactly once.
func (d *Document) Reorder(ids []string) error {
	if len(ids) != len(d.sections) {
		return ErrOrderMismatch
	}
	byID := make(map[string]types.Section, len(d.sections))
	for _, sec := range d.sections {
		byID[sec.ID] = sec
	}
	reordered := make([]types.Section, 0, len(ids))
	for _, id := range ids {
		sec, ok := byID[id]
		if !ok {
			return ErrOrderMismatch
		}
		delete(byID, id)
		reordered = append(reordered, sec)
	}
	d.sections = reordered
	d.changed()
	return nil
}

// Move places the section with id at index, clamped to the document bounds
func (d *Document) Move(id string, index int) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	index = max(0, min(index, len(d.sections)-1))
	if index == i {
		return true
	}
	sec := d.sections[i]
	d.sections = slices.Delete(d.sections, i, i+1)
	d.sections = slices.Insert(d.sections, index, sec)
	d.changed()
	return true
}

func (d *Document) index(id string) int {
	return slices.IndexFunc(d.sections, func(sec types.Section) bool {
		return sec.ID == id
	})
}

func (d *Document) changed() {
	d.version++
	if len(d.listeners) == 0 {
		return
	}
	text := d.Serialize()
	for _, fn := range d.listeners {
		fn(text)
	}
}
