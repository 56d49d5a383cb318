// Package buffer holds the resume and cover letter documents, tracks which one is
// active and moves their text to and from storage.
package buffer

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jonathan/resumeace/internal/editor"
	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/rendering"
	"github.com/jonathan/resumeace/internal/storage"
	"github.com/jonathan/resumeace/internal/templates"
	"github.com/jonathan/resumeace/internal/types"
)

// SectionRenderer renders one section; *rendering.Markup satisfies it
type SectionRenderer interface {
	RenderSection(sec types.Section) rendering.Node
}

// View pairs a section with its rendered block node
type View struct {
	Section types.Section
	Node    rendering.Node
}

// Options configures a Buffer. Zero values select a MemoryStore, random section
// ids, an uncached renderer and the resume as the active mode.
type Options struct {
	Store     storage.Store
	Segmenter *parsing.Segmenter
	Renderer  SectionRenderer
	Active    types.Mode
}

// Buffer owns one editor.Document per mode. It is not safe for concurrent use.
type Buffer struct {
	store    storage.Store
	renderer SectionRenderer
	docs     map[types.Mode]*editor.Document
	dirty    map[types.Mode]bool
	active   types.Mode
}

// New creates a Buffer whose documents start from the default templates
func New(opts Options) *Buffer {
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Renderer == nil {
		opts.Renderer = rendering.NewMarkup(opts.Segmenter, nil)
	}
	if _, err := types.ParseMode(string(opts.Active)); err != nil {
		opts.Active = types.ModeResume
	}

	b := &Buffer{
		store:    opts.Store,
		renderer: opts.Renderer,
		docs:     make(map[types.Mode]*editor.Document, 2),
		dirty:    make(map[types.Mode]bool, 2),
		active:   opts.Active,
	}
	for _, mode := range types.Modes() {
		b.docs[mode] = editor.New(templates.Default(mode),
			editor.WithSegmenter(opts.Segmenter),
			editor.WithOnChange(func(string) { b.dirty[mode] = true }),
		)
	}
	return b
}

// Active returns the mode bound to the visible editor
func (b *Buffer) Active() types.Mode { return b.active }

// SetActive switches the active mode
func (b *Buffer) SetActive(mode types.Mode) error {
	if _, ok := b.docs[mode]; !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}
	b.active = mode
	return nil
}

// Document returns the document of mode, or nil for an unknown mode
func (b *Buffer) Document(mode types.Mode) *editor.Document {
	return b.docs[mode]
}

// Content returns the serialized text of mode
func (b *Buffer) Content(mode types.Mode) string {
	doc, ok := b.docs[mode]
	if !ok {
		return ""
	}
	return doc.Serialize()
}

// Replace swaps in new whole-document text for mode. Template apply, AI rewrite,
// translation and import all arrive here once their result is ready.
func (b *Buffer) Replace(mode types.Mode, text string) error {
	doc, ok := b.docs[mode]
	if !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}
	doc.SetContent(text)
	return nil
}

// Views yields each section of mode with its rendered node. Every iteration
// reflects the document as it is when the iteration starts.
func (b *Buffer) Views(mode types.Mode) iter.Seq[View] {
	return func(yield func(View) bool) {
		doc, ok := b.docs[mode]
		if !ok {
			return
		}
		for _, sec := range doc.Sections() {
			if !yield(View{Section: sec, Node: b.renderer.RenderSection(sec)}) {
				return
			}
		}
	}
}

// Nodes returns the rendered block nodes of mode
func (b *Buffer) Nodes(mode types.Mode) []rendering.Node {
	var nodes []rendering.Node
	for v := range b.Views(mode) {
		nodes = append(nodes, v.Node)
	}
	return nodes
}

// Dirty reports whether mode changed since the last Load or Save
func (b *Buffer) Dirty(mode types.Mode) bool { return b.dirty[mode] }

// Load reads both documents from the store. A missing entry keeps the default
// template for that mode.
func (b *Buffer) Load(ctx context.Context) error {
	for _, mode := range types.Modes() {
		text, err := b.store.Get(ctx, storage.ContentKey(mode))
		switch {
		case errors.Is(err, storage.ErrNotFound):
			text = templates.Default(mode)
		case err != nil:
			return fmt.Errorf("failed to load %s: %w", mode, err)
		}
		b.docs[mode].SetContent(text)
		b.dirty[mode] = false
	}
	return nil
}

// Save writes both documents to the store
func (b *Buffer) Save(ctx context.Context) error {
	for _, mode := range types.Modes() {
		if err := b.SaveMode(ctx, mode); err != nil {
			return err
		}
	}
	return nil
}

// SaveMode writes one document to the store
func (b *Buffer) SaveMode(ctx context.Context, mode types.Mode) error {
	doc, ok := b.docs[mode]
	if !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err := b.store.Put(ctx, storage.ContentKey(mode), doc.Serialize()); err != nil {
		return fmt.Errorf("failed to save %s: %w", mode, err)
	}
	b.dirty[mode] = false
	return nil
}

// Close closes the underlying store
func (b *Buffer) Close() error {
	return b.store.Close()
}
