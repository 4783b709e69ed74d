// Package docmodel owns the parsed Office Open XML word-processing
// container: the zip archive's parts, the body/header/footer XML trees, and
// the element-reference handles that block.Builder and apply.Applier use to
// address paragraphs, tables, and SDT subtrees without holding raw zip or
// etree plumbing themselves.
//
// The document model is single-owner (spec §5): Document is parsed once by
// OpenFile, read by the builder, and mutated only by the applier; nothing else touches the
// underlying etree trees directly.
package docmodel

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/docguard/anonymizer-cli/internal/apperr"
)

const (
	documentPart = "word/document.xml"
	mainNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

var headerFooterName = regexp.MustCompile(`^word/(header|footer)(\d+)\.xml$`)

// HeaderFooterPart is one header or footer XML part, attached to a section
// number derived from its filename (header1.xml, header2.xml, ...).
type HeaderFooterPart struct {
	Name    string // e.g. "word/header1.xml"
	Section int
	Kind    string // "header" or "footer"
	Doc     *etree.Document
	Root    *etree.Element // the <w:hdr> or <w:ftr> root element
}

// Document is the parsed OOXML container. Parts that BlockBuilder/Applier
// never touch (styles, numbering, relationships, media, theme, ...) are kept
// as raw bytes and round-trip byte-identical.
type Document struct {
	Body    *etree.Element // <w:body> within word/document.xml
	bodyDoc *etree.Document

	Headers []*HeaderFooterPart
	Footers []*HeaderFooterPart

	// rawParts holds every zip entry's bytes, keyed by its archive name.
	// Entries that are parsed into Body/Headers/Footers are still present
	// here as a bookkeeping fallback but are rendered from the live tree at
	// serialization time instead.
	rawParts []zipEntry
}

type zipEntry struct {
	name string
	data []byte
}

// OpenFile reads path as a zip-bundled OOXML word-processing container.
func OpenFile(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperr.Input(path, err)
	}
	defer zr.Close()

	doc := &Document{}
	var hfParts []*HeaderFooterPart

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, apperr.Input(f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, apperr.Input(f.Name, err)
		}
		doc.rawParts = append(doc.rawParts, zipEntry{name: f.Name, data: data})

		switch {
		case f.Name == documentPart:
			bodyDoc := etree.NewDocument()
			if err := bodyDoc.ReadFromBytes(data); err != nil {
				return nil, apperr.Input(f.Name, err)
			}
			root := bodyDoc.Root()
			if root == nil {
				return nil, apperr.Input(f.Name, fmt.Errorf("missing root element"))
			}
			body := root.SelectElement("body")
			if body == nil {
				return nil, apperr.Input(f.Name, fmt.Errorf("missing w:body"))
			}
			doc.bodyDoc = bodyDoc
			doc.Body = body

		case headerFooterName.MatchString(f.Name):
			m := headerFooterName.FindStringSubmatch(f.Name)
			kind := m[1]
			section, _ := strconv.Atoi(m[2])

			hfDoc := etree.NewDocument()
			if err := hfDoc.ReadFromBytes(data); err != nil {
				return nil, apperr.Input(f.Name, err)
			}
			root := hfDoc.Root()
			if root == nil {
				return nil, apperr.Input(f.Name, fmt.Errorf("missing root element"))
			}
			hfParts = append(hfParts, &HeaderFooterPart{
				Name:    f.Name,
				Section: section,
				Kind:    kind,
				Doc:     hfDoc,
				Root:    root,
			})
		}
	}

	if doc.Body == nil {
		return nil, apperr.Input(documentPart, fmt.Errorf("part not found in archive"))
	}

	sort.Slice(hfParts, func(i, j int) bool { return hfParts[i].Section < hfParts[j].Section })
	for _, p := range hfParts {
		if p.Kind == "header" {
			doc.Headers = append(doc.Headers, p)
		} else {
			doc.Footers = append(doc.Footers, p)
		}
	}

	return doc, nil
}

// WriteTo serialises the document into w as a zip archive. Parts that were
// never parsed into a live tree are copied through byte-identical;
// document.xml and every parsed header/footer are re-serialised from their
// (possibly mutated) tree.
func (d *Document) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	liveParts := map[string]*etree.Document{documentPart: d.bodyDoc}
	for _, h := range d.Headers {
		liveParts[h.Name] = h.Doc
	}
	for _, f := range d.Footers {
		liveParts[f.Name] = f.Doc
	}

	for _, entry := range d.rawParts {
		fw, err := zw.Create(entry.name)
		if err != nil {
			return err
		}
		if live, ok := liveParts[entry.name]; ok {
			live.Indent(0)
			if _, err := live.WriteTo(fw); err != nil {
				return err
			}
			continue
		}
		if _, err := fw.Write(entry.data); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Bytes serialises the document and returns the resulting archive bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BodyParagraphs returns the direct w:p children of the document body, in
// document order (not descending into tables).
func (d *Document) BodyParagraphs() []*etree.Element {
	return childElements(d.Body, "p")
}

// BodyTables returns the direct w:tbl children of the document body, in
// document order.
func (d *Document) BodyTables() []*etree.Element {
	return childElements(d.Body, "tbl")
}

// HeaderFooterParagraphs returns every w:p paragraph within a header or
// footer part that is not itself inside a w:sdt subtree (paragraphs nested
// in tables are included). SDT-contained paragraphs belong to the SDT's own
// block (see SdtNodes); a paragraph block and an SDT block never overlap,
// so a detection never gets planned against the same text twice.
func HeaderFooterParagraphs(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if localName(c) == "sdt" {
				continue
			}
			if localName(c) == "p" {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// SdtNodes returns every w:sdt subtree directly reachable from root (not
// descending into nested w:sdt, since a block is emitted for the outermost
// SDT only).
func SdtNodes(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if localName(c) == "sdt" {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func childElements(parent *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range parent.ChildElements() {
		if localName(c) == tag {
			out = append(out, c)
		}
	}
	return out
}

func descendantElements(root *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if localName(c) == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// localName returns an element's tag name ignoring its namespace prefix, so
// traversal helpers work whether a part declares "w:" or some other prefix
// for the WordprocessingML namespace.
func localName(e *etree.Element) string {
	tag := e.Tag
	if idx := strings.IndexByte(tag, ':'); idx >= 0 {
		return tag[idx+1:]
	}
	return tag
}
