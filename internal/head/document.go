package head

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/terroirai/terroir-web/pkg/hashutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

/*
Responsibilities
- Hold the parsed page document
- Accumulate head changes as a keyed mapping (tag identity -> value)
- Flush the mapping into the real <head>, finding or creating each element

Flush Semantics
- Every keyed element exists at most once after a flush; duplicates left by
  the page shell are removed
- Keys set to nil are removed from the head
- Elements not named by the mapping are never touched
- New elements are appended in the order their keys were first set

The document never decides what the head should contain; callers do.
*/
type Document struct {
	mu      sync.Mutex
	root    *html.Node
	pending pendingState
}

// New creates an empty HTML document.
func New() *Document {
	doc, _ := Parse(strings.NewReader(emptyDocument))
	return doc
}

// Parse reads a page shell. The shell may already carry head elements; they
// are updated in place by later flushes.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &HeadError{
			Message: err.Error(),
			Cause:   ErrCauseParseFailure,
		}
	}
	return &Document{
		root:    root,
		pending: newPendingState(),
	}, nil
}

func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.title = &title
}

func (d *Document) SetMeta(key TagKey, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setMeta(key, &content)
}

func (d *Document) RemoveMeta(key TagKey) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setMeta(key, nil)
}

func (d *Document) setMeta(key TagKey, content *string) {
	if _, seen := d.pending.metas[key]; !seen {
		d.pending.metaOrder = append(d.pending.metaOrder, key)
	}
	d.pending.metas[key] = content
}

func (d *Document) SetLink(rel string, href string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, seen := d.pending.links[rel]; !seen {
		d.pending.linkOrder = append(d.pending.linkOrder, rel)
	}
	d.pending.links[rel] = &href
}

// SetPrimaryScript replaces the single unkeyed JSON-LD block.
func (d *Document) SetPrimaryScript(body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.primary = &body
	d.pending.hasPrimary = true
}

// RemovePrimaryScript drops the unkeyed JSON-LD block.
func (d *Document) RemovePrimaryScript() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.primary = nil
	d.pending.hasPrimary = true
}

// SetSecondaryScript replaces the JSON-LD block tagged data-schema=key.
func (d *Document) SetSecondaryScript(key string, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setSecondary(key, &body)
}

func (d *Document) RemoveSecondaryScript(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setSecondary(key, nil)
}

func (d *Document) setSecondary(key string, body *string) {
	if _, seen := d.pending.secondary[key]; !seen {
		d.pending.secondaryOrder = append(d.pending.secondaryOrder, key)
	}
	d.pending.secondary[key] = body
}

// Flush writes every pending change into the head and clears the mapping.
func (d *Document) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending.empty() {
		return nil
	}

	headSel, err := d.head()
	if err != nil {
		return err
	}

	if d.pending.title != nil {
		upsertTitle(headSel, *d.pending.title)
	}
	for _, key := range d.pending.metaOrder {
		upsertAttr(headSel, "meta", key.Attr, key.Name, "content", d.pending.metas[key])
	}
	for _, rel := range d.pending.linkOrder {
		upsertAttr(headSel, "link", "rel", rel, "href", d.pending.links[rel])
	}
	if d.pending.hasPrimary {
		replaceScript(headSel, "", d.pending.primary)
	}
	for _, key := range d.pending.secondaryOrder {
		replaceScript(headSel, key, d.pending.secondary[key])
	}

	d.pending = newPendingState()
	return nil
}

func (d *Document) head() (*goquery.Selection, error) {
	headSel := goquery.NewDocumentFromNode(d.root).Find("head").First()
	if headSel.Length() == 0 {
		return nil, &HeadError{
			Message: "no <head> element in document",
			Cause:   ErrCauseNoHead,
		}
	}
	return headSel, nil
}

func upsertTitle(headSel *goquery.Selection, title string) {
	existing := headSel.Find("title")
	if existing.Length() == 0 {
		node := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		headSel.AppendNodes(node)
		return
	}
	existing.First().SetText(title)
	existing.Slice(1, goquery.ToEnd).Remove()
}

// upsertAttr keeps exactly one <tag keyAttr=keyValue> whose valueAttr is value,
// or removes every match when value is nil.
func upsertAttr(headSel *goquery.Selection, tag, keyAttr, keyValue, valueAttr string, value *string) {
	matches := headSel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(keyAttr)
		return ok && v == keyValue
	})

	if value == nil {
		matches.Remove()
		return
	}

	if matches.Length() == 0 {
		headSel.AppendNodes(&html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
			Attr: []html.Attribute{
				{Key: keyAttr, Val: keyValue},
				{Key: valueAttr, Val: *value},
			},
		})
		return
	}
	matches.First().SetAttr(valueAttr, *value)
	matches.Slice(1, goquery.ToEnd).Remove()
}

// replaceScript removes every JSON-LD block in the slot and, when body is
// non-nil, appends exactly one new block. key "" is the primary slot.
func replaceScript(headSel *goquery.Selection, key string, body *string) {
	jsonLDSlot(headSel, key).Remove()
	if body == nil {
		return
	}

	attrs := []html.Attribute{{Key: "type", Val: jsonLDType}}
	if key != "" {
		attrs = append(attrs, html.Attribute{Key: schemaKeyAttr, Val: key})
	}
	node := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script, Attr: attrs}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: *body})
	headSel.AppendNodes(node)
}

func jsonLDSlot(headSel *goquery.Selection, key string) *goquery.Selection {
	return headSel.Find("script").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if t, _ := s.Attr("type"); t != jsonLDType {
			return false
		}
		v, tagged := s.Attr(schemaKeyAttr)
		if key == "" {
			return !tagged
		}
		return tagged && v == key
	})
}

// Title returns the text of the first <title>, as last flushed.
func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	headSel, err := d.head()
	if err != nil {
		return ""
	}
	return headSel.Find("title").First().Text()
}

// Meta returns the content of the flushed <meta> identified by key.
func (d *Document) Meta(key TagKey) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attrValue("meta", key.Attr, key.Name, "content")
}

// Link returns the href of the flushed <link rel=rel>.
func (d *Document) Link(rel string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attrValue("link", "rel", rel, "href")
}

func (d *Document) attrValue(tag, keyAttr, keyValue, valueAttr string) (string, bool) {
	headSel, err := d.head()
	if err != nil {
		return "", false
	}
	match := headSel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(keyAttr)
		return ok && v == keyValue
	}).First()
	if match.Length() == 0 {
		return "", false
	}
	return match.Attr(valueAttr)
}

// Scripts lists the JSON-LD blocks in document order.
func (d *Document) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	headSel, err := d.head()
	if err != nil {
		return nil
	}

	var scripts []Script
	headSel.Find("script").Each(func(_ int, s *goquery.Selection) {
		if t, _ := s.Attr("type"); t != jsonLDType {
			return
		}
		key, _ := s.Attr(schemaKeyAttr)
		scripts = append(scripts, Script{Key: key, Body: s.Text()})
	})
	return scripts
}

// Count returns how many head elements match selector.
func (d *Document) Count(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	headSel, err := d.head()
	if err != nil {
		return 0
	}
	return headSel.Find(selector).Length()
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := html.Render(w, d.root); err != nil {
		return &HeadError{Message: err.Error(), Cause: ErrCauseRenderFailure}
	}
	return nil
}

// HeadHTML renders the <head> element alone.
func (d *Document) HeadHTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	headSel, err := d.head()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, headSel.Get(0)); err != nil {
		return "", &HeadError{Message: err.Error(), Cause: ErrCauseRenderFailure}
	}
	return buf.String(), nil
}

// Fingerprint is a short blake3 digest of the rendered head. Two documents
// with identical heads share a fingerprint.
func (d *Document) Fingerprint() (string, error) {
	rendered, err := d.HeadHTML()
	if err != nil {
		return "", err
	}
	return hashutil.Fingerprint([]byte(rendered), 16), nil
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return fmt.Sprintf("<unrenderable: %v>", err)
	}
	return buf.String()
}
