// Package citation turns retrieved documents into human-readable source labels.
package citation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ErrMissingSource is returned when a document must carry a source but does not.
var ErrMissingSource = errors.New("document metadata has no source")

// Document is a retrieved document as handed over by the retrieval backend.
type Document struct {
	PageContent string         `json:"page_content,omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

// Item is one citation line: the display label plus the raw source used for icon lookup.
type Item struct {
	Label  string
	Source string
}

// Source returns the document's source path or URI, or "" when none is set.
func (d Document) Source() string {
	v, ok := d.Metadata["source"]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Page returns the 0-based page number recorded in the metadata.
// ok is false when the page is absent or cannot be read as an integer.
func (d Document) Page() (page int, ok bool) {
	v, present := d.Metadata["page"]
	if !present || v == nil {
		return 0, false
	}
	var err error
	switch p := v.(type) {
	case string:
		page, err = strconv.Atoi(strings.TrimSpace(p))
	default:
		page, err = cast.ToIntE(v)
	}
	if err != nil {
		return 0, false
	}
	return page, true
}

// HasSource reports whether the metadata carries a source key at all.
func (d Document) HasSource() bool {
	_, ok := d.Metadata["source"]
	return ok
}

// IsPDF reports whether source names a PDF file.
func IsPDF(source string) bool {
	return strings.HasSuffix(strings.ToLower(source), ".pdf")
}

// FormatSource returns the citation label for doc. PDF sources with a page
// number get a 1-based page suffix; everything else is returned as is.
func FormatSource(doc Document) string {
	src := doc.Source()
	if src == "" {
		return ""
	}
	if !IsPDF(src) {
		return src
	}
	page, ok := doc.Page()
	if !ok {
		return src
	}
	return fmt.Sprintf("%s（ページNo.%d）", src, page+1)
}

// Collect labels docs, drops documents without a source and removes repeated
// labels. The first occurrence of each label wins and input order is kept.
func Collect(docs []Document) []Item {
	items := make([]Item, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		label := FormatSource(d)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		items = append(items, Item{Label: label, Source: d.Source()})
	}
	return items
}

// CollectStrict behaves like Collect but fails on the first document whose
// metadata has no source key. A present but empty source is skipped.
func CollectStrict(docs []Document) ([]Item, error) {
	for i, d := range docs {
		if !d.HasSource() {
			return nil, fmt.Errorf("context[%d]: %w", i, ErrMissingSource)
		}
	}
	return Collect(docs), nil
}

// Labels returns the label of every item.
func Labels(items []Item) []string {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	return labels
}
