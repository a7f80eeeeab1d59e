// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
)

// Namespace prefixes arXiv declares on its Atom feed.
const (
	arxivPrefix      = "arxiv"
	opensearchPrefix = "opensearch"
)

// Author is one paper author.
type Author struct {
	Name string
}

func (a Author) String() string { return a.Name }

// Link is one <link> element of an entry.
type Link struct {
	Href  string
	Title string
	Rel   string
	Type  string
}

// Result is one arXiv entry.
type Result struct {
	// EntryID is the entry's canonical URL (e.g. "http://arxiv.org/abs/2301.07041v2").
	EntryID         string
	Updated         time.Time
	Published       time.Time
	Title           string
	Authors         []Author
	Summary         string
	Comment         string
	JournalRef      string
	DOI             string
	PrimaryCategory string
	Categories      []string
	Links           []Link
	PDFURL          string
}

// ShortID returns the version-less arXiv ID of r.
func (r Result) ShortID() string { return ShortID(r.EntryID) }

// ShortID extracts the arXiv ID from an entry URL and strips its version
// suffix, so "http://arxiv.org/abs/2301.07041v2", "abs/2301.07041v1" and
// "2301.07041" all map to "2301.07041".
func ShortID(entryID string) string {
	id := strings.TrimPrefix(strings.TrimRight(entryID, "/"), "abs/")
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		id = id[idx+1:]
	}

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 && isDigits(id[vIdx+1:]) {
		id = id[:vIdx]
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// page is one parsed API response.
type page struct {
	results []Result
	// total is opensearch:totalResults, or -1 when absent.
	total int
}

func parsePage(r io.Reader) (page, error) {
	fp := &atom.Parser{}
	feed, err := fp.Parse(r)
	if err != nil {
		return page{}, err
	}

	pg := page{total: -1}
	if v := extValue(feed.Extensions, opensearchPrefix, "totalResults"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pg.total = n
		}
	}

	pg.results = make([]Result, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if strings.Contains(entry.ID, "/api/errors") {
			return page{}, &APIError{Message: strings.TrimSpace(entry.Summary)}
		}
		res, err := newResult(entry)
		if err != nil {
			return page{}, err
		}
		pg.results = append(pg.results, res)
	}
	return pg, nil
}

func newResult(entry *atom.Entry) (Result, error) {
	if entry.PublishedParsed == nil {
		return Result{}, fmt.Errorf("entry %s: missing or invalid published date %q", entry.ID, entry.Published)
	}

	r := Result{
		EntryID:         strings.TrimSpace(entry.ID),
		Published:       entry.PublishedParsed.UTC(),
		Title:           strings.TrimSpace(entry.Title),
		Summary:         strings.TrimSpace(entry.Summary),
		Comment:         extValue(entry.Extensions, arxivPrefix, "comment"),
		JournalRef:      extValue(entry.Extensions, arxivPrefix, "journal_ref"),
		DOI:             extValue(entry.Extensions, arxivPrefix, "doi"),
		PrimaryCategory: extAttr(entry.Extensions, arxivPrefix, "primary_category", "term"),
	}
	if entry.UpdatedParsed != nil {
		r.Updated = entry.UpdatedParsed.UTC()
	}

	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		r.Authors = append(r.Authors, Author{Name: strings.TrimSpace(a.Name)})
	}
	for _, c := range entry.Categories {
		if c == nil || c.Term == "" {
			continue
		}
		r.Categories = append(r.Categories, c.Term)
	}
	for _, l := range entry.Links {
		if l == nil {
			continue
		}
		link := Link{Href: l.Href, Title: l.Title, Rel: l.Rel, Type: l.Type}
		r.Links = append(r.Links, link)
		if r.PDFURL == "" && (link.Title == "pdf" || link.Type == "application/pdf") {
			r.PDFURL = link.Href
		}
	}
	return r, nil
}

// extValue returns the trimmed text of the first prefix:name extension element.
func extValue(exts ext.Extensions, prefix, name string) string {
	if e, ok := firstExt(exts, prefix, name); ok {
		return strings.TrimSpace(e.Value)
	}
	return ""
}

// extAttr returns attribute attr of the first prefix:name extension element.
func extAttr(exts ext.Extensions, prefix, name, attr string) string {
	if e, ok := firstExt(exts, prefix, name); ok {
		return e.Attrs[attr]
	}
	return ""
}

func firstExt(exts ext.Extensions, prefix, name string) (ext.Extension, bool) {
	elems := exts[prefix][name]
	if len(elems) == 0 {
		return ext.Extension{}, false
	}
	return elems[0], true
}
