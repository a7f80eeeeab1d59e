// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-digest.
package types

import "time"

// Paper is one deduplicated arXiv paper returned by a topic search. It is a
// value type: the fetcher builds it once per result and never mutates it.
type Paper struct {
	// ID is the version-less arXiv identifier (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by arXiv.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper summary with line breaks folded into spaces.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL links to the full text.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the submission time of the first version.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists the arXiv classification tags (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`
}
