//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Fetch builds the CLI and runs a live smoke search against arXiv.
// Set TOPICS_FILE to search the topics listed in a YAML file instead of the
// two built-in sample topics.
func Fetch() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	if f := os.Getenv("TOPICS_FILE"); f != "" {
		return sh.RunV(bin, "fetch", "--topics-file", f)
	}
	return sh.RunV(bin, "fetch", "machine learning", "quantum computing")
}
