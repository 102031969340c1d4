package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyShape(t *testing.T) {
	slug := Slugify("Test Post 01")
	assert.Regexp(t, regexp.MustCompile(`^test-post-01-\d+$`), slug)
}

func TestSlugifyStripsPunctuation(t *testing.T) {
	slug := Slugify("Hello, World! (again)")
	assert.Regexp(t, regexp.MustCompile(`^hello-world-again-\d+$`), slug)
}

func TestSlugifyCollapsesWhitespace(t *testing.T) {
	slug := Slugify("a    b")
	assert.Regexp(t, regexp.MustCompile(`^a-b-\d+$`), slug)
}

func TestSlugifySuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[Slugify("Same Title")] = true
	}
	// 20 draws over a million suffixes should practically never all collide.
	assert.Greater(t, len(seen), 1)
}
