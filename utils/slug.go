package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w ]+`)
	slugCollapse = regexp.MustCompile(` +`)
)

// Slugify derives a URL-safe lowercase slug from a post title, appending a
// random numeric suffix in 1..1,000,000 to keep accidental collisions
// unlikely. "Test Post 01" becomes e.g. "test-post-01-482911".
func Slugify(title string) string {
	s := strings.ToLower(fmt.Sprintf("%s %d", title, rand.Intn(1000000)+1))
	s = slugStrip.ReplaceAllString(s, "")
	return slugCollapse.ReplaceAllString(s, "-")
}
