package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	separator string
	maxLength int
}

func defaultConfig() *config {
	return &config{
		separator: "-",
		maxLength: 0, // no limit
	}
}

// Separator sets the separator string. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// MaxLength truncates the slug to at most n runes. Truncation never leaves a
// trailing separator.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// foldMarks decomposes to NFD, drops combining marks, and recomposes, so that
// "Café" folds to "Cafe" before slugification.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a human-readable name into a lowercase, identifier-safe slug.
// The result depends only on the input and options: no randomness, no
// process state. Content identifiers are derived from slugs, so two runs over
// the same source must produce the same slugs byte for byte.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}

	sepLen := len([]rune(cfg.separator))

	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	count := 0
	for _, r := range s {
		if cfg.maxLength > 0 && count >= cfg.maxLength {
			break
		}

		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && count > 0 {
				if cfg.maxLength > 0 && count+sepLen+1 > cfg.maxLength {
					break
				}
				b.WriteString(cfg.separator)
				count += sepLen
			}
			pendingSep = false
			b.WriteRune(r)
			count++
			continue
		}

		// Everything else separates; consecutive runs collapse into one.
		pendingSep = true
	}

	return b.String()
}

// Path joins the slugs of the given segments with "/", forming a stable
// hierarchical identifier such as "algebra/unit-1/linear-equations/p1/s1".
// Empty segments stay empty path elements so that paths of different depths
// cannot collide.
func Path(segments ...string) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = Make(seg)
	}
	return strings.Join(parts, "/")
}
