// Package slug derives identifier-safe names from human-readable content
// names and titles.
//
// Slugs here are the raw material for content identifiers, which must be
// stable across runs over unchanged sources: downstream consumers diff
// generated documents by id. The package therefore generates purely
// deterministic output — lowercase ASCII letters and digits with a
// configurable separator, Unicode diacritics folded to their ASCII base via
// golang.org/x/text, and no random components.
//
// Usage:
//
//	slug.Make("Linear Equations!")       // "linear-equations"
//	slug.Make("Café Physics")            // "cafe-physics"
//	slug.Path("Algebra", "Unit 1", "P1") // "algebra/unit-1/p1"
package slug
