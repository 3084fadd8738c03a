// Package classify attributes compiled class files to the compilation units
// that produced them, using package-qualified name prefixes.
//
// Top-level declarations map to class file paths directly: a unit with
// package "com.example" and top-level name "Foo" owns com/example/Foo.class.
// Nested, local and anonymous classes compile to names like
// com/example/Foo$Inner.class or com/example/Foo$1.class; those names are
// compiler-synthesized and not enumerable from the manifest, so membership is
// tested structurally against every '$'-delimited prefix of the class name at
// classification time instead of being stored in the index.
package classify

import (
	"sort"
	"strings"

	"genjar/internal/manifest"
)

// PrefixSet is a set of slash-separated, package-qualified top-level
// declaration paths, e.g. "com/example/Foo".
type PrefixSet map[string]struct{}

// BuildPrefixes returns the prefixes contributed by every unit satisfying
// pred. A unit with package "a.b" and top-level name "Foo" contributes
// "a/b/Foo"; a unit in the default package contributes "Foo". Duplicates
// collapse. A manifest with zero matching units yields an empty set, which
// is valid input for matching.
func BuildPrefixes(units []manifest.CompilationUnit, pred func(manifest.CompilationUnit) bool) PrefixSet {
	set := make(PrefixSet)
	for _, unit := range units {
		if !pred(unit) {
			continue
		}
		pkg := ""
		if unit.Package != "" {
			pkg = strings.ReplaceAll(unit.Package, ".", "/") + "/"
		}
		for _, name := range unit.TopLevel {
			set[pkg+name] = struct{}{}
		}
	}
	return set
}

// Matches reports whether className belongs to a declaration in the set.
// A class whose name contains '$' isn't necessarily a nested class, so the
// full name is checked first, then every prefix of className that ends
// immediately before a '$': Outer$Inner$1 matches when the set holds Outer.
func (s PrefixSet) Matches(className string) bool {
	if _, ok := s[className]; ok {
		return true
	}
	for i := 0; i < len(className); i++ {
		if className[i] != '$' {
			continue
		}
		if _, ok := s[className[:i]]; ok {
			return true
		}
	}
	return false
}

// Elements returns the set's contents sorted, for stable logs and tests.
func (s PrefixSet) Elements() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Classifier decides, per compiled class name, whether the class is part of
// the generated-classes output. It is immutable once built.
type Classifier struct {
	generated   PrefixSet
	userWritten PrefixSet
}

// NewClassifier builds the two prefix indexes from the manifest: one for
// units generated by an annotation processor, one for user-written units.
// The two predicates partition the manifest's units exactly.
func NewClassifier(m *manifest.Manifest) *Classifier {
	return &Classifier{
		generated: BuildPrefixes(m.CompilationUnits, func(u manifest.CompilationUnit) bool {
			return u.GeneratedByAnnotationProcessor
		}),
		userWritten: BuildPrefixes(m.CompilationUnits, func(u manifest.CompilationUnit) bool {
			return !u.GeneratedByAnnotationProcessor
		}),
	}
}

// Includes reports whether the class file for className belongs in the
// generated-classes jar: true when the name matches a generated unit, or when
// it matches no user-written unit at all. Classes that can't be attributed to
// any declared source — synthetic classes with no textual counterpart in the
// manifest — are assumed generated rather than dropped. Downstream tooling
// depends on that fallback; don't tighten it.
func (c *Classifier) Includes(className string) bool {
	return c.generated.Matches(className) || !c.userWritten.Matches(className)
}

// GeneratedPrefixes returns the generated-unit index. Callers must not
// mutate it.
func (c *Classifier) GeneratedPrefixes() PrefixSet { return c.generated }

// UserWrittenPrefixes returns the user-written-unit index. Callers must not
// mutate it.
func (c *Classifier) UserWrittenPrefixes() PrefixSet { return c.userWritten }

// Overlap returns, sorted, the prefixes present in both indexes. A
// well-formed manifest flags each unit unambiguously, so a non-empty overlap
// means two units of opposite provenance declared the same top-level name.
// Overlapping names still classify as generated (Includes checks the
// generated index first); this exists for diagnostics only.
func (c *Classifier) Overlap() []string {
	var both []string
	for p := range c.generated {
		if _, ok := c.userWritten[p]; ok {
			both = append(both, p)
		}
	}
	sort.Strings(both)
	return both
}
