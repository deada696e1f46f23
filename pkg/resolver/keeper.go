package resolver

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"dedupe/pkg/scanner"
)

// copySuffix matches a trailing _N marker on a filename stem, e.g. the "_1"
// in "photo_1.jpg". Such names are a strong signal of an auto-renamed copy
// rather than the original.
var copySuffix = regexp.MustCompile(`_(\d+)$`)

// hasCopySuffix reports whether the filename carries a numeric _N suffix
// immediately before the extension.
func hasCopySuffix(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return copySuffix.MatchString(stem)
}

// SelectKeeper picks the file to keep from a duplicate group and returns it
// with the remaining removable files. Preference order:
//  1. names without a numeric _N suffix rank first
//  2. shorter filenames (fewer characters) rank first
//  3. case-insensitive lexicographic filename order
//
// The sort is stable, so on a full tie the first-discovered file wins. The
// same group always yields the same keeper.
func SelectKeeper(files []scanner.FileInfo) (scanner.FileInfo, []scanner.FileInfo) {
	ordered := append([]scanner.FileInfo(nil), files...)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		aSuffixed, bSuffixed := hasCopySuffix(a.Name), hasCopySuffix(b.Name)
		if aSuffixed != bSuffixed {
			return !aSuffixed
		}
		// Length is counted in characters, not bytes, so multibyte names
		// rank the same as their ASCII equivalents.
		aLen, bLen := utf8.RuneCountInString(a.Name), utf8.RuneCountInString(b.Name)
		if aLen != bLen {
			return aLen < bLen
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return ordered[0], ordered[1:]
}
