package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dedupe/pkg/scanner"
)

func entry(name string) scanner.FileInfo {
	return scanner.FileInfo{Path: "/data/" + name, Name: name}
}

func entries(names ...string) []scanner.FileInfo {
	out := make([]scanner.FileInfo, 0, len(names))
	for _, n := range names {
		out = append(out, entry(n))
	}
	return out
}

func TestHasCopySuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"photo_1.jpg", true},
		{"photo_12.jpg", true},
		{"photo.jpg", false},
		{"photo_v2.jpg", false},
		{"photo_.jpg", false},
		{"123.jpg", false},
		{"_5.jpg", true},
		{"archive_3.tar.gz", false}, // stem is "archive_3.tar", no trailing _N
		{"noext_7", true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, hasCopySuffix(tc.name))
		})
	}
}

// A name without a numeric suffix beats suffixed names regardless of length
// or alphabetical order.
func TestSelectKeeper_SuffixedCopiesLose(t *testing.T) {
	t.Parallel()

	keeper, removable := SelectKeeper(entries("photo_2.jpg", "photo.jpg", "photo_1.jpg"))

	assert.Equal(t, "photo.jpg", keeper.Name)
	require.Len(t, removable, 2)
	assert.Equal(t, "photo_1.jpg", removable[0].Name)
	assert.Equal(t, "photo_2.jpg", removable[1].Name)
}

func TestSelectKeeper_SuffixBeatsLength(t *testing.T) {
	t.Parallel()

	keeper, _ := SelectKeeper(entries("a_1.jpg", "zzzzzzzzzz.jpg"))
	assert.Equal(t, "zzzzzzzzzz.jpg", keeper.Name)
}

func TestSelectKeeper_ShorterNameWins(t *testing.T) {
	t.Parallel()

	keeper, removable := SelectKeeper(entries("bb.jpg", "a.jpg"))

	assert.Equal(t, "a.jpg", keeper.Name)
	require.Len(t, removable, 1)
	assert.Equal(t, "bb.jpg", removable[0].Name)
}

// Name length is compared in characters, not bytes: "é.jpg" is five
// characters (six bytes in UTF-8) and must beat the six-character "ab.jpg".
func TestSelectKeeper_LengthCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	keeper, removable := SelectKeeper(entries("ab.jpg", "é.jpg"))

	assert.Equal(t, "é.jpg", keeper.Name)
	require.Len(t, removable, 1)
	assert.Equal(t, "ab.jpg", removable[0].Name)
}

func TestSelectKeeper_CaseInsensitiveTiebreak(t *testing.T) {
	t.Parallel()

	keeper, _ := SelectKeeper(entries("beta.jpg", "Alfa.jpg"))
	assert.Equal(t, "Alfa.jpg", keeper.Name)
}

// On a full tie (same suffix class, length, and case-insensitive name) the
// sort is stable, so the first-discovered file wins.
func TestSelectKeeper_ExactTieKeepsFirstDiscovered(t *testing.T) {
	t.Parallel()

	keeper, _ := SelectKeeper(entries("Alpha.jpg", "alpha.jpg"))
	assert.Equal(t, "Alpha.jpg", keeper.Name)

	keeper, _ = SelectKeeper(entries("alpha.jpg", "Alpha.jpg"))
	assert.Equal(t, "alpha.jpg", keeper.Name)
}

// Outside exact ties, the selection is a strict total order: every input
// permutation yields the same keeper.
func TestSelectKeeper_PermutationInvariant(t *testing.T) {
	t.Parallel()

	permutations := [][]string{
		{"photo.jpg", "photo_1.jpg", "pic.jpg"},
		{"photo_1.jpg", "pic.jpg", "photo.jpg"},
		{"pic.jpg", "photo.jpg", "photo_1.jpg"},
		{"pic.jpg", "photo_1.jpg", "photo.jpg"},
		{"photo.jpg", "pic.jpg", "photo_1.jpg"},
		{"photo_1.jpg", "photo.jpg", "pic.jpg"},
	}

	for _, perm := range permutations {
		keeper, removable := SelectKeeper(entries(perm...))
		assert.Equal(t, "pic.jpg", keeper.Name, "input order %v", perm)
		assert.Len(t, removable, 2)
	}
}

// SelectKeeper must not mutate the caller's slice.
func TestSelectKeeper_InputUntouched(t *testing.T) {
	t.Parallel()

	input := entries("photo_1.jpg", "photo.jpg")
	SelectKeeper(input)

	assert.Equal(t, "photo_1.jpg", input[0].Name)
	assert.Equal(t, "photo.jpg", input[1].Name)
}
