// Package grouper partitions files into duplicate groups keyed by content
// digest.
package grouper

import (
	"dedupe/pkg/hasher"
	"dedupe/pkg/progress"
	"dedupe/pkg/scanner"
)

// Group is a set of files sharing one content digest.
type Group struct {
	Digest string
	Size   int64              // Size of the first member at scan time
	Files  []scanner.FileInfo // Discovery order
}

// ProgressFunc receives per-file hashing progress.
type ProgressFunc func(processed, total int)

// ErrorFunc receives per-file hashing failures. The file is dropped from
// further consideration and the run continues.
type ErrorFunc func(path string, err error)

// Options configures the grouper callbacks.
type Options struct {
	OnProgress ProgressFunc
	OnError    ErrorFunc
}

// Grouper hashes files and groups them by digest.
type Grouper struct {
	hasher     *hasher.Hasher
	onProgress ProgressFunc
	onError    ErrorFunc
}

// New creates a Grouper using the given hasher.
func New(h *hasher.Hasher, opts Options) *Grouper {
	return &Grouper{
		hasher:     h,
		onProgress: opts.OnProgress,
		onError:    opts.OnError,
	}
}

// GroupByContent hashes every file exactly once and returns the groups with
// at least two members, in digest-discovery order. Files within a group keep
// their discovery order, which feeds keeper selection downstream.
func (g *Grouper) GroupByContent(files []scanner.FileInfo) []Group {
	byDigest := make(map[string][]scanner.FileInfo)
	order := make([]string, 0)
	total := len(files)

	for i, f := range files {
		digest, err := g.hasher.ComputeHash(f.Path)
		if err != nil {
			if g.onError != nil {
				g.onError(f.Path, err)
			}
			progress.Emit(g.onProgress, i+1, total)
			continue
		}

		if _, seen := byDigest[digest]; !seen {
			order = append(order, digest)
		}
		byDigest[digest] = append(byDigest[digest], f)
		progress.Emit(g.onProgress, i+1, total)
	}

	groups := make([]Group, 0)
	for _, digest := range order {
		members := byDigest[digest]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, Group{
			Digest: digest,
			Size:   members[0].Size,
			Files:  members,
		})
	}

	return groups
}
