// Package resolver selects the keeper within each duplicate group and
// applies the requested action to the remaining copies.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dedupe/pkg/grouper"
	"dedupe/pkg/safepath"
)

// Action is the per-run resolution mode, chosen once at startup.
type Action int

const (
	// Report lists duplicates without touching the filesystem.
	Report Action = iota
	// Delete unlinks every removable file.
	Delete
	// Move relocates removable files into a destination directory.
	Move
)

// String returns the CLI name of the action.
func (a Action) String() string {
	switch a {
	case Delete:
		return "delete"
	case Move:
		return "move"
	default:
		return "report"
	}
}

// RemoveOperation records the outcome for one removable file.
type RemoveOperation struct {
	Path string
	Dest string // Move destination, set on success
	Err  error
}

// GroupOutcome records the resolution of one duplicate group.
type GroupOutcome struct {
	Digest     string
	Keeper     string
	Size       int64 // Keeper size from a fresh stat
	Operations []RemoveOperation
	Err        error // Set when the keeper could not be stat'd; group skipped
}

// Summary accumulates one run. It is built fresh per invocation and never
// persisted.
type Summary struct {
	Groups          []GroupOutcome
	DuplicateGroups int   // Groups resolved (keeper stat succeeded)
	FilesAffected   int   // Removables processed without error
	ErrorCount      int   // Skipped groups plus failed removables
	BytesFreed      int64 // Keeper size times successful removables, per group
}

// Resolver applies one action to every duplicate group. Failures are
// per-item: one failed delete or move is recorded and the batch continues.
// Nothing is retried and nothing is rolled back; an interrupted run leaves
// partially applied actions in place.
type Resolver struct {
	action    Action
	dest      string
	validator *safepath.Validator
}

// New creates a Resolver. dest is only consulted for Move. The validator
// guards destructive operations so sources never escape the scanned root.
func New(action Action, dest string, validator *safepath.Validator) *Resolver {
	return &Resolver{
		action:    action,
		dest:      dest,
		validator: validator,
	}
}

// Action returns the configured action.
func (r *Resolver) Action() Action {
	return r.action
}

// Resolve processes groups in order and returns the accumulated summary.
func (r *Resolver) Resolve(groups []grouper.Group) Summary {
	summary := Summary{Groups: make([]GroupOutcome, 0, len(groups))}

	for _, group := range groups {
		outcome := r.resolveGroup(group)
		summary.Groups = append(summary.Groups, outcome)

		if outcome.Err != nil {
			summary.ErrorCount++
			continue
		}

		summary.DuplicateGroups++
		for _, op := range outcome.Operations {
			if op.Err != nil {
				summary.ErrorCount++
				continue
			}
			summary.FilesAffected++
			summary.BytesFreed += outcome.Size
		}
	}

	return summary
}

func (r *Resolver) resolveGroup(group grouper.Group) GroupOutcome {
	keeper, removable := SelectKeeper(group.Files)

	outcome := GroupOutcome{
		Digest: group.Digest,
		Keeper: keeper.Path,
	}

	// Files may have changed between the hash pass and now; the size that
	// feeds the accounting comes from a fresh stat of the keeper.
	info, err := os.Stat(keeper.Path)
	if err != nil {
		outcome.Err = fmt.Errorf("stat keeper: %w", err)
		return outcome
	}
	outcome.Size = info.Size()

	for _, dup := range removable {
		outcome.Operations = append(outcome.Operations, r.remove(dup.Path))
	}

	return outcome
}

func (r *Resolver) remove(path string) RemoveOperation {
	op := RemoveOperation{Path: path}

	switch r.action {
	case Report:
		// No filesystem mutation in report mode.
	case Delete:
		if err := r.validator.SafeRemove(path); err != nil {
			op.Err = fmt.Errorf("delete: %w", err)
		}
	case Move:
		dest, err := r.moveFile(path)
		if err != nil {
			op.Err = fmt.Errorf("move: %w", err)
		} else {
			op.Dest = dest
		}
	}

	return op
}

// moveFile relocates path into the destination directory, creating it if
// absent. Name collisions are resolved by appending an incrementing numeric
// suffix before the extension until a free name is found; an existing
// destination file is never overwritten.
func (r *Resolver) moveFile(path string) (string, error) {
	if err := r.validator.ValidatePathForWrite(path); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dest, 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	name := filepath.Base(path)
	target := filepath.Join(r.dest, name)

	for counter := 1; ; counter++ {
		_, err := os.Lstat(target)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", err
		}
		target = filepath.Join(r.dest, withConflictSuffix(name, counter))
	}

	if err := os.Rename(path, target); err != nil {
		return "", err
	}

	return target, nil
}

// withConflictSuffix inserts "_N" before the file extension, e.g.
// "photo.jpg" with n=2 becomes "photo_2.jpg".
func withConflictSuffix(name string, n int) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	return fmt.Sprintf("%s_%d%s", base, n, ext)
}
