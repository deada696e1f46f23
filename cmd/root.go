package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dedupe/pkg/hasher"
	"dedupe/pkg/resolver"
	"dedupe/pkg/usecase"
)

var (
	recursive bool
	hashName  string
	doDelete  bool
	moveDest  string
	dryRun    bool
	verbose   bool
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe [flags] <directory>",
		Short: "Find and remove duplicate files by content hash",
		Long: `dedupe scans a directory for files with identical content and helps
clean up duplicates, keeping the most likely "original" based on filename
patterns.

Files are hashed in fixed-size chunks and grouped by digest; only groups with
two or more members are duplicates. Within a group the keeper is chosen
deterministically: names without a numeric _N suffix win, then shorter names,
then case-insensitive alphabetical order.

Examples:
  # Dry-run: list duplicates without removing anything (default)
  dedupe /path/to/directory

  # Delete duplicates, keeping one copy per group
  dedupe /path/to/directory --delete

  # Move duplicates into a trash directory instead of deleting
  dedupe /path/to/directory --move trash/

  # Search subdirectories recursively
  dedupe /path/to/directory -r

  # Use SHA256 instead of the default xxh64
  dedupe /path/to/directory --hash sha256

Safety:
  Delete and move only ever touch files inside the scanned directory.
  Moves never overwrite files at the destination; colliding names get an
  incrementing _N suffix. Use the default dry-run first to review.`,
		Args: cobra.ExactArgs(1),
		RunE: runDedupe,
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search subdirectories recursively")
	cmd.Flags().StringVar(&hashName, "hash", "xxh64", "Hash algorithm to use (xxh64 or sha256)")
	cmd.Flags().BoolVar(&doDelete, "delete", false, "Delete duplicate files (keep one copy)")
	cmd.Flags().StringVar(&moveDest, "move", "", "Move duplicates to the given directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes (default)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.MarkFlagsMutuallyExclusive("delete", "move", "dry-run")

	return cmd
}

func runDedupe(_ *cobra.Command, args []string) error {
	absPath, err := validateAndResolvePath(args[0])
	if err != nil {
		return err
	}

	algorithm, err := hasher.ParseAlgorithm(hashName)
	if err != nil {
		return err
	}
	h := hasher.New(algorithm)

	action := resolver.Report
	switch {
	case doDelete:
		action = resolver.Delete
	case moveDest != "":
		action = resolver.Move
	}

	printDryRunBanner(action)
	printCommandHeader(absPath, h.Algorithm())

	ticker := startProgress("Working")
	exec, err := usecase.New().Dedupe(usecase.Request{
		TargetDir:  absPath,
		Recursive:  recursive,
		Hasher:     h,
		Action:     action,
		MoveDest:   moveDest,
		OnProgress: printStageProgress,
		OnWarning:  printWarning,
	})
	ticker.Stop()
	if err != nil {
		return err
	}

	if len(exec.Groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}

	for _, outcome := range exec.Summary.Groups {
		printGroupOutcome(outcome, action)
	}

	fmt.Println()
	printSummary(
		fmt.Sprintf("Duplicate groups: %d", exec.Summary.DuplicateGroups),
		fmt.Sprintf("Files %s: %d", actionVerb(action), exec.Summary.FilesAffected),
		fmt.Sprintf("Errors: %d", exec.Summary.ErrorCount),
		"Space freed: "+formatBytes(exec.Summary.BytesFreed),
	)
	printDryRunHint(action)

	return nil
}

func printStageProgress(stage string, processed, total int) {
	switch stage {
	case usecase.StageScan:
		fmt.Printf("Found %d files. Computing hashes...\n", total)
	case usecase.StageHash:
		fmt.Printf("\rHashing files: %d/%d", processed, total)
		if processed == total {
			fmt.Println()
		}
	}
}

func printWarning(path string, err error) {
	fmt.Fprintf(os.Stderr, "Warning: cannot process %s: %v\n", path, err)
}

func printGroupOutcome(outcome resolver.GroupOutcome, action resolver.Action) {
	if outcome.Err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping group %s: %v\n", outcome.Digest, outcome.Err)
		return
	}

	fmt.Printf("\nDuplicate group (%d files, %s each):\n", len(outcome.Operations)+1, formatBytes(outcome.Size))
	fmt.Printf("  KEEP: %s\n", outcome.Keeper)
	if verbose {
		fmt.Printf("  HASH: %s\n", outcome.Digest)
	}

	for _, op := range outcome.Operations {
		printRemoveOperation(op, action)
	}
}

func printRemoveOperation(op resolver.RemoveOperation, action resolver.Action) {
	switch {
	case op.Err != nil:
		fmt.Printf("  DUP:  %s\n", op.Path)
		fmt.Fprintf(os.Stderr, "Warning: cannot process %s: %v\n", op.Path, op.Err)
	case action == resolver.Move:
		fmt.Printf("  DUP:  %s -> %s\n", op.Path, op.Dest)
	default:
		fmt.Printf("  DUP:  %s\n", op.Path)
	}
}

func actionVerb(action resolver.Action) string {
	switch action {
	case resolver.Delete:
		return "removed"
	case resolver.Move:
		return "moved"
	default:
		return "would be removed"
	}
}
