package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dedupe/pkg/hasher"
	"dedupe/pkg/resolver"
)

func validateAndResolvePath(targetDir string) (string, error) {
	// Validate directory exists.
	info, err := os.Stat(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", targetDir)
	}

	// Convert to absolute path.
	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return absPath, nil
}

func printCommandHeader(rootDir string, algorithm hasher.Algorithm) {
	fmt.Printf("Root directory: %s\n", rootDir)
	fmt.Printf("Hash algorithm: %s\n", algorithm)
	if recursive {
		fmt.Println("Scanning recursively...")
	} else {
		fmt.Println("Scanning...")
	}
}

func printDryRunBanner(action resolver.Action) {
	if action != resolver.Report {
		return
	}

	fmt.Println("=== DRY RUN - no changes will be made ===")
	fmt.Println()
}

func printDryRunHint(action resolver.Action) {
	if action != resolver.Report {
		return
	}

	fmt.Println()
	fmt.Println("Run with --delete or --move to apply changes.")
}

func printSummary(lines ...string) {
	fmt.Println("=== Summary ===")
	for _, line := range lines {
		fmt.Println(line)
	}
}

// formatBytes renders a byte count with binary (1024) scaling.
func formatBytes(size int64) string {
	val := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if val < 1024 {
			return fmt.Sprintf("%.1f %s", val, unit)
		}
		val /= 1024
	}

	return fmt.Sprintf("%.1f TB", val)
}

type progressReporter struct {
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// startProgress prints an elapsed-time line to stderr every few seconds
// until stopped, so long runs over big trees stay visibly alive.
func startProgress(label string) *progressReporter {
	p := &progressReporter{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	startTime := time.Now()
	ticker := time.NewTicker(5 * time.Second)

	go func() {
		defer close(p.doneCh)
		for {
			select {
			case <-ticker.C:
				elapsed := time.Since(startTime).Round(time.Second)
				fmt.Fprintf(os.Stderr, "%s... %s elapsed\n", label, elapsed)
			case <-p.stopCh:
				ticker.Stop()
				return
			}
		}
	}()

	return p
}

func (p *progressReporter) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		<-p.doneCh
	})
}
