// Package usecase provides application-level orchestration for the CLI
// workflow without Cobra dependencies.
package usecase

import (
	"fmt"
	"time"

	"dedupe/pkg/grouper"
	"dedupe/pkg/hasher"
	"dedupe/pkg/progress"
	"dedupe/pkg/resolver"
	"dedupe/pkg/safepath"
	"dedupe/pkg/scanner"
)

// Stage labels passed to ProgressCallback.
const (
	StageScan    = "scan"
	StageHash    = "hash"
	StageResolve = "resolve"
)

// ProgressCallback receives workflow stage progress updates.
type ProgressCallback func(stage string, processed, total int)

// WarningCallback receives per-item, non-fatal failures: unreadable files,
// failed deletes, failed moves.
type WarningCallback func(path string, err error)

// Request contains inputs for one dedupe run. The hasher and action are
// fixed for the whole run; a nil Hasher falls back to the default algorithm.
type Request struct {
	TargetDir  string
	Recursive  bool
	Hasher     *hasher.Hasher
	Action     resolver.Action
	MoveDest   string
	OnProgress ProgressCallback
	OnWarning  WarningCallback
}

// Execution contains the run outputs.
type Execution struct {
	RootDir      string
	FileCount    int
	ScanDuration time.Duration
	Groups       []grouper.Group
	Summary      resolver.Summary
}

// Service runs the scan -> hash/group -> resolve pipeline. Execution is
// strictly sequential and the only state is built in memory during the run.
type Service struct{}

// New creates a use-case service.
func New() *Service {
	return &Service{}
}

// Dedupe executes one run. It fails only when the target directory is
// invalid or unreadable; everything downstream of the scan is per-item
// tolerant and reported through OnWarning.
func (s *Service) Dedupe(req Request) (Execution, error) {
	v, err := safepath.New(req.TargetDir)
	if err != nil {
		return Execution{}, fmt.Errorf("validate target directory: %w", err)
	}

	r := resolver.New(req.Action, req.MoveDest, v)
	if r.Action() == resolver.Move && req.MoveDest == "" {
		return Execution{}, fmt.Errorf("move action requires a destination directory")
	}

	exec := Execution{RootDir: v.Root()}

	scanStart := time.Now()
	sc := scanner.New(scanner.Options{OnError: scanner.ErrorFunc(req.OnWarning)})
	files, err := sc.Scan(v.Root(), req.Recursive)
	if err != nil {
		return Execution{}, fmt.Errorf("scan %s: %w", v.Root(), err)
	}
	exec.FileCount = len(files)
	exec.ScanDuration = time.Since(scanStart)
	progress.EmitStage(req.OnProgress, StageScan, len(files), len(files))

	h := req.Hasher
	if h == nil {
		h = hasher.New(hasher.XXH64)
	}
	g := grouper.New(h, grouper.Options{
		OnProgress: func(processed, total int) {
			progress.EmitStage(req.OnProgress, StageHash, processed, total)
		},
		OnError: grouper.ErrorFunc(req.OnWarning),
	})
	exec.Groups = g.GroupByContent(files)

	exec.Summary = r.Resolve(exec.Groups)
	progress.EmitStage(req.OnProgress, StageResolve, len(exec.Groups), len(exec.Groups))

	return exec, nil
}
