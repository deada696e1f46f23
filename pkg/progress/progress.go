// Package progress delivers per-file and per-stage progress counters to
// optional caller-supplied callbacks. The pipeline reports hashing progress
// file by file and announces each stage (scan, hash, resolve) as it starts.
package progress

// clamp bounds processed to [0, total].
func clamp(processed, total int) int {
	if processed < 0 {
		return 0
	}
	if processed > total {
		return total
	}
	return processed
}

// Emit reports a processed/total counter, clamping processed to [0, total].
// A nil callback or a non-positive total suppresses the report, so callers
// can emit unconditionally inside their loops.
func Emit(cb func(processed, total int), processed, total int) {
	if cb == nil || total <= 0 {
		return
	}
	cb(clamp(processed, total), total)
}

// EmitStage is Emit with a stage label, used when one callback observes the
// whole pipeline rather than a single loop.
func EmitStage(cb func(stage string, processed, total int), stage string, processed, total int) {
	if cb == nil || total <= 0 {
		return
	}
	cb(stage, clamp(processed, total), total)
}
