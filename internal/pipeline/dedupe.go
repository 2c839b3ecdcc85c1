package pipeline

// BuildDedupKey derives the composite identity used for in-run duplicate
// detection. The key is the business identity only; the originating row index
// lives in provenance so that genuine repeats are actually detectable.
func BuildDedupKey(contractID, taskID string) string {
	return contractID + "_task_" + taskID
}

// Deduplicator tracks dedup keys seen within one pipeline run. One run per
// instance; runs share nothing.
type Deduplicator struct {
	seen map[string]int
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]int)}
}

// Check records the key for rowIndex and reports whether it was already seen
// in this run, returning the row that first carried it.
func (d *Deduplicator) Check(key string, rowIndex int) (firstRow int, duplicate bool) {
	if first, ok := d.seen[key]; ok {
		return first, true
	}
	d.seen[key] = rowIndex
	return rowIndex, false
}
