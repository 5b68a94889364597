package mobx

import (
	"go.uber.org/zap"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// ImportResult is the outcome for one file of a batch import.
type ImportResult struct {
	Path    string
	ModelID int32 // valid when Err is nil
	Err     error
}

// BatchReport collects per-file outcomes of an ImportMany run.
type BatchReport struct {
	Results []ImportResult
}

// Succeeded returns the number of files imported cleanly.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that failed to import.
func (r *BatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Success reports whether at least one file imported cleanly.
func (r *BatchReport) Success() bool {
	return r.Succeeded() > 0
}

// ImportMany imports each file independently into dst, continuing
// past per-file failures. There is no rollback: models imported
// before a failure stay imported.
func (im *Importer) ImportMany(paths []string, dst *level.Level, overwrite bool) *BatchReport {
	report := &BatchReport{}

	for _, path := range paths {
		m, err := im.Import(path, dst, overwrite)
		result := ImportResult{Path: path, Err: err}
		if err != nil {
			im.log.Error("import failed",
				zap.String("file", path),
				zap.Error(err))
		} else {
			result.ModelID = m.ID
		}
		report.Results = append(report.Results, result)
	}

	im.log.Info("batch import finished",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()))
	return report
}
