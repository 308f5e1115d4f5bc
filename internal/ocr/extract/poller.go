package extract

import (
	"context"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

type pollState int

const (
	pollSucceeded pollState = iota
	pollFailed
	pollTimedOut
	pollErrored
)

type pollResult struct {
	state    pollState
	page     documentModel.JobPage
	attempts int
	err      error
}

// pollJob waits before each status fetch and stops at the first terminal status.
// PARTIAL_SUCCESS counts as a failure and its blocks are discarded.
func (e *Extractor) pollJob(ctx context.Context, region, jobId string) pollResult {
	for attempt := 1; attempt <= config.PollMaxAttempts; attempt++ {
		if err := e.sleep(ctx, config.PollInterval); err != nil {
			return pollResult{state: pollErrored, attempts: attempt - 1, err: err}
		}

		page, err := e.fetchPage(ctx, region, jobId, "")
		if err != nil {
			return pollResult{state: pollErrored, attempts: attempt, err: err}
		}

		switch page.Status {
		case documentModel.JobSucceeded:
			return pollResult{state: pollSucceeded, page: page, attempts: attempt}
		case documentModel.JobFailed, documentModel.JobPartialSuccess:
			return pollResult{state: pollFailed, page: page, attempts: attempt}
		}
	}
	return pollResult{state: pollTimedOut, attempts: config.PollMaxAttempts}
}
