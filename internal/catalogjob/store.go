package catalogjob

import "context"

// Store persists job states so a crash mid-rebuild is visible on restart:
// a job still marked "running" after a restart is stale and gets re-queued.
type Store interface {
	LoadJobs(ctx context.Context) ([]*RefreshJob, error)
	UpsertJob(ctx context.Context, job *RefreshJob) error
	DeleteJob(ctx context.Context, jobID string) error
}
