package catalogjob

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	jobs map[string]*RefreshJob
}

func newMemoryStore() *memoryStore {
	return &memoryStore{jobs: make(map[string]*RefreshJob)}
}

func (m *memoryStore) LoadJobs(_ context.Context) ([]*RefreshJob, error) {
	ret := make([]*RefreshJob, 0, len(m.jobs))
	for _, j := range m.jobs {
		ret = append(ret, cloneJob(j))
	}
	return ret, nil
}

func (m *memoryStore) UpsertJob(_ context.Context, job *RefreshJob) error {
	m.jobs[job.ID] = cloneJob(job)
	return nil
}

func (m *memoryStore) DeleteJob(_ context.Context, jobID string) error {
	delete(m.jobs, jobID)
	return nil
}

func TestQueueRecoversPendingAndRunningJobsFromStore(t *testing.T) {
	store := newMemoryStore()
	now := time.Now()
	store.jobs["job-1"] = &RefreshJob{
		ID: "job-1", DedupeKey: "dir1", DataDir: "/data/dir1",
		Status: StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	store.jobs["job-2"] = &RefreshJob{
		ID: "job-2", DedupeKey: "dir2", DataDir: "/data/dir2",
		Status: StatusRunning, CreatedAt: now, UpdatedAt: now,
	}

	q := NewQueue(1, store)

	jobs := q.List()
	require.Len(t, jobs, 2)
	byID := map[string]*RefreshJob{}
	for _, j := range jobs {
		byID[j.ID] = j
	}
	require.Contains(t, byID, "job-2")
	assert.Equal(t, StatusPending, byID["job-2"].Status)

	q.Start(func(_ context.Context, _ *RefreshJob) error { return nil })
	defer q.Stop()

	require.Eventually(t, func() bool {
		got, ok := q.Get("job-1")
		return ok && got.Status == StatusSuccess
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		got, ok := q.Get("job-2")
		return ok && got.Status == StatusSuccess
	}, time.Second, 10*time.Millisecond)
}
