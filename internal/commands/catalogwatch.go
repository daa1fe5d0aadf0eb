package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/catalogjob"
	"github.com/MimeLyc/flicks/internal/ferr"
	"github.com/MimeLyc/flicks/pkg/icron"
	"github.com/MimeLyc/flicks/pkg/log"
)

// refreshExecutor rebuilds and persists the catalog index for job.DataDir,
// replacing a.Index in place so subsequent lookups in this process see the
// refreshed data.
func (a *App) refreshExecutor(ctx context.Context, job *catalogjob.RefreshJob) error {
	idx, err := catalog.Refresh(job.DataDir)
	if err != nil {
		return err
	}
	a.Index = idx
	return nil
}

// Watch runs the catalog refresh scheduler in the foreground until stop is
// closed. With an empty RefreshSchedule no cron tick ever fires: the queue
// only runs jobs still pending in the library database from an earlier
// run, then idles. Nothing else in this process enqueues refreshes.
func (a *App) Watch(stop <-chan struct{}) error {
	queue := catalogjob.NewQueue(1, a.Library)
	queue.Start(a.refreshExecutor)
	defer queue.Stop()

	if a.Config.RefreshSchedule == "" {
		log.Info("catalog watch: no refresh schedule configured, idling")
		<-stop
		return nil
	}

	sched, err := cron.ParseStandard(a.Config.RefreshSchedule)
	if err != nil {
		return ferr.Wrap(ferr.KindValidation, "invalid catalog_refresh_schedule", err)
	}

	catalogDir := filepath.Join(a.DataDir, "catalog")

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() {
		job, fresh := queue.Enqueue(catalogjob.EnqueueRequest{
			DedupeKey: catalogDir,
			DataDir:   catalogDir,
		})
		if fresh {
			log.Info("catalog watch: enqueued refresh %s", job.ID)
		} else {
			log.Info("catalog watch: refresh %s already in flight, skipping", job.ID)
		}
	}))

	info := icron.TriggerInfoForSchedule(sched, a.Config.RefreshSchedule, time.Now())
	fmt.Printf("Watching catalog refresh schedule %q; next refresh at %s.\n",
		a.Config.RefreshSchedule, info.Next.Format(time.RFC3339))
	c.Start()
	defer c.Stop()

	<-stop
	return nil
}
