package scope

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs job every d until the returned stop func is called.
type Scheduler interface {
	Every(d time.Duration, job func()) (stop func())
}

// fixedDelay fires d after each activation. Unlike cron.Every it keeps
// sub-second precision and does not snap to second boundaries, so the
// first run lands d after the schedule starts.
type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time { return t.Add(time.Duration(d)) }

// CronScheduler schedules jobs on a dedicated cron runner per call.
// Overlapping runs of the same job are skipped.
type CronScheduler struct{}

// Every starts a cron runner firing job on a fixed interval.
func (CronScheduler) Every(d time.Duration, job func()) func() {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(fixedDelay(d), cron.FuncJob(job))
	c.Start()
	return func() {
		c.Stop()
	}
}
