package calendar

import (
	"context"
	"sync"
	"time"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// Inserter creates an event in an external calendar. Link generation
// needs no SDK; insertion is optional and only wired when the caller
// has Google credentials.
type Inserter interface {
	Insert(ctx context.Context, task types.Task, start, end time.Time) error
}

// Adapter is the calendar sync boundary handed to the orchestrator
// and the HTTP layer.
type Adapter struct {
	inserter Inserter
	now      func() time.Time
}

func NewAdapter(inserter Inserter) *Adapter {
	return &Adapter{inserter: inserter, now: time.Now}
}

// LinkResult is what one task's calendar call produces.
type LinkResult struct {
	ICalContent       string
	GoogleCalendarURL string
}

// Link builds the iCalendar payload and Google Calendar link for one
// task, inserting the event directly when an inserter is configured.
func (a *Adapter) Link(ctx context.Context, task types.Task) (LinkResult, error) {
	start, end := EventWindow(task, a.now())
	if a.inserter != nil {
		if err := a.inserter.Insert(ctx, task, start, end); err != nil {
			return LinkResult{}, err
		}
	}
	return LinkResult{
		ICalContent:       BuildICal(task, start, end),
		GoogleCalendarURL: BuildGoogleCalendarURL(task, start, end),
	}, nil
}

// BatchResult aggregates a batch sync. Individual failures are
// swallowed per task and only counted.
type BatchResult struct {
	Synced  int
	Failed  int
	Skipped int
}

// SyncAll issues the per-task calendar calls concurrently. Completed
// tasks are skipped unless includeCompleted is set.
func (a *Adapter) SyncAll(ctx context.Context, tasks []types.Task, includeCompleted bool) BatchResult {
	var res BatchResult
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, task := range tasks {
		if task.Completed && !includeCompleted {
			res.Skipped++
			continue
		}
		wg.Add(1)
		go func(t types.Task) {
			defer wg.Done()
			_, err := a.Link(ctx, t)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				config.Logger.Warnf("calendar sync failed for task %s: %v", t.ID, err)
				res.Failed++
				return
			}
			res.Synced++
		}(task)
	}
	wg.Wait()
	return res
}
