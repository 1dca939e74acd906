package planner

import (
	"context"
	"strings"

	"taskpilot/backend/types"
)

// MatchBlockToTask resolves a time block to a known task. A block id
// wins outright; otherwise exact title match, then case-insensitive
// substring containment in either direction, then word containment
// so filler words don't break the match ("write the report" still
// finds "Write report"). First match wins, with no disambiguation
// when several tasks match.
func MatchBlockToTask(block types.TimeBlock, tasks []types.Task) (types.Task, bool) {
	if block.TaskID != "" {
		for _, t := range tasks {
			if t.ID == block.TaskID {
				return t, true
			}
		}
	}

	label := strings.TrimSpace(block.Task)
	if label == "" {
		return types.Task{}, false
	}
	for _, t := range tasks {
		if t.Title == label {
			return t, true
		}
	}
	lower := strings.ToLower(label)
	for _, t := range tasks {
		title := strings.ToLower(t.Title)
		if strings.Contains(title, lower) || strings.Contains(lower, title) {
			return t, true
		}
	}
	words := strings.Fields(lower)
	for _, t := range tasks {
		title := strings.Fields(strings.ToLower(t.Title))
		if wordsContain(words, title) || wordsContain(title, words) {
			return t, true
		}
	}
	return types.Task{}, false
}

// wordsContain reports whether every word of sub occurs in super.
func wordsContain(super, sub []string) bool {
	if len(sub) == 0 {
		return false
	}
	set := make(map[string]bool, len(super))
	for _, w := range super {
		set[w] = true
	}
	for _, w := range sub {
		if !set[w] {
			return false
		}
	}
	return true
}

// LinkFunc requests a calendar link for one task.
type LinkFunc func(ctx context.Context, task types.Task) (string, error)

// SyncResult aggregates a plan-to-calendar sync. Per-task failures
// are counted, not itemized; FirstError carries the first message for
// the notification.
type SyncResult struct {
	Synced     int
	Failed     int
	Unmatched  int
	FirstError string
}

// SyncToCalendar walks the current plan's blocks, matches each to a
// task and requests a calendar link for every match. Failures are
// swallowed per block and only summarized. There is no retry.
func (p *Planner) SyncToCalendar(ctx context.Context, tasks []types.Task, link LinkFunc) SyncResult {
	plan := p.Plan()

	var res SyncResult
	for _, block := range plan.TimeBlocks {
		if block.Type != "focus" && block.TaskID == "" && block.Task == "" {
			continue
		}
		task, ok := MatchBlockToTask(block, tasks)
		if !ok {
			res.Unmatched++
			continue
		}
		if _, err := link(ctx, task); err != nil {
			res.Failed++
			if res.FirstError == "" {
				res.FirstError = err.Error()
			}
			continue
		}
		res.Synced++
	}
	return res
}
