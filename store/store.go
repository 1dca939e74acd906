// Package store holds the per-user application state: tasks, the
// active filter, sync status, coaching insights and the daily plan.
// All mutation goes through named actions so call sites never touch
// the fields directly.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskpilot/backend/types"
)

type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSynced  SyncStatus = "synced"
	SyncError   SyncStatus = "error"
)

type Store struct {
	mu sync.Mutex

	tasks      []types.Task
	filter     string
	syncStatus SyncStatus
	syncError  string
	insights   []types.AIInsight
	insightIdx int
	webhookURL string
	plan       types.DailyPlan
	hasPlan    bool
}

func New() *Store {
	return &Store{
		filter:     "all",
		syncStatus: SyncIdle,
	}
}

// AddTask creates a task, optionally from an enhancement. The task id
// and creation time are assigned here.
func (s *Store) AddTask(title string, enh *types.TaskEnhancement) types.Task {
	task := types.Task{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(title),
		Priority:      types.PriorityMedium,
		EstimatedTime: "30 minutes",
		Category:      "general",
		CreatedAt:     time.Now(),
	}
	if enh != nil {
		task.Title = enh.Title
		task.Description = enh.Description
		task.Subtasks = enh.Subtasks
		task.Priority = enh.Priority
		task.EstimatedTime = enh.EstimatedTime
		task.Category = enh.Category
		task.DueDate = enh.Deadline
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return task
}

// AddParsedTask creates a task from a natural-language parse result.
func (s *Store) AddParsedTask(intent types.ParsedIntent) types.Task {
	task := types.Task{
		ID:            uuid.NewString(),
		Title:         intent.Title,
		Priority:      intent.Priority,
		EstimatedTime: "30 minutes",
		Category:      "general",
		DueTime:       intent.DueTime,
		CreatedAt:     time.Now(),
	}
	if intent.DueDate != nil {
		task.DueDate = *intent.DueDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return task
}

// ToggleTask flips a task's completed flag.
func (s *Store) ToggleTask(id string) (types.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.tasks[i], true
		}
	}
	return types.Task{}, false
}

// DeleteTask removes a task and returns it so callers can still
// dispatch events for it. Tasks are never deleted implicitly.
func (s *Store) DeleteTask(id string) (types.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			task := s.tasks[i]
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return task, true
		}
	}
	return types.Task{}, false
}

func (s *Store) SetFilter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		name = "all"
	}
	s.filter = name
}

func (s *Store) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks returns a copy of all tasks.
func (s *Store) Tasks() []types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// FilteredTasks returns the tasks matching the active filter: "all",
// "active", "completed", a priority name, or a category.
func (s *Store) FilteredTasks() []types.Task {
	s.mu.Lock()
	filter := s.filter
	tasks := make([]types.Task, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	if filter == "all" {
		return tasks
	}
	out := tasks[:0]
	for _, t := range tasks {
		switch {
		case filter == "active" && !t.Completed:
			out = append(out, t)
		case filter == "completed" && t.Completed:
			out = append(out, t)
		case types.ValidPriority(types.Priority(filter)) && t.Priority == types.Priority(filter):
			out = append(out, t)
		case strings.EqualFold(t.Category, filter):
			out = append(out, t)
		}
	}
	return out
}

// BeginSync moves the store into the syncing state. It fails when a
// sync is already running so rapid repeated triggers don't overlap.
func (s *Store) BeginSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncStatus == SyncSyncing {
		return false
	}
	s.syncStatus = SyncSyncing
	s.syncError = ""
	return true
}

// FinishSync records the outcome of a sync attempt.
func (s *Store) FinishSync(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.syncStatus = SyncError
		s.syncError = err.Error()
		return
	}
	s.syncStatus = SyncSynced
}

func (s *Store) SyncState() (SyncStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncStatus, s.syncError
}

func (s *Store) SetInsights(insights []types.AIInsight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = insights
	s.insightIdx = 0
}

// Insights returns the current insights, rotated so repeated calls
// surface a different entry first.
func (s *Store) Insights() []types.AIInsight {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.insights) == 0 {
		return nil
	}
	out := make([]types.AIInsight, 0, len(s.insights))
	for i := 0; i < len(s.insights); i++ {
		out = append(out, s.insights[(s.insightIdx+i)%len(s.insights)])
	}
	s.insightIdx = (s.insightIdx + 1) % len(s.insights)
	return out
}

func (s *Store) SetWebhookURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhookURL = url
}

func (s *Store) WebhookURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.webhookURL
}

// SetDailyPlan replaces the stored plan wholesale.
func (s *Store) SetDailyPlan(plan types.DailyPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
	s.hasPlan = true
}

func (s *Store) DailyPlan() (types.DailyPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan, s.hasPlan
}
