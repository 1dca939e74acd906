package planner

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"taskpilot/backend/types"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	plan    types.DailyPlan
	entered chan struct{} // closed when GenerateDailyPlan starts
	block   chan struct{} // when set, GenerateDailyPlan waits on it
}

func (g *fakeGateway) GenerateDailyPlan(ctx context.Context, tasks []types.Task, prefs types.PlanPreferences) types.DailyPlan {
	g.mu.Lock()
	g.calls++
	entered, block := g.entered, g.block
	g.entered = nil
	g.mu.Unlock()
	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}
	return g.plan
}

type fakeSink struct {
	mu    sync.Mutex
	plans []types.DailyPlan
}

func (s *fakeSink) SetDailyPlan(plan types.DailyPlan) {
	s.mu.Lock()
	s.plans = append(s.plans, plan)
	s.mu.Unlock()
}

func blocks(labels ...string) []types.TimeBlock {
	out := make([]types.TimeBlock, len(labels))
	for i, l := range labels {
		out[i] = types.TimeBlock{Task: l, Type: "focus", Priority: types.PriorityMedium}
	}
	return out
}

func labelsOf(bs []types.TimeBlock) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Task
	}
	return out
}

func TestGeneratePushesPlanToSink(t *testing.T) {
	gw := &fakeGateway{plan: types.DailyPlan{TimeBlocks: blocks("a", "b"), Insights: []string{"i"}}}
	sink := &fakeSink{}
	p := New(gw, sink)

	if p.State() != StateEmpty {
		t.Fatalf("initial state = %q", p.State())
	}
	plan, err := p.Generate(context.Background(), []types.Task{{Title: "a"}}, types.PlanPreferences{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.TimeBlocks) != 2 {
		t.Errorf("blocks = %d", len(plan.TimeBlocks))
	}
	if p.State() != StateReady {
		t.Errorf("state = %q, want ready", p.State())
	}
	if len(sink.plans) != 1 {
		t.Errorf("sink received %d plans, want 1", len(sink.plans))
	}
}

func TestGenerateRejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	gw := &fakeGateway{plan: types.DailyPlan{Insights: []string{"i"}}, entered: entered, block: release}
	p := New(gw, nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Generate(context.Background(), nil, types.PlanPreferences{})
		done <- err
	}()

	<-entered
	if _, err := p.Generate(context.Background(), nil, types.PlanPreferences{}); !errors.Is(err, ErrGenerating) {
		t.Errorf("second generate err = %v, want ErrGenerating", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestGenerateRejectedWhileEditing(t *testing.T) {
	p, _ := readyPlanner(t, "a", "b")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := p.MoveBlock(0, 1); err != nil {
		t.Fatalf("MoveBlock: %v", err)
	}

	if _, err := p.Generate(context.Background(), nil, types.PlanPreferences{}); !errors.Is(err, ErrEditing) {
		t.Fatalf("generate during edit = %v, want ErrEditing", err)
	}

	// The scratch edits survive the rejected generate.
	if p.State() != StateEditing {
		t.Errorf("state = %q, want editing", p.State())
	}
	got := labelsOf(p.Plan().TimeBlocks)
	if got[0] != "b" || got[1] != "a" {
		t.Errorf("scratch order = %v", got)
	}
}

func TestEditRequiresPlan(t *testing.T) {
	p := New(&fakeGateway{}, nil)
	if err := p.BeginEdit(); !errors.Is(err, ErrNoPlan) {
		t.Errorf("BeginEdit on empty = %v, want ErrNoPlan", err)
	}
	if err := p.MoveBlock(0, 1); !errors.Is(err, ErrNotEditing) {
		t.Errorf("MoveBlock outside edit = %v, want ErrNotEditing", err)
	}
	if err := p.Save(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Save outside edit = %v, want ErrNotEditing", err)
	}
}

func readyPlanner(t *testing.T, labels ...string) (*Planner, *fakeSink) {
	t.Helper()
	gw := &fakeGateway{plan: types.DailyPlan{TimeBlocks: blocks(labels...), Insights: []string{"i"}}}
	sink := &fakeSink{}
	p := New(gw, sink)
	if _, err := p.Generate(context.Background(), nil, types.PlanPreferences{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return p, sink
}

func TestMoveBlockReorders(t *testing.T) {
	p, _ := readyPlanner(t, "a", "b", "c", "d")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := p.MoveBlock(0, 2); err != nil {
		t.Fatalf("MoveBlock: %v", err)
	}
	got := labelsOf(p.Plan().TimeBlocks)
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestMoveBlockIsPermutation(t *testing.T) {
	p, _ := readyPlanner(t, "a", "b", "c", "d", "e")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	moves := [][2]int{{0, 4}, {2, 0}, {3, 3}, {4, 1}, {1, 2}}
	for _, m := range moves {
		if err := p.MoveBlock(m[0], m[1]); err != nil {
			t.Fatalf("MoveBlock(%d, %d): %v", m[0], m[1], err)
		}
	}
	got := labelsOf(p.Plan().TimeBlocks)
	if len(got) != 5 {
		t.Fatalf("block count changed: %v", got)
	}
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	if strings.Join(sorted, "") != "abcde" {
		t.Errorf("blocks no longer a permutation: %v", got)
	}
}

func TestMoveBlockBadIndex(t *testing.T) {
	p, _ := readyPlanner(t, "a", "b")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	for _, m := range [][2]int{{-1, 0}, {0, 2}, {5, 0}} {
		if err := p.MoveBlock(m[0], m[1]); !errors.Is(err, ErrBadIndex) {
			t.Errorf("MoveBlock(%d, %d) = %v, want ErrBadIndex", m[0], m[1], err)
		}
	}
}

func TestSaveCommitsScratch(t *testing.T) {
	p, sink := readyPlanner(t, "a", "b", "c")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := p.MoveBlock(2, 0); err != nil {
		t.Fatalf("MoveBlock: %v", err)
	}
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.State() != StateReady {
		t.Errorf("state = %q", p.State())
	}
	got := labelsOf(p.Plan().TimeBlocks)
	if got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("saved order = %v", got)
	}
	// generate + save
	if len(sink.plans) != 2 {
		t.Errorf("sink received %d plans, want 2", len(sink.plans))
	}
}

func TestCancelRevertsScratch(t *testing.T) {
	p, sink := readyPlanner(t, "a", "b", "c")
	if err := p.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := p.MoveBlock(0, 2); err != nil {
		t.Fatalf("MoveBlock: %v", err)
	}
	if err := p.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	got := labelsOf(p.Plan().TimeBlocks)
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order after cancel = %v, want original", got)
	}
	if len(sink.plans) != 1 {
		t.Errorf("cancel must not push to sink, got %d plans", len(sink.plans))
	}
}

func TestMatchBlockToTask(t *testing.T) {
	tasks := []types.Task{
		{ID: "1", Title: "Write report"},
		{ID: "2", Title: "Email the team"},
		{ID: "3", Title: "report"},
	}

	tests := []struct {
		name   string
		block  types.TimeBlock
		wantID string
		wantOK bool
	}{
		{"id wins", types.TimeBlock{TaskID: "2", Task: "Write report"}, "2", true},
		{"exact title", types.TimeBlock{Task: "Write report"}, "1", true},
		{"block contains title", types.TimeBlock{Task: "write the report"}, "3", true},
		{"title contains block", types.TimeBlock{Task: "email"}, "2", true},
		{"case insensitive", types.TimeBlock{Task: "WRITE REPORT"}, "1", true},
		{"no match", types.TimeBlock{Task: "water the plants"}, "", false},
		{"empty label", types.TimeBlock{Task: "  "}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := MatchBlockToTask(tt.block, tasks)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && task.ID != tt.wantID {
				t.Errorf("matched %q, want %q", task.ID, tt.wantID)
			}
		})
	}
}

func TestMatchBlockToTaskWordContainment(t *testing.T) {
	tasks := []types.Task{{ID: "1", Title: "Write report"}}

	task, ok := MatchBlockToTask(types.TimeBlock{Task: "write the report"}, tasks)
	if !ok || task.ID != "1" {
		t.Fatalf("matched %+v, %v; filler words must not break the match", task, ok)
	}

	task, ok = MatchBlockToTask(types.TimeBlock{Task: "write the quarterly report"}, tasks)
	if !ok || task.ID != "1" {
		t.Errorf("matched %+v, %v", task, ok)
	}

	if _, ok := MatchBlockToTask(types.TimeBlock{Task: "review the budget"}, tasks); ok {
		t.Error("unrelated label matched")
	}
}

func TestSyncToCalendarLinksWordMatchedBlocks(t *testing.T) {
	tasks := []types.Task{{ID: "1", Title: "Write report"}}
	gw := &fakeGateway{plan: types.DailyPlan{
		TimeBlocks: []types.TimeBlock{{Task: "write the report", Type: "focus"}},
		Insights:   []string{"i"},
	}}
	p := New(gw, nil)
	if _, err := p.Generate(context.Background(), tasks, types.PlanPreferences{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	var linked []string
	link := func(ctx context.Context, task types.Task) (string, error) {
		linked = append(linked, task.ID)
		return "https://calendar.example/" + task.ID, nil
	}
	res := p.SyncToCalendar(context.Background(), tasks, link)
	if res.Synced != 1 || res.Unmatched != 0 {
		t.Errorf("result = %+v, want the block linked to task 1", res)
	}
	if len(linked) != 1 || linked[0] != "1" {
		t.Errorf("linked = %v", linked)
	}
}

func TestSyncToCalendarCounts(t *testing.T) {
	tasks := []types.Task{
		{ID: "1", Title: "Write report"},
		{ID: "2", Title: "Email the team"},
	}
	gw := &fakeGateway{plan: types.DailyPlan{
		TimeBlocks: []types.TimeBlock{
			{Task: "Write report", Type: "focus"},
			{Task: "Email the team", Type: "focus"},
			{Task: "mystery block", Type: "focus"},
		},
		Insights: []string{"i"},
	}}
	p := New(gw, nil)
	if _, err := p.Generate(context.Background(), tasks, types.PlanPreferences{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	link := func(ctx context.Context, task types.Task) (string, error) {
		if task.ID == "2" {
			return "", errors.New("calendar rejected event")
		}
		return "https://calendar.example/" + task.ID, nil
	}
	res := p.SyncToCalendar(context.Background(), tasks, link)
	if res.Synced != 1 || res.Failed != 1 || res.Unmatched != 1 {
		t.Errorf("result = %+v, want 1 synced, 1 failed, 1 unmatched", res)
	}
	if res.FirstError != "calendar rejected event" {
		t.Errorf("first error = %q", res.FirstError)
	}
}
