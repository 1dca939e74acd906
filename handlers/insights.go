package handlers

import (
	"net/http"
	"sort"
	"time"

	"taskpilot/backend/ai"
	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
)

// GetInsightsHandler returns up to three coaching insights derived
// from the user's task statistics.
func GetInsightsHandler(w http.ResponseWriter, r *http.Request) {
	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	tasks := st.Tasks()

	uc := ai.UserContext{TotalTasks: len(tasks)}
	counts := map[string]int{}
	today := time.Now().Format("2006-01-02")
	for _, t := range tasks {
		if t.Completed {
			uc.CompletedTasks++
		} else if t.DueDate != "" && t.DueDate < today {
			uc.OverdueTasks++
		}
		if t.Category != "" {
			counts[t.Category]++
		}
	}
	for c := range counts {
		uc.TopCategories = append(uc.TopCategories, c)
	}
	sort.Slice(uc.TopCategories, func(i, j int) bool {
		return counts[uc.TopCategories[i]] > counts[uc.TopCategories[j]]
	})
	if len(uc.TopCategories) > 3 {
		uc.TopCategories = uc.TopCategories[:3]
	}

	insights := AI.Coach(r.Context(), uc, ai.DefaultModel)
	st.SetInsights(insights)

	writeJSON(w, http.StatusOK, types.InsightsResponse{
		Success:  true,
		Insights: st.Insights(),
	})
}
