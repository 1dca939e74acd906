package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"

	"taskpilot/backend/types"
)

// UpsertTasks pushes the user's full task list, overwriting rows that
// already exist. Used by the force-sync action.
func UpsertTasks(client *supabase.Client, userID string, items []types.Task) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	for i := range items {
		items[i].UserID = userID
	}

	_, _, err := client.From("tasks").Insert(items, true, "id", "", "").Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to upsert tasks: %w", err)
	}
	return len(items), nil
}
