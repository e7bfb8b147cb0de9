package models

// PriorityStats counts todos per priority level.
type PriorityStats struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// TodoStats summarises a todo collection.
type TodoStats struct {
	Total          int           `json:"total"`
	Completed      int           `json:"completed"`
	Pending        int           `json:"pending"`
	ByPriority     PriorityStats `json:"byPriority"`
	CompletionRate float64       `json:"completionRate"`
}

// ComputeStats derives aggregate statistics from the given todos.
func ComputeStats(todos []Todo) TodoStats {
	stats := TodoStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		}
		switch t.Priority {
		case PriorityLow:
			stats.ByPriority.Low++
		case PriorityMedium:
			stats.ByPriority.Medium++
		case PriorityHigh:
			stats.ByPriority.High++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}
