package history

import (
	"context"
	"fmt"
	"time"
)

// NicheCount is how many projects were created for one niche.
type NicheCount struct {
	Name  string
	Count int
}

// Stats summarises builds recorded since a point in time.
type Stats struct {
	Since    time.Time
	Builds   int
	Clients  int
	TopNiche []NicheCount
}

// Stats aggregates the builds of the last days days. days <= 0 covers all of
// them.
func (h *HistoryDB) Stats(ctx context.Context, days int) (Stats, error) {
	var s Stats
	if days > 0 {
		s.Since = time.Now().UTC().AddDate(0, 0, -days)
	}

	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT client) FROM builds WHERE created_at >= ?`,
		s.Since,
	).Scan(&s.Builds, &s.Clients)
	if err != nil {
		return s, fmt.Errorf("failed to count builds: %w", err)
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT niche_name, COUNT(*) AS count
		FROM builds WHERE created_at >= ?
		GROUP BY niche_name ORDER BY count DESC, niche_name ASC
	`, s.Since)
	if err != nil {
		return s, fmt.Errorf("failed to group builds: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n NicheCount
		if err := rows.Scan(&n.Name, &n.Count); err != nil {
			return s, err
		}
		s.TopNiche = append(s.TopNiche, n)
	}
	return s, rows.Err()
}
