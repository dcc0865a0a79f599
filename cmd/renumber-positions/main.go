package main

import (
	"context"
	"fmt"
	"log"

	"github.com/veljkom/taskboard-api/internal/config"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

// Rewrites every (workspace, status) bucket back to evenly spaced
// positions so inserts regain headroom. Run offline; concurrent writers
// would race the renumbering.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `
		WITH ranked AS (
			SELECT id, ROW_NUMBER() OVER (
				PARTITION BY workspace_id, status
				ORDER BY position, created_at
			) AS rn
			FROM tasks
		)
		UPDATE tasks SET position = ranked.rn * $1, updated_at = NOW()
		FROM ranked
		WHERE tasks.id = ranked.id AND tasks.position <> ranked.rn * $1
	`, models.PositionStep)
	if err != nil {
		log.Fatalf("Failed to renumber positions: %v", err)
	}

	fmt.Printf("Renumbered %d tasks\n", result.RowsAffected())
}
