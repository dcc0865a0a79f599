// Package query builds the predicate set for task listing. Composition is a
// pure function of the filter input; nothing here touches the store.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veljkom/taskboard-api/internal/models"
)

type Kind int

const (
	KindEqual Kind = iota
	// KindSearch matches substrings of the column, not exact values.
	KindSearch
)

type Condition struct {
	Column string
	Kind   Kind
	Value  any
}

// Filter carries the optional task-list filters plus the mandatory workspace
// scope. Nil fields contribute no condition.
type Filter struct {
	WorkspaceID uuid.UUID
	ProjectID   *uuid.UUID
	AssigneeID  *uuid.UUID
	Status      *models.TaskStatus
	DueDate     *time.Time
	Search      *string
	Limit       int
}

type TaskQuery struct {
	Conditions []Condition
	OrderBy    string
	Descending bool
	Limit      int
}

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ForTasks composes the query for a filter: always the workspace scope and
// newest-first ordering, then one condition per present filter, ANDed.
func ForTasks(f Filter) TaskQuery {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := TaskQuery{
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
	}

	q.Conditions = append(q.Conditions, Condition{Column: "workspace_id", Kind: KindEqual, Value: f.WorkspaceID})

	if f.ProjectID != nil {
		q.Conditions = append(q.Conditions, Condition{Column: "project_id", Kind: KindEqual, Value: *f.ProjectID})
	}
	if f.AssigneeID != nil {
		q.Conditions = append(q.Conditions, Condition{Column: "assignee_id", Kind: KindEqual, Value: *f.AssigneeID})
	}
	if f.Status != nil {
		q.Conditions = append(q.Conditions, Condition{Column: "status", Kind: KindEqual, Value: *f.Status})
	}
	if f.DueDate != nil {
		// Day granularity; the board's date picker produces whole days
		q.Conditions = append(q.Conditions, Condition{Column: "due_date::date", Kind: KindEqual, Value: f.DueDate.Format("2006-01-02")})
	}
	if f.Search != nil && *f.Search != "" {
		q.Conditions = append(q.Conditions, Condition{Column: "name", Kind: KindSearch, Value: *f.Search})
	}

	return q
}

// SelectSQL compiles the query into a parameterized SELECT statement.
func (q TaskQuery) SelectSQL(columns, table string) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Conditions))

	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)

	for i, cond := range q.Conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}

		switch cond.Kind {
		case KindSearch:
			args = append(args, "%"+fmt.Sprint(cond.Value)+"%")
			fmt.Fprintf(&sb, "%s ILIKE $%d", cond.Column, len(args))
		default:
			args = append(args, cond.Value)
			fmt.Fprintf(&sb, "%s = $%d", cond.Column, len(args))
		}
	}

	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
		if q.Descending {
			sb.WriteString(" DESC")
		}
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	return sb.String(), args
}
