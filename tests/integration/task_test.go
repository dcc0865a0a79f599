package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veljkom/taskboard-api/internal/models"
	"github.com/veljkom/taskboard-api/internal/query"
	"github.com/veljkom/taskboard-api/internal/services"
	"github.com/veljkom/taskboard-api/tests/testutil"
)

func TestTaskService_Integration_CreateAppendsToBucket(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	project := fixtures.CreateProject(t, ws)
	due := time.Now().Add(24 * time.Hour)

	first, err := svc.Create(ctx, ws.ID, project.ID, member.ID, "First", models.StatusTodo, due, "")
	require.NoError(t, err)
	assert.Equal(t, models.PositionStep, first.Position)

	second, err := svc.Create(ctx, ws.ID, project.ID, member.ID, "Second", models.StatusTodo, due, "")
	require.NoError(t, err)
	assert.Equal(t, 2*models.PositionStep, second.Position)

	// A different status is a different bucket and starts over
	backlog, err := svc.Create(ctx, ws.ID, project.ID, member.ID, "Later", models.StatusBacklog, due, "")
	require.NoError(t, err)
	assert.Equal(t, models.PositionStep, backlog.Position)
}

func TestTaskService_Integration_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	project := fixtures.CreateProject(t, ws)
	otherProject := fixtures.CreateProject(t, ws)

	fixtures.CreateTask(t, project, member, testutil.WithTaskName("Ship auth"), testutil.WithStatus(models.StatusInProgress))
	fixtures.CreateTask(t, project, member, testutil.WithTaskName("Write docs"))
	fixtures.CreateTask(t, otherProject, member, testutil.WithTaskName("Ship billing"))

	all, err := svc.List(ctx, query.Filter{WorkspaceID: ws.ID})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byProject, err := svc.List(ctx, query.Filter{WorkspaceID: ws.ID, ProjectID: &project.ID})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	status := models.StatusInProgress
	byStatus, err := svc.List(ctx, query.Filter{WorkspaceID: ws.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Ship auth", byStatus[0].Name)

	search := "ship"
	bySearch, err := svc.List(ctx, query.Filter{WorkspaceID: ws.ID, Search: &search})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)
}

func TestTaskService_Integration_Populate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t, testutil.WithName("Alice"))
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	project := fixtures.CreateProject(t, ws, testutil.WithProjectName("Backend"))
	fixtures.CreateTask(t, project, member)
	fixtures.CreateTask(t, project, member)

	tasks, err := svc.List(ctx, query.Filter{WorkspaceID: ws.ID})
	require.NoError(t, err)

	populated, err := svc.Populate(ctx, tasks)
	require.NoError(t, err)
	require.Len(t, populated, 2)

	for _, pt := range populated {
		require.NotNil(t, pt.Project)
		assert.Equal(t, "Backend", pt.Project.Name)
		require.NotNil(t, pt.Assignee)
		assert.Equal(t, "Alice", pt.Assignee.Name)
	}
}

func TestTaskService_Integration_Reorder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	project := fixtures.CreateProject(t, ws)

	todo := fixtures.CreateTask(t, project, member, testutil.WithPosition(1000))
	doing := fixtures.CreateTask(t, project, member, testutil.WithStatus(models.StatusInProgress), testutil.WithPosition(1000))

	// Move the todo card into IN_PROGRESS above the existing card, and
	// shift the existing card down, in one batch
	updated, err := svc.Reorder(ctx, admin.ID, []services.ReorderUpdate{
		{ID: todo.ID, Status: models.StatusInProgress, Position: 1000},
		{ID: doing.ID, Status: models.StatusInProgress, Position: 2000},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	moved, err := svc.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, moved.Status)
	assert.Equal(t, 1000, moved.Position)

	shifted, err := svc.GetByID(ctx, doing.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000, shifted.Position)
}

func TestTaskService_Integration_Reorder_CrossWorkspace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	ws1 := fixtures.CreateWorkspace(t, admin)
	ws2 := fixtures.CreateWorkspace(t, admin)
	member1 := fixtures.GetMember(t, ws1, admin)
	member2 := fixtures.GetMember(t, ws2, admin)
	task1 := fixtures.CreateTask(t, fixtures.CreateProject(t, ws1), member1)
	task2 := fixtures.CreateTask(t, fixtures.CreateProject(t, ws2), member2)

	_, err := svc.Reorder(ctx, admin.ID, []services.ReorderUpdate{
		{ID: task1.ID, Status: models.StatusDone, Position: 1000},
		{ID: task2.ID, Status: models.StatusDone, Position: 2000},
	})
	assert.ErrorIs(t, err, services.ErrCrossWorkspace)

	// Nothing was written
	unchanged, err := svc.GetByID(ctx, task1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, unchanged.Status)
}

func TestTaskService_Integration_Reorder_NotMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	outsider := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	task := fixtures.CreateTask(t, fixtures.CreateProject(t, ws), member)

	_, err := svc.Reorder(ctx, outsider.ID, []services.ReorderUpdate{
		{ID: task.ID, Status: models.StatusDone, Position: 1000},
	})
	assert.ErrorIs(t, err, services.ErrNotMember)
}

func TestTaskService_Integration_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	members := services.NewMemberService(tdb.DB)
	svc := services.NewTaskService(tdb.DB, members)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, admin)
	member := fixtures.GetMember(t, ws, admin)
	task := fixtures.CreateTask(t, fixtures.CreateProject(t, ws), member, testutil.WithTaskName("Before"))

	name := "After"
	status := models.StatusDone
	updated, err := svc.Update(ctx, task.ID, services.TaskUpdate{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, models.StatusDone, updated.Status)

	// Untouched fields survive a partial update
	assert.Equal(t, task.Position, updated.Position)
	assert.Equal(t, task.AssigneeID, updated.AssigneeID)
}
