package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"company-system/internal/dto"
	"company-system/internal/entities"
	apperrors "company-system/pkg/errors"
	"company-system/pkg/types"
	"company-system/pkg/utils"
)

func TestTaskRepository_Integration_CreateAndFind(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	_, _, _, employeeID, departmentID := seedCompany(t, testPool)
	repo := NewTaskRepository(testPool, zap.NewNop())

	created, err := repo.CreateTask(context.Background(), entities.Task{
		Title:        "Интеграционная задача",
		Status:       "to_do",
		AssignedToID: &employeeID,
		DepartmentID: departmentID,
	})
	require.NoError(t, err)
	require.True(t, created.ID > 0)
	assert.Equal(t, "to_do", created.Status)
	assert.Nil(t, created.CompletedAt)

	t.Run("success find", func(t *testing.T) {
		found, err := repo.FindTask(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Интеграционная задача", found.Title)
		require.NotNil(t, found.AssignedToID)
		assert.Equal(t, employeeID, *found.AssignedToID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindTask(context.Background(), 99999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := repo.CreateTask(context.Background(), entities.Task{
			Title:        "Сирота",
			Status:       "to_do",
			DepartmentID: 99999,
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTaskRepository_Integration_UpdateTask(t *testing.T) {
	cleanupTables(t, testPool)
	_, _, _, employeeID, departmentID := seedCompany(t, testPool)
	repo := NewTaskRepository(testPool, zap.NewNop())

	created, err := repo.CreateTask(context.Background(), entities.Task{
		Title:        "Задача",
		Status:       "to_do",
		DepartmentID: departmentID,
	})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{
			Status: utils.StringPtr("doing"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "doing", updated.Status)
		assert.Equal(t, "Задача", updated.Title)
	})

	t.Run("completion timestamp applied once", func(t *testing.T) {
		completedAt := time.Now().UTC()
		updated, err := repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{
			Status: utils.StringPtr("done"),
		}, &completedAt)
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		firstCompletion := *updated.CompletedAt

		// Повторный done без completedAt отметку не трогает
		updated, err = repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{
			Status: utils.StringPtr("done"),
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		assert.WithinDuration(t, firstCompletion, *updated.CompletedAt, time.Millisecond)
	})

	t.Run("explicit null clears assignee", func(t *testing.T) {
		updated, err := repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{
			AssignedToID: null.Uint64From(employeeID),
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedToID)

		updated, err = repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{
			AssignedToSent: true,
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.AssignedToID)
	})

	t.Run("empty patch returns current row", func(t *testing.T) {
		updated, err := repo.UpdateTask(context.Background(), created.ID, dto.UpdateTaskDTO{}, nil)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
	})
}

func TestTaskRepository_Integration_DeleteCascadesSubtasks(t *testing.T) {
	cleanupTables(t, testPool)
	_, _, _, _, departmentID := seedCompany(t, testPool)
	taskRepo := NewTaskRepository(testPool, zap.NewNop())
	subtaskRepo := NewSubtaskRepository(testPool, zap.NewNop())

	task, err := taskRepo.CreateTask(context.Background(), entities.Task{
		Title:        "Родительская задача",
		Status:       "to_do",
		DepartmentID: departmentID,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := subtaskRepo.CreateSubtask(context.Background(), entities.Subtask{
			Title:  "Подзадача",
			Status: "to_do",
			TaskID: task.ID,
		})
		require.NoError(t, err)
	}

	require.NoError(t, taskRepo.DeleteTask(context.Background(), task.ID))

	var subtaskCount int
	err = testPool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM subtasks WHERE task_id = $1`, task.ID).Scan(&subtaskCount)
	require.NoError(t, err)
	assert.Equal(t, 0, subtaskCount, "подзадачи должны удаляться вместе с задачей")

	assert.ErrorIs(t, taskRepo.DeleteTask(context.Background(), task.ID), apperrors.ErrNotFound)
}

func TestTaskRepository_Integration_GetTasks(t *testing.T) {
	cleanupTables(t, testPool)
	_, _, _, employeeID, departmentID := seedCompany(t, testPool)
	repo := NewTaskRepository(testPool, zap.NewNop())

	for i := 0; i < 3; i++ {
		task := entities.Task{Title: "Общая", Status: "to_do", DepartmentID: departmentID}
		if i == 0 {
			task.AssignedToID = &employeeID
			task.Status = "doing"
		}
		_, err := repo.CreateTask(context.Background(), task)
		require.NoError(t, err)
	}

	t.Run("list all", func(t *testing.T) {
		tasks, total, err := repo.GetTasks(context.Background(), types.Filter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Len(t, tasks, 3)
	})

	t.Run("filter by status", func(t *testing.T) {
		tasks, total, err := repo.GetTasks(context.Background(), types.Filter{
			Filter: map[string]interface{}{"status": "doing"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, tasks, 1)
		assert.Equal(t, "doing", tasks[0].Status)
	})

	t.Run("by assignee", func(t *testing.T) {
		tasks, err := repo.GetTasksByAssignee(context.Background(), employeeID)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}
