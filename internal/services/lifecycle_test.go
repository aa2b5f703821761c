package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-system/pkg/constants"
	"company-system/pkg/utils"
)

func TestCompletionTimestamp_FirstDone(t *testing.T) {
	before := time.Now().UTC()
	got := completionTimestamp(nil, utils.StringPtr(constants.TaskStatusDone))
	require.NotNil(t, got)
	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now().UTC()))
}

func TestCompletionTimestamp_RepeatedDoneKeepsOriginal(t *testing.T) {
	original := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := completionTimestamp(&original, utils.StringPtr(constants.TaskStatusDone))
	assert.Nil(t, got, "повторный done не должен трогать отметку")
}

func TestCompletionTimestamp_LeavingDoneKeepsTimestamp(t *testing.T) {
	original := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Возврат в работу после done: отметка остаётся как есть
	got := completionTimestamp(&original, utils.StringPtr(constants.TaskStatusDoing))
	assert.Nil(t, got)

	got = completionTimestamp(&original, utils.StringPtr(constants.TaskStatusToDo))
	assert.Nil(t, got)
}

func TestCompletionTimestamp_NonDoneTransitions(t *testing.T) {
	assert.Nil(t, completionTimestamp(nil, utils.StringPtr(constants.TaskStatusDoing)))
	assert.Nil(t, completionTimestamp(nil, utils.StringPtr(constants.TaskStatusToDo)))
	assert.Nil(t, completionTimestamp(nil, nil), "без смены статуса отметка не меняется")
}
