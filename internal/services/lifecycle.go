package services

import (
	"time"

	"company-system/pkg/constants"
)

// completionTimestamp реализует правило отметки о выполнении: метка
// ставится один раз, при первом переходе статуса в done, и больше
// никогда не меняется — ни повторным done, ни уходом из done.
// Возвращает nil, когда менять completed_at не нужно.
func completionTimestamp(currentCompletedAt *time.Time, newStatus *string) *time.Time {
	if newStatus == nil || *newStatus != constants.TaskStatusDone {
		return nil
	}
	if currentCompletedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	return &now
}
