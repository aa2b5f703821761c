package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"company-system/internal/entities"
)

type ReportRepositoryInterface interface {
	GetTaskReport(ctx context.Context, filter entities.TaskReportFilter) ([]entities.TaskReportRow, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

// GetTaskReport собирает плоский отчёт по задачам с именами отдела и
// исполнителя.
func (r *ReportRepository) GetTaskReport(ctx context.Context, filter entities.TaskReportFilter) ([]entities.TaskReportRow, error) {
	builder := sq.Select(
		"t.id", "t.title", "t.status",
		"d.name AS department_name",
		"COALESCE(u.first_name || ' ' || u.last_name, '')",
		"t.deadline", "t.completed_at", "t.created_at",
	).
		From("tasks t").
		Join("departments d ON d.id = t.department_id").
		LeftJoin("users u ON u.id = t.assigned_to_id").
		PlaceholderFormat(sq.Dollar).
		OrderBy("t.id ASC")

	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"t.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"t.created_at": *filter.DateTo})
	}
	if len(filter.DepartmentIDs) > 0 {
		builder = builder.Where(sq.Eq{"t.department_id": filter.DepartmentIDs})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"t.status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]entities.TaskReportRow, 0)
	for rows.Next() {
		var row entities.TaskReportRow
		var deadline, completedAt *time.Time
		if err := rows.Scan(&row.ID, &row.Title, &row.Status, &row.DepartmentName,
			&row.AssigneeName, &deadline, &completedAt, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Deadline = deadline
		row.CompletedAt = completedAt
		report = append(report, row)
	}
	return report, rows.Err()
}
