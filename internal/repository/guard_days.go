package repository

import (
	"context"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

func (r *Repository) CreateGuardDay(guardDay *domain.GuardDay) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO guard_days (date)
		VALUES ($1)
		RETURNING id, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, guardDay.Date).Scan(&guardDay.ID, &guardDay.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetGuardDaysInRange 获取指定日期区间内所有被标记为需要值班的日期
func (r *Repository) GetGuardDaysInRange(from time.Time, to time.Time) ([]*domain.GuardDay, error) {
	query := `
		SELECT id, date, created_at
		FROM guard_days
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guardDays := make([]*domain.GuardDay, 0)
	for rows.Next() {
		guardDay := &domain.GuardDay{}
		if err := rows.Scan(&guardDay.ID, &guardDay.Date, &guardDay.CreatedAt); err != nil {
			return nil, err
		}
		guardDays = append(guardDays, guardDay)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return guardDays, nil
}

func (r *Repository) DeleteGuardDayByDate(date time.Time) error {
	query := `
		DELETE FROM guard_days WHERE date = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, date); err != nil {
		return err
	}

	return nil
}
