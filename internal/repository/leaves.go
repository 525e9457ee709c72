package repository

import (
	"context"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

func (r *Repository) CreateLeave(leave *domain.Leave) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leaves (doctor_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{leave.DoctorID, leave.StartDate, leave.EndDate, leave.Reason, leave.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&leave.ID, &leave.CreatedAt, &leave.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeaveByID(id int64) (*domain.Leave, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT doctor_id, start_date, end_date, reason, status, created_at, version
		FROM leaves WHERE id = $1
	`

	leave := &domain.Leave{
		ID: id,
	}

	dst := []any{&leave.DoctorID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.Status, &leave.CreatedAt, &leave.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return leave, nil
}

func (r *Repository) GetAllLeaves() ([]*domain.Leave, error) {
	query := `
		SELECT id, doctor_id, start_date, end_date, reason, status, created_at, version
		FROM leaves ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]*domain.Leave, 0)
	for rows.Next() {
		leave := &domain.Leave{}
		dst := []any{&leave.ID, &leave.DoctorID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.Status, &leave.CreatedAt, &leave.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

// GetApprovedLeavesOverlapping 获取与指定日期区间有交集的所有已批准请假
func (r *Repository) GetApprovedLeavesOverlapping(from time.Time, to time.Time) ([]*domain.Leave, error) {
	query := `
		SELECT id, doctor_id, start_date, end_date, reason, status, created_at, version
		FROM leaves
		WHERE status = $1 AND start_date <= $2 AND end_date >= $3
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.LeaveStatusApproved, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]*domain.Leave, 0)
	for rows.Next() {
		leave := &domain.Leave{}
		dst := []any{&leave.ID, &leave.DoctorID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.Status, &leave.CreatedAt, &leave.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

func (r *Repository) UpdateLeaveStatus(leave *domain.Leave) error {
	query := `
		UPDATE leaves
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, leave.Status, leave.ID, leave.Version).Scan(&leave.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteLeave(id int64) error {
	query := `
		DELETE FROM leaves WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
