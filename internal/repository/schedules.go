package repository

import (
	"context"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// InsertSchedule 在一个事务中持久化一次排班生成的完整结果：
// 先删除同一 (month, year) 的旧草稿（及其级联的排班记录），
// 再插入新的 schedule 行和整批排班记录
// 任何一步失败都会整体回滚，不允许留下只写了一半的排班
func (r *Repository) InsertSchedule(schedule *domain.Schedule, assignments []*domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedules WHERE month = $1 AND year = $2 AND status = $3`
	if _, err := tx.ExecContext(ctx, query, schedule.Month, schedule.Year, domain.ScheduleStatusDraft); err != nil {
		return err
	}

	query = `
		INSERT INTO schedules (month, year, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, schedule.Month, schedule.Year, schedule.Status).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	for _, assignment := range assignments {
		query := `
			INSERT INTO assignments (schedule_id, date, shift_type, slot_position, doctor_id, is_original, original_doctor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		args := []any{
			schedule.ID,
			assignment.Date,
			assignment.ShiftType,
			assignment.SlotPosition,
			assignment.DoctorID,
			assignment.IsOriginal,
			assignment.OriginalDoctorID,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&assignment.ID); err != nil {
			return err
		}
		assignment.ScheduleID = schedule.ID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetScheduleByMonthYear(month int, year int) (*domain.Schedule, error) {
	query := `
		SELECT id, status, created_at, version
		FROM schedules WHERE month = $1 AND year = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.Schedule{
		Month: month,
		Year:  year,
	}

	dst := []any{&schedule.ID, &schedule.Status, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, month, year).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) GetAssignmentsByScheduleID(scheduleID int64) ([]*domain.Assignment, error) {
	// shift_type 按字典序降序正好是 7h 在前、17h 在后，和生成时的名额顺序一致
	query := `
		SELECT id, date, shift_type, slot_position, doctor_id, is_original, original_doctor_id
		FROM assignments
		WHERE schedule_id = $1
		ORDER BY date, shift_type DESC, slot_position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{
			ScheduleID: scheduleID,
		}
		dst := []any{
			&assignment.ID,
			&assignment.Date,
			&assignment.ShiftType,
			&assignment.SlotPosition,
			&assignment.DoctorID,
			&assignment.IsOriginal,
			&assignment.OriginalDoctorID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetOriginalAssignmentsInRange 获取指定日期区间内所有由排班引擎直接生成的排班记录，
// 用于在新一次生成前计算每个医生的历史负载
func (r *Repository) GetOriginalAssignmentsInRange(from time.Time, to time.Time) ([]*domain.Assignment, error) {
	query := `
		SELECT id, schedule_id, date, shift_type, slot_position, doctor_id, is_original, original_doctor_id
		FROM assignments
		WHERE is_original = TRUE AND date >= $1 AND date <= $2
		ORDER BY date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{
			&assignment.ID,
			&assignment.ScheduleID,
			&assignment.Date,
			&assignment.ShiftType,
			&assignment.SlotPosition,
			&assignment.DoctorID,
			&assignment.IsOriginal,
			&assignment.OriginalDoctorID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) DeleteSchedule(id int64) error {
	query := `
		DELETE FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
