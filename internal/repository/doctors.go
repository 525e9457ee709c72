package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

func (r *Repository) CreateDoctor(doctor *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO doctors (full_name, alias, max_7h_guards, max_17h_guards)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{doctor.FullName, doctor.Alias, doctor.Max7hGuards, doctor.Max17hGuards}
	dst := []any{&doctor.ID, &doctor.IsActive, &doctor.CreatedAt, &doctor.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	for _, weekday := range doctor.UnavailableWeekdays {
		query := `
			INSERT INTO doctor_unavailable_weekdays (doctor_id, weekday)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, doctor.ID, weekday); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllDoctors() ([]*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			d.id,
			d.full_name,
			d.alias,
			d.max_7h_guards,
			d.max_17h_guards,
			d.is_active,
			d.created_at,
			d.version,
			duw.weekday
		FROM doctors d
		LEFT JOIN doctor_unavailable_weekdays duw ON d.id = duw.doctor_id
		ORDER BY d.id, duw.weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctorsMap := make(map[int64]*domain.Doctor)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID           int64
			FullName     string
			Alias        string
			Max7hGuards  sql.NullInt32
			Max17hGuards sql.NullInt32
			IsActive     bool
			CreatedAt    time.Time
			Version      int32
			Weekday      sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.FullName,
			&row.Alias,
			&row.Max7hGuards,
			&row.Max17hGuards,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		doctor, exists := doctorsMap[row.ID]
		if !exists {
			// 第一次查到这个医生，初始化
			doctor = &domain.Doctor{
				ID:                  row.ID,
				FullName:            row.FullName,
				Alias:               row.Alias,
				UnavailableWeekdays: make([]int32, 0),
				IsActive:            row.IsActive,
				CreatedAt:           row.CreatedAt,
				Version:             row.Version,
			}
			if row.Max7hGuards.Valid {
				doctor.Max7hGuards = &row.Max7hGuards.Int32
			}
			if row.Max17hGuards.Valid {
				doctor.Max17hGuards = &row.Max17hGuards.Int32
			}
			doctorsMap[row.ID] = doctor
			order = append(order, row.ID)
		}

		// weekday 为空表示这个医生没有设置每周固定不可值班的日期
		if !row.Weekday.Valid {
			continue
		}

		doctor.UnavailableWeekdays = append(doctor.UnavailableWeekdays, row.Weekday.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	doctors := make([]*domain.Doctor, 0, len(order))
	for _, id := range order {
		doctors = append(doctors, doctorsMap[id])
	}

	return doctors, nil
}

func (r *Repository) GetDoctorByID(id int64) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT full_name, alias, max_7h_guards, max_17h_guards, is_active, created_at, version
		FROM doctors WHERE id = $1
	`

	doctor := &domain.Doctor{
		ID:                  id,
		UnavailableWeekdays: make([]int32, 0),
	}

	var max7h, max17h sql.NullInt32
	dst := []any{&doctor.FullName, &doctor.Alias, &max7h, &max17h, &doctor.IsActive, &doctor.CreatedAt, &doctor.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if max7h.Valid {
		doctor.Max7hGuards = &max7h.Int32
	}
	if max17h.Valid {
		doctor.Max17hGuards = &max17h.Int32
	}

	query = `
		SELECT weekday FROM doctor_unavailable_weekdays WHERE doctor_id = $1 ORDER BY weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int32
		if err := rows.Scan(&weekday); err != nil {
			return nil, err
		}
		doctor.UnavailableWeekdays = append(doctor.UnavailableWeekdays, weekday)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *Repository) UpdateDoctor(doctor *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE doctors
		SET
			full_name = $1,
			alias = $2,
			max_7h_guards = $3,
			max_17h_guards = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	args := []any{doctor.FullName, doctor.Alias, doctor.Max7hGuards, doctor.Max17hGuards, doctor.IsActive, doctor.ID, doctor.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&doctor.CreatedAt, &doctor.Version); err != nil {
		return err
	}

	// 不可值班的星期直接整体替换，比逐条对比省事
	query = `
		DELETE FROM doctor_unavailable_weekdays WHERE doctor_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, doctor.ID); err != nil {
		return err
	}

	for _, weekday := range doctor.UnavailableWeekdays {
		query := `
			INSERT INTO doctor_unavailable_weekdays (doctor_id, weekday)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, doctor.ID, weekday); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDoctor(id int64) error {
	query := `
		DELETE FROM doctors WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
