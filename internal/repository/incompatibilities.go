package repository

import (
	"context"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// CreateIncompatibility 插入一对互斥医生
// 插入前保证 doctor_a_id < doctor_b_id，配合唯一约束可以防止同一对医生被反向重复插入
func (r *Repository) CreateIncompatibility(pair *domain.Incompatibility) error {
	if pair.DoctorAID > pair.DoctorBID {
		pair.DoctorAID, pair.DoctorBID = pair.DoctorBID, pair.DoctorAID
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO incompatibilities (doctor_a_id, doctor_b_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, pair.DoctorAID, pair.DoctorBID).Scan(&pair.ID, &pair.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllIncompatibilities() ([]*domain.Incompatibility, error) {
	query := `
		SELECT id, doctor_a_id, doctor_b_id, created_at
		FROM incompatibilities ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([]*domain.Incompatibility, 0)
	for rows.Next() {
		pair := &domain.Incompatibility{}
		dst := []any{&pair.ID, &pair.DoctorAID, &pair.DoctorBID, &pair.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func (r *Repository) DeleteIncompatibility(id int64) error {
	query := `
		DELETE FROM incompatibilities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
