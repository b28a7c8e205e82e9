package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/trainer-workload/internal/lib/month"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
)

// FindTrainerByUsername возвращает запись тренера со всеми годовыми сводками.
// Отсутствие записи сигнализируется ErrTrainerNotFound.
func (s *Storage) FindTrainerByUsername(ctx context.Context, username string) (*models.TrainerRecord, error) {
	const op = "storage.FindTrainerByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, first_name, last_name, is_active
			  FROM trainers
			  WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	rec := &models.TrainerRecord{Years: make(map[int]*models.YearSummary)}
	if err := row.Scan(&rec.UID, &rec.Username, &rec.FirstName, &rec.LastName,
		&rec.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTrainerNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `SELECT year, month, hours
			 FROM training_hours
			 WHERE trainer_uid = $1
			 ORDER BY year, month`
	rows, err := s.DB.QueryContext(ctx, query, rec.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var year, monthNumber, hours int
		if err := rows.Scan(&year, &monthNumber, &hours); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		m, err := month.FromNumber(monthNumber)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rec.YearFor(year).MonthlyHours[m] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

// ExistsTrainerByUsername сообщает, известен ли username хранилищу.
func (s *Storage) ExistsTrainerByUsername(ctx context.Context, username string) (bool, error) {
	const op = "storage.ExistsTrainerByUsername"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM trainers WHERE username = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// SaveTrainerRecord сохраняет запись тренера целиком в одной транзакции:
// профиль вставляется или обновляется по username, каждая пара (год, месяц)
// вставляется или обновляется по первичному ключу. Либо сохраняется вся
// запись, либо транзакция откатывается. Возвращает запись с назначенным uid.
func (s *Storage) SaveTrainerRecord(ctx context.Context, rec *models.TrainerRecord) (*models.TrainerRecord, error) {
	const op = "storage.SaveTrainerRecord"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO trainers (username, first_name, last_name, is_active)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (username) DO UPDATE
			  SET first_name = EXCLUDED.first_name,
			      last_name = EXCLUDED.last_name,
			      is_active = EXCLUDED.is_active
			  RETURNING uid`
	if err := tx.QueryRowContext(ctx, query,
		rec.Username, rec.FirstName, rec.LastName, rec.IsActive).Scan(&rec.UID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO training_hours (trainer_uid, year, month, hours)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (trainer_uid, year, month) DO UPDATE
			 SET hours = EXCLUDED.hours`
	for _, summary := range rec.Years {
		for m, hours := range summary.MonthlyHours {
			if _, err := tx.ExecContext(ctx, query,
				rec.UID, summary.Year, m.Number(), hours); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}
