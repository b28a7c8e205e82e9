// Package repository реализует хранилище данных на основе PostgreSQL
// для записей нагрузки тренеров. Предоставляет поиск записи по username
// и атомарное сохранение всей записи вместе с часами по годам и месяцам.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrTrainerNotFound возвращается, когда запись тренера отсутствует в хранилище.
var ErrTrainerNotFound = errors.New("trainer not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с записями нагрузки тренеров.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'trainers'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table trainers missing or query error: %w", err)
	}
	return nil
}
