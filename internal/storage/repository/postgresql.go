// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, организаций, планов, подписок, потребления,
// документов и журналов. Методы узкие, по одной операции; составные
// атомарные сценарии собираются через WithTx.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// dbtx — то, на чём выполняются запросы: *sql.DB вне транзакции либо *sql.Tx внутри.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
	db dbtx
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
		db: db,
	}, nil
}

// WithTx выполняет fn внутри одной транзакции. Переданному fn достаётся
// копия Storage, все методы которой ходят через *sql.Tx. Любая ошибка fn
// откатывает транзакцию целиком, частичное состояние снаружи не наблюдаемо.
func (s *Storage) WithTx(ctx context.Context, fn func(tx *Storage) error) error {
	const op = "storage.WithTx"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txStorage := &Storage{DB: s.DB, db: tx}
	if err := fn(txStorage); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsUniqueViolation сообщает, вызвана ли ошибка нарушением уникального
// ограничения. Предварительные проверки существования по своей природе
// гоночные, финальный арбитр — ограничение в базе, и его нарушение
// транслируется в ту же доменную ошибку, что и проверка.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// UniqueConstraintName возвращает имя нарушенного уникального ограничения
// или пустую строку, если ошибка не о нём. Позволяет различить, какое из
// нескольких ограничений таблицы сработало.
func UniqueConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

// Ping проверяет доступность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
