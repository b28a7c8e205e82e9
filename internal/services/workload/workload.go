// Package services содержит бизнес-логику учёта нагрузки тренеров:
// добавление и удаление отработанных часов, запрос месячных итогов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-workload/internal/lib/month"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/userlock"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
	"github.com/magabrotheeeer/trainer-workload/internal/storage/repository"
)

// ErrTrainingNotFound возвращается при удалении часов у тренера или года,
// которых нет в хранилище. Текст отдается клиенту дословно.
var ErrTrainingNotFound = errors.New("Training not found")

// cacheTTL время жизни закешированного месячного итога.
const cacheTTL = 5 * time.Minute

// WorkloadRepository определяет методы для работы с записями тренеров в хранилище.
type WorkloadRepository interface {
	// FindTrainerByUsername возвращает запись тренера, repository.ErrTrainerNotFound при отсутствии.
	FindTrainerByUsername(ctx context.Context, username string) (*models.TrainerRecord, error)
	// SaveTrainerRecord атомарно сохраняет запись целиком и возвращает её с назначенным uid.
	SaveTrainerRecord(ctx context.Context, rec *models.TrainerRecord) (*models.TrainerRecord, error)
	// ExistsTrainerByUsername сообщает, известен ли username хранилищу.
	ExistsTrainerByUsername(ctx context.Context, username string) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// WorkloadService реализует бизнес-логику учёта часов.
//
// Каждая мутация — это цикл load-modify-save над записью тренера.
// Все мутации одного username сериализуются ключуемым мьютексом,
// удерживаемым на весь цикл; мутации разных username идут параллельно.
// Хранилище само по себе порядок конкурентных записей не гарантирует.
type WorkloadService struct {
	repo  WorkloadRepository
	cache Cache
	locks *userlock.Keyed
	log   *slog.Logger
}

// NewWorkloadService создает новый экземпляр WorkloadService.
func NewWorkloadService(repo WorkloadRepository, cache Cache, log *slog.Logger) *WorkloadService {
	return &WorkloadService{
		repo:  repo,
		cache: cache,
		locks: userlock.New(),
		log:   log,
	}
}

// AddHours прибавляет duration часов к итогу месяца тренера.
// Неизвестный username создает новую запись с переданным профилем,
// отсутствующий год — новую годовую сводку. Каждый успешный вызов
// делает ровно одну запись в хранилище.
func (s *WorkloadService) AddHours(ctx context.Context, username, firstName, lastName string,
	isActive bool, year, monthNumber, duration int) (string, error) {
	m, err := month.FromNumber(monthNumber)
	if err != nil {
		return "", err
	}

	s.locks.Lock(username)
	defer s.locks.Unlock(username)

	rec, err := s.getOrCreateTrainerRecord(ctx, username, firstName, lastName, isActive)
	if err != nil {
		return "", err
	}

	rec.YearFor(year).AddHours(m, duration)

	if _, err := s.repo.SaveTrainerRecord(ctx, rec); err != nil {
		return "", err
	}
	s.invalidateMonthlyHours(username, year, m)

	s.log.Info("training added",
		slog.String("username", username),
		slog.Int("year", year),
		slog.String("month", m.String()),
		slog.Int("duration", duration))
	return "Training added successfully", nil
}

// DeleteHours вычитает duration часов из итога месяца тренера.
// Отсутствие записи тренера или годовой сводки — ErrTrainingNotFound,
// состояние хранилища при этом не меняется. Вычитание сверх накопленного
// насыщается в нуле: это проектное решение, не подавление ошибки.
func (s *WorkloadService) DeleteHours(ctx context.Context, username string,
	year, monthNumber, duration int) (string, error) {
	m, err := month.FromNumber(monthNumber)
	if err != nil {
		return "", err
	}

	s.locks.Lock(username)
	defer s.locks.Unlock(username)

	rec, err := s.repo.FindTrainerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrTrainerNotFound) {
			s.log.Warn("training not found", slog.String("username", username))
			return "", ErrTrainingNotFound
		}
		return "", err
	}

	summary, ok := rec.Years[year]
	if !ok {
		s.log.Warn("training not found",
			slog.String("username", username), slog.Int("year", year))
		return "", ErrTrainingNotFound
	}

	summary.DeleteHours(m, duration)

	if _, err := s.repo.SaveTrainerRecord(ctx, rec); err != nil {
		return "", err
	}
	s.invalidateMonthlyHours(username, year, m)

	s.log.Info("training deleted",
		slog.String("username", username),
		slog.Int("year", year),
		slog.String("month", m.String()),
		slog.Int("duration", duration))
	return "Training deleted successfully", nil
}

// GetMonthlyHours возвращает итог месяца. Отсутствие тренера, года или
// месяца — это ноль, а не ошибка. Результат кешируется.
func (s *WorkloadService) GetMonthlyHours(ctx context.Context, username string,
	year, monthNumber int) (int, error) {
	m, err := month.FromNumber(monthNumber)
	if err != nil {
		return 0, err
	}

	cacheKey := monthlyHoursKey(username, year, m)
	var cached int
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	rec, err := s.repo.FindTrainerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrTrainerNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var hours int
	if summary, ok := rec.Years[year]; ok {
		hours = summary.Hours(m)
	}

	if err := s.cache.Set(cacheKey, hours, cacheTTL); err != nil {
		s.log.Warn("failed to cache monthly hours", slog.String("key", cacheKey), sl.Err(err))
	}
	return hours, nil
}

// TrainerExists сообщает, известен ли username хранилищу.
// Используется транспортным слоем для отдельного статуса "user not found"
// на пути запроса итогов.
func (s *WorkloadService) TrainerExists(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsTrainerByUsername(ctx, username)
}

// getOrCreateTrainerRecord возвращает существующую запись тренера
// или новую с переданным профилем, если username ещё не встречался.
func (s *WorkloadService) getOrCreateTrainerRecord(ctx context.Context,
	username, firstName, lastName string, isActive bool) (*models.TrainerRecord, error) {
	rec, err := s.repo.FindTrainerByUsername(ctx, username)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, repository.ErrTrainerNotFound) {
		s.log.Info("creating new trainer record", slog.String("username", username))
		return models.NewTrainerRecord(username, firstName, lastName, isActive), nil
	}
	return nil, err
}

func (s *WorkloadService) invalidateMonthlyHours(username string, year int, m month.Month) {
	cacheKey := monthlyHoursKey(username, year, m)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func monthlyHoursKey(username string, year int, m month.Month) string {
	return fmt.Sprintf("workload:%s:%d:%d", username, year, m.Number())
}
