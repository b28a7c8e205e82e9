// Package services содержит диспетчер заявок на учёт тренировок:
// валидацию входной заявки, маршрутизацию в бизнес-логику часов
// и преобразование результата в транспортно-нейтральный исход.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/trainer-workload/internal/lib/month"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
	workloadservice "github.com/magabrotheeeer/trainer-workload/internal/services/workload"
)

// trainingDateLayout формат даты тренировки во входной заявке.
const trainingDateLayout = "2006-01-02"

// Action — закрытый тип действия заявки. Других мутирующих действий нет,
// нераспознанный тег всегда превращается в ошибку валидации.
type Action int

// Допустимые действия. Нулевое значение невалидно.
const (
	ActionAdd Action = iota + 1
	ActionDelete
)

// ParseAction распознаёт тег действия без учёта регистра.
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(raw) {
	case "add":
		return ActionAdd, nil
	case "delete":
		return ActionDelete, nil
	default:
		return 0, fmt.Errorf("invalid action type: %q", raw)
	}
}

// Outcome — результат обработки заявки. OK=false означает ошибку клиента,
// Message объясняет нарушенное правило или подтверждает операцию.
type Outcome struct {
	OK      bool
	Message string
}

// Ledger описывает интерфейс бизнес-логики учёта часов.
type Ledger interface {
	AddHours(ctx context.Context, username, firstName, lastName string,
		isActive bool, year, monthNumber, duration int) (string, error)
	DeleteHours(ctx context.Context, username string,
		year, monthNumber, duration int) (string, error)
}

// Dispatcher валидирует заявку и направляет её в Ledger.
// Состояния не имеет: каждый вызов — функция от заявки и содержимого хранилища.
type Dispatcher struct {
	ledger Ledger
	log    *slog.Logger
}

// New создает новый Dispatcher.
func New(ledger Ledger, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		ledger: ledger,
		log:    log,
	}
}

// ProcessRequest проверяет заявку и выполняет её действие.
//
// Порядок проверок, первая неудача завершает обработку:
// непустой username, неотрицательная длительность (ноль проходит),
// корректная дата, распознанный тег действия. Ошибки бизнес-логики
// (Training not found, невалидный месяц) становятся клиентским исходом
// с их текстом дословно; ошибки хранилища возвращаются как error без изменений.
func (d *Dispatcher) ProcessRequest(ctx context.Context, req models.TrainingRequest) (Outcome, error) {
	const op = "dispatch.ProcessRequest"
	log := d.log.With(
		slog.String("op", op),
		slog.String("username", req.TrainerUsername),
		slog.String("action_type", req.ActionType),
	)
	log.Info("processing training request")

	if strings.TrimSpace(req.TrainerUsername) == "" {
		log.Error("blank trainer username")
		return clientError("username must not be blank"), nil
	}
	if req.TrainingDuration < 0 {
		log.Error("negative training duration", slog.Int("duration", req.TrainingDuration))
		return clientError("duration must be greater than 0"), nil
	}
	date, err := time.Parse(trainingDateLayout, req.TrainingDate)
	if err != nil {
		log.Error("malformed training date", sl.Err(err))
		return clientError("invalid training date"), nil
	}
	action, err := ParseAction(req.ActionType)
	if err != nil {
		log.Error("unrecognized action tag", sl.Err(err))
		return clientError("invalid action type"), nil
	}

	year, monthNumber := date.Year(), int(date.Month())

	var message string
	switch action {
	case ActionAdd:
		message, err = d.ledger.AddHours(ctx, req.TrainerUsername, req.FirstName,
			req.LastName, req.IsActive, year, monthNumber, req.TrainingDuration)
	case ActionDelete:
		message, err = d.ledger.DeleteHours(ctx, req.TrainerUsername,
			year, monthNumber, req.TrainingDuration)
	}
	if err != nil {
		if errors.Is(err, workloadservice.ErrTrainingNotFound) || errors.Is(err, month.ErrInvalid) {
			log.Error("request rejected", sl.Err(err))
			return clientError(err.Error()), nil
		}
		return Outcome{}, err
	}

	log.Info("training request processed", slog.String("message", message))
	return Outcome{OK: true, Message: message}, nil
}

func clientError(message string) Outcome {
	return Outcome{OK: false, Message: message}
}
