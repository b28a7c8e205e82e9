package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/trainer-workload/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
	dispatchservice "github.com/magabrotheeeer/trainer-workload/internal/services/dispatch"
)

// Dispatcher описывает интерфейс диспетчера заявок на учёт тренировок.
type Dispatcher interface {
	ProcessRequest(ctx context.Context, req models.TrainingRequest) (dispatchservice.Outcome, error)
}

// NewTrainingHandler возвращает обработчик сообщений очереди заявок.
//
// Нечитаемое сообщение и заявка, отклонённая диспетчером, подтверждаются:
// повторная доставка не изменит исход. В очередь возвращаются только
// сообщения, упавшие на инфраструктурной ошибке.
func NewTrainingHandler(log *slog.Logger, dispatcher Dispatcher) func([]byte) error {
	const op = "rabbitmq.TrainingHandler"
	return func(body []byte) error {
		logger := log.With(slog.String("op", op))

		var req models.TrainingRequest
		if err := json.Unmarshal(body, &req); err != nil {
			logger.Error("failed to decode training message", sl.Err(err))
			return nil
		}

		outcome, err := dispatcher.ProcessRequest(context.Background(), req)
		if err != nil {
			logger.Error("failed to process training message", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
		if !outcome.OK {
			logger.Error("training message rejected",
				slog.String("username", req.TrainerUsername),
				slog.String("message", outcome.Message))
			return nil
		}

		logger.Info("training message processed",
			slog.String("username", req.TrainerUsername),
			slog.String("message", outcome.Message))
		return nil
	}
}
