// Package process реализует HTTP-обработчик приёма заявок на учёт тренировок.
//
// Handler принимает JSON-заявку, валидирует её структуру, передаёт диспетчеру
// и возвращает исход обработки в JSON-формате: подтверждение при успехе,
// описание нарушенного правила при ошибке клиента.
package process

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/trainer-workload/internal/http/response"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
	dispatchservice "github.com/magabrotheeeer/trainer-workload/internal/services/dispatch"
)

// Handler управляет HTTP-запросами на учёт тренировок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Диспетчер заявок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс диспетчера заявок.
type Service interface {
	ProcessRequest(ctx context.Context, req models.TrainingRequest) (dispatchservice.Outcome, error)
}

// New создает новый Handler с переданными логгером и диспетчером.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Учесть тренировку
// @Description Добавляет или удаляет отработанные часы тренера по заявке.
// @Tags Workload
// @Accept  json
// @Produce  json
// @Param request body models.TrainingRequest true "Заявка на учёт тренировки"
// @Success 200 {object} map[string]any "Заявка обработана"
// @Failure 400 {object} response.ErrorResponse "Некорректная заявка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при обработке заявки"
// @Router /trainings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workload.process"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.TrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	outcome, err := h.service.ProcessRequest(r.Context(), req)
	if err != nil {
		log.Error("failed to process training request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process training request"))
		return
	}
	if !outcome.OK {
		log.Error("training request rejected", slog.String("message", outcome.Message))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(outcome.Message))
		return
	}

	log.Info("training request processed", slog.String("message", outcome.Message))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": outcome.Message,
	}))
}
