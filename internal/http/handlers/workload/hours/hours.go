// Package hours реализует HTTP-обработчик запроса месячного итога часов тренера.
//
// Handler извлекает имя тренера из пути и год с месяцем из query-параметров,
// проверяет, что тренер известен хранилищу, и возвращает целое число часов.
// Отсутствие года или месяца в записи — это ноль, а не ошибка;
// полностью неизвестный тренер — отдельный статус 404.
package hours

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-workload/internal/http/response"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/sl"
)

// Handler управляет HTTP-запросами месячных итогов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики учёта часов
}

// Service описывает интерфейс бизнес-логики запроса итогов.
type Service interface {
	GetMonthlyHours(ctx context.Context, username string, year, monthNumber int) (int, error)
	TrainerExists(ctx context.Context, username string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Месячный итог часов тренера
// @Description Возвращает количество отработанных часов тренера за указанный месяц года.
// @Tags Workload
// @Produce  json
// @Param username path string true "Имя тренера"
// @Param year query int true "Календарный год"
// @Param month query int true "Номер месяца 1..12"
// @Success 200 {object} map[string]any "Итог часов"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 404 {object} response.ErrorResponse "Тренер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trainers/{username}/hours [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workload.hours"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		log.Error("empty username in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username must not be blank"))
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		log.Error("invalid year parameter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid year"))
		return
	}
	monthNumber, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNumber < 1 || monthNumber > 12 {
		log.Error("invalid month parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid month"))
		return
	}

	exists, err := h.service.TrainerExists(r.Context(), username)
	if err != nil {
		log.Error("failed to check trainer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get monthly hours"))
		return
	}
	if !exists {
		log.Error("trainer not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	hours, err := h.service.GetMonthlyHours(r.Context(), username, year, monthNumber)
	if err != nil {
		log.Error("failed to get monthly hours", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get monthly hours"))
		return
	}

	log.Info("monthly hours returned",
		slog.String("username", username),
		slog.Int("year", year),
		slog.Int("month", monthNumber),
		slog.Int("hours", hours))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
		"year":     year,
		"month":    monthNumber,
		"hours":    hours,
	}))
}
