package hours

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс hours.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetMonthlyHours(ctx context.Context, username string, year, monthNumber int) (int, error) {
	args := m.Called(ctx, username, year, monthNumber)
	return args.Int(0), args.Error(1)
}

func (m *MockService) TrainerExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func TestHoursHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный запрос",
			url:  "/api/v1/trainers/trainer.jane/hours?year=2024&month=3",
			setupMock: func(m *MockService) {
				m.On("TrainerExists", mock.Anything, "trainer.jane").Return(true, nil)
				m.On("GetMonthlyHours", mock.Anything, "trainer.jane", 2024, 3).Return(8, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"username":"trainer.jane","year":2024,"month":3,"hours":8}}`,
		},
		{
			name: "месяц без записей - ноль",
			url:  "/api/v1/trainers/trainer.jane/hours?year=2024&month=11",
			setupMock: func(m *MockService) {
				m.On("TrainerExists", mock.Anything, "trainer.jane").Return(true, nil)
				m.On("GetMonthlyHours", mock.Anything, "trainer.jane", 2024, 11).Return(0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"username":"trainer.jane","year":2024,"month":11,"hours":0}}`,
		},
		{
			name: "неизвестный тренер",
			url:  "/api/v1/trainers/ghost/hours?year=2024&month=3",
			setupMock: func(m *MockService) {
				m.On("TrainerExists", mock.Anything, "ghost").Return(false, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:           "некорректный год",
			url:            "/api/v1/trainers/trainer.jane/hours?year=abc&month=3",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid year"}`,
		},
		{
			name:           "месяц вне диапазона",
			url:            "/api/v1/trainers/trainer.jane/hours?year=2024&month=13",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid month"}`,
		},
		{
			name:           "месяц не задан",
			url:            "/api/v1/trainers/trainer.jane/hours?year=2024",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid month"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/v1/trainers/trainer.jane/hours?year=2024&month=3",
			setupMock: func(m *MockService) {
				m.On("TrainerExists", mock.Anything, "trainer.jane").Return(true, nil)
				m.On("GetMonthlyHours", mock.Anything, "trainer.jane", 2024, 3).
					Return(0, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not get monthly hours"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			router := chi.NewRouter()
			router.Get("/api/v1/trainers/{username}/hours", New(logger, mockSvc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
