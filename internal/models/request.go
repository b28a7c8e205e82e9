package models

// TrainingRequest используется для приёма заявки на учёт тренировки
// из JSON-запроса или из тела сообщения очереди, до её валидации
// и маршрутизации в бизнес-логику. Дата приходит строкой в формате 2006-01-02.
type TrainingRequest struct {
	TrainerUsername  string `json:"trainer_username"`                                   // Имя тренера
	FirstName        string `json:"first_name"`                                         // Имя
	LastName         string `json:"last_name"`                                          // Фамилия
	IsActive         bool   `json:"is_active"`                                          // Статус тренера
	TrainingDate     string `json:"training_date" validate:"required,datetime=2006-01-02"` // Дата тренировки
	TrainingDuration int    `json:"training_duration"`                                  // Длительность в часах
	ActionType       string `json:"action_type" validate:"required"`                    // Действие: add или delete
}
