// Package models содержит доменные структуры нагрузки тренера:
// запись тренера с разбивкой отработанных часов по годам и месяцам,
// а также вспомогательные типы для приёма данных из внешних запросов.
package models

import "github.com/magabrotheeeer/trainer-workload/internal/lib/month"

// YearSummary хранит отработанные часы одного календарного года,
// сгруппированные по месяцам. Отсутствующий месяц означает ноль часов,
// присутствующее значение никогда не опускается ниже нуля.
type YearSummary struct {
	Year         int               // Календарный год
	MonthlyHours map[month.Month]int // Часы по месяцам, ключи только для месяцев с активностью
}

// NewYearSummary создает пустую сводку для указанного года.
func NewYearSummary(year int) *YearSummary {
	return &YearSummary{
		Year:         year,
		MonthlyHours: make(map[month.Month]int),
	}
}

// AddHours прибавляет часы к итогу месяца, отсутствующий месяц считается нулём.
func (y *YearSummary) AddHours(m month.Month, hours int) {
	y.MonthlyHours[m] += hours
}

// DeleteHours вычитает часы из итога месяца с насыщением в нуле:
// вычитание сверх накопленного даёт ровно ноль, а не отрицательное значение.
func (y *YearSummary) DeleteHours(m month.Month, hours int) {
	rest := y.MonthlyHours[m] - hours
	if rest < 0 {
		rest = 0
	}
	y.MonthlyHours[m] = rest
}

// Hours возвращает итог месяца, ноль для месяца без записей.
func (y *YearSummary) Hours(m month.Month) int {
	return y.MonthlyHours[m]
}

// TrainerRecord представляет агрегат нагрузки одного тренера:
// профиль и сводки по годам. Ключ Years гарантирует не более одной
// сводки на год. Идентификатор UID назначается хранилищем.
type TrainerRecord struct {
	UID       string                  // Идентификатор, назначаемый хранилищем
	Username  string                  // Уникальное имя тренера, бизнес-ключ
	FirstName string                  // Имя
	LastName  string                  // Фамилия
	IsActive  bool                    // Статус тренера, информационный флаг
	Years     map[int]*YearSummary    // Сводки по годам, не более одной на год
}

// NewTrainerRecord создает новую запись тренера без отработанных часов.
func NewTrainerRecord(username, firstName, lastName string, isActive bool) *TrainerRecord {
	return &TrainerRecord{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  isActive,
		Years:     make(map[int]*YearSummary),
	}
}

// YearFor возвращает сводку указанного года, создавая её при отсутствии.
func (r *TrainerRecord) YearFor(year int) *YearSummary {
	if y, ok := r.Years[year]; ok {
		return y
	}
	y := NewYearSummary(year)
	r.Years[year] = y
	return y
}
