// Package month определяет закрытое перечисление календарных месяцев (1..12)
// с каноническими именами. Любое другое число или имя считается ошибкой,
// значения по умолчанию нет.
package month

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid возвращается при попытке построить Month из
// некорректного номера или имени.
var ErrInvalid = errors.New("invalid month")

// Month представляет календарный месяц, допустимые значения 1..12.
type Month int

// Перечисление месяцев. Нулевое значение невалидно.
const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var names = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FromNumber преобразует номер месяца в Month, возвращает ошибку при выходе за 1..12.
func FromNumber(n int) (Month, error) {
	if n < 1 || n > 12 {
		return 0, fmt.Errorf("%w number: %d", ErrInvalid, n)
	}
	return Month(n), nil
}

// FromName преобразует имя месяца (без учёта регистра) в Month.
func FromName(name string) (Month, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w name: %s", ErrInvalid, name)
}

// Number возвращает номер месяца 1..12.
func (m Month) Number() int {
	return int(m)
}

// Valid сообщает, находится ли значение в допустимом диапазоне.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String возвращает каноническое имя месяца.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return names[m-1]
}
