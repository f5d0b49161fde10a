// Package period содержит функции для работы с календарными периодами учёта
// потребления. Период — это календарный месяц, представленный своим первым днём.
package period

import "time"

// MonthOf возвращает первый день месяца, в который попадает t, в UTC.
// Используется как ключ строки потребления (usage).
func MonthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Next возвращает первый день следующего месяца после периода p.
func Next(p time.Time) time.Time {
	return MonthOf(p).AddDate(0, 1, 0)
}
