package util

import "math"

// Round2 округляет до 2 знаков. Все денежные поля датасета
// проходят через эту функцию ровно один раз, на этапе вычисления.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundTo округляет до заданного числа знаков
func RoundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
