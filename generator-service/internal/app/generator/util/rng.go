package util

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand - единственный источник случайности генератора.
// Все стадии получают один и тот же экземпляр, поэтому при фиксированном
// сиде последовательность выборок, а значит и датасет, воспроизводимы.
type Rand struct {
	src *rand.Rand
}

// NewRand создаёт генератор, детерминированный относительно сида
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

// Float64 возвращает число из [0, 1)
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// IntN возвращает целое из [0, n)
func (r *Rand) IntN(n int) int {
	return r.src.IntN(n)
}

// Chance возвращает true с вероятностью p
func (r *Rand) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Uniform возвращает число из [lo, hi)
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// UniformInt возвращает целое из [lo, hi)
func (r *Rand) UniformInt(lo, hi int) int {
	return lo + r.src.IntN(hi-lo)
}

// LogNormal возвращает выборку из логнормального распределения exp(N(mu, sigma)).
// Даёт характерное для розничных цен правостороннее распределение:
// много дешёвых позиций и длинный хвост дорогих.
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*r.src.NormFloat64())
}

// Poisson возвращает выборку из распределения Пуассона со средним lambda.
// Алгоритм Кнута: число равномерных множителей до падения произведения
// ниже exp(-lambda). Для используемых средних (до ~100) произведение
// остаётся в пределах точности float64.
func (r *Rand) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= r.src.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// WeightedChoice - значение с весом для дискретного распределения
type WeightedChoice struct {
	Value  int
	Weight float64
}

// WeightedInt выбирает значение пропорционально весам.
// Веса должны суммироваться к 1; при накопленной погрешности
// возвращается последний вариант.
func (r *Rand) WeightedInt(choices []WeightedChoice) int {
	u := r.src.Float64()
	acc := 0.0
	for _, c := range choices {
		acc += c.Weight
		if u < acc {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// PickString возвращает равновероятный элемент списка
func (r *Rand) PickString(items []string) string {
	return items[r.src.IntN(len(items))]
}

// DateBetween возвращает случайную полночь UTC из [start, end)
func (r *Rand) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, r.src.IntN(days))
}
