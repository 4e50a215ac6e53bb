package metrics

import (
	"time"
)

// RecordDatasetReload фиксирует результат перезагрузки датасета
func RecordDatasetReload(service, status string, duration time.Duration) {
	DatasetReloads.WithLabelValues(service, status).Inc()
	if status == "success" {
		DatasetReloadDuration.WithLabelValues(service).Observe(duration.Seconds())
		DatasetLastReloadTimestamp.WithLabelValues(service).SetToCurrentTime()
	}
}

// RecordDatasetRows обновляет gauge количества строк таблицы снапшота
func RecordDatasetRows(service, table string, rows int) {
	DatasetRows.WithLabelValues(service, table).Set(float64(rows))
}

// RecordDatasetAge обновляет возраст датасета относительно generated_at манифеста
func RecordDatasetAge(service string, generatedAt time.Time) {
	DatasetGeneratedAge.WithLabelValues(service).Set(time.Since(generatedAt).Seconds())
}

// RecordInsight учитывает собранное insight-сообщение
func RecordInsight(service, kind, severity string) {
	InsightsGenerated.WithLabelValues(service, kind, severity).Inc()
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
