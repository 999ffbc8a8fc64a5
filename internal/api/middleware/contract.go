package middleware

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder записывает метрики HTTP запросов
type MetricsRecorder interface {
	RecordHTTPRequest(method, route, status string, seconds float64)
}
