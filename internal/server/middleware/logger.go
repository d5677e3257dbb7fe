// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/ergotype/internal/shared/logger"
)

type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(Status int) {
	w.Status = Status
	w.ResponseWriter.WriteHeader(Status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	Size, err := w.ResponseWriter.Write(b)
	w.Size += Size
	return Size, err
}

// LoggerMiddleware логирует каждый запрос: метод, uri, статус, размер
// ответа и длительность. Каждому запросу присваивается request id (uuid),
// он же возвращается клиенту в заголовке X-Request-Id.
func LoggerMiddleware(loggerHTTP *logger.HTTPLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			duration := time.Since(start).Seconds() * 1000
			loggerHTTP.LogRequest(requestID, r.Method, r.RequestURI, wr.Status, wr.Size, duration)
		})
	}
}
