package models

import "time"

// Значения поля status в конверте ответа.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Timestamp — момент формирования ответа, сериализуется в ISO-8601 (UTC).
type Timestamp time.Time

// Now возвращает текущий момент в UTC.
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).UTC().MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var tt time.Time
	if err := tt.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = Timestamp(tt.UTC())
	return nil
}

// Time возвращает значение как time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// ErrorEnvelope — тело любого ответа с ошибкой.
type ErrorEnvelope struct {
	Error     string    `json:"error"`
	Timestamp Timestamp `json:"timestamp"`
	Status    string    `json:"status"`
}

// Greeting — ответ /hello.
type Greeting struct {
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
}
