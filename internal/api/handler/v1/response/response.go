package response

import (
	"time"

	"github.com/festflow/festflow-api/internal/domain"
)

// Data is the success envelope. Message is only set by mutations.
type Data[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

func OK[T any](data T) Data[T] {
	return Data[T]{Success: true, Data: data}
}

func OKWithMessage[T any](message string, data T) Data[T] {
	return Data[T]{Success: true, Message: message, Data: data}
}

type List[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

func OKList[T any](data []T) List[T] {
	if data == nil {
		data = []T{}
	}
	return List[T]{Success: true, Count: len(data), Data: data}
}

// Empty renders as {} for deletions.
type Empty struct{}

// AuthPayload carries the signed token and, on signup, the public part of
// the new user.
type AuthPayload struct {
	User  *domain.UserSummary `json:"user,omitempty"`
	Token string              `json:"token"`
}

type Health struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
