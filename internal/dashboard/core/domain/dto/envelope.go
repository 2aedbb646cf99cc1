package dto

import "shuttle-admin/internal/dashboard/core/domain/models"

// Envelope is the backend's uniform response shape.
type Envelope[T any] struct {
	Data      T                   `json:"data"`
	IsSuccess bool                `json:"isSuccess"`
	Message   string              `json:"message,omitempty"`
	Messages  []ValidationMessage `json:"messages,omitempty"`
}

type ValidationMessage struct {
	PropertyName string `json:"propertyName"`
	Message      string `json:"message"`
}

// FirstMessage returns the first non-empty message, then property name.
func FirstMessage(msgs []ValidationMessage) string {
	if len(msgs) == 0 {
		return ""
	}
	if msgs[0].Message != "" {
		return msgs[0].Message
	}
	return msgs[0].PropertyName
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	Token          string          `json:"token"`
	ExpirationTime string          `json:"expirationTime"`
	User           models.AuthUser `json:"user"`
}
