package handler

import (
	"context"
	"encoding/json"
	"errors"

	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/usecase"
	"go-hospital-server/pkg/response"
	"go-hospital-server/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Register handles the "register" action
func (h *AuthHandler) Register(ctx context.Context, payload []byte) *response.Response {
	var req dto.RegisterRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	user, err := h.authUsecase.Register(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameAlreadyExists),
			errors.Is(err, usecase.ErrInvalidRole):
			return response.Failure(err.Error())
		default:
			return response.Failure("failed to register user")
		}
	}

	return response.Success(user)
}

// Login handles the "login" action
func (h *AuthHandler) Login(ctx context.Context, payload []byte) *response.Response {
	var req dto.LoginRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	result, err := h.authUsecase.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return response.Failure(err.Error())
		}
		return response.Failure("failed to login")
	}

	return response.Success(result)
}
