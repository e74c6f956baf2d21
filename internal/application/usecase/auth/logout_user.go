// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/wedding-planner/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for planner logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of planner logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles planner logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the logout by invalidating the refresh token.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// The token might already be invalid, which is fine for logout.
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
