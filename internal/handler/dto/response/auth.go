package response

import (
	"bookit-api/internal/usecase/queries"
)

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	TokenPairResponse
	User *UserResponse `json:"user"`
}

func NewAuthResponse(accessToken, refreshToken string, user *queries.AuthorizedUserView) *AuthResponse {
	return &AuthResponse{
		TokenPairResponse: TokenPairResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		User: FromUserView(user),
	}
}
