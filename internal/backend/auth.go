package backend

import (
	"context"
	"net/http"
)

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterInput struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type RegisterResult struct {
	UserID int    `json:"userId"`
	Msg    string `json:"msg"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) VerifyEmail(ctx context.Context, userID int, code string) (string, error) {
	payload := struct {
		UserID int    `json:"userId"`
		Code   string `json:"code"`
	}{userID, code}

	var result struct {
		Msg string `json:"msg"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-email", "", payload, &result); err != nil {
		return "", err
	}
	return result.Msg, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (string, error) {
	payload := struct {
		Email string `json:"email"`
	}{email}

	var result struct {
		Msg string `json:"msg"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/resend-verification", "", payload, &result); err != nil {
		return "", err
	}
	return result.Msg, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	payload := struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}{email, code, newPassword}

	var result struct {
		Msg string `json:"msg"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", "", payload, &result); err != nil {
		return "", err
	}
	return result.Msg, nil
}
