package api

import (
	"context"
	"net/http"

	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (result0 *TokenResponse, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "Login")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(creds); err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", creds, &token); err != nil {
		if contextutils.IsError(err, contextutils.ErrUnauthorized) {
			return nil, contextutils.ErrInvalidCredentials
		}
		return nil, err
	}
	if token.Token == "" {
		return nil, contextutils.WrapError(contextutils.ErrAPIResponseInvalid, "login response carried no token")
	}
	return &token, nil
}

// Signup creates an account. The API acknowledges with a 201 and no
// token; the visitor logs in afterwards. A duplicate email surfaces as
// ErrRecordExists.
func (c *Client) Signup(ctx context.Context, creds Credentials) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "Signup")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(creds); err != nil {
		return err
	}

	return c.doJSON(ctx, http.MethodPost, "/api/auth/signup", "", creds, nil)
}

// GetProfile fetches the account record for the given token. The role
// claim here is what gates the back-office views; enforcement itself is
// server-side.
func (c *Client) GetProfile(ctx context.Context, token string) (result0 *Profile, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetProfile")
	defer observability.FinishSpan(span, &err)

	var profile Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the account's display name and email.
func (c *Client) UpdateProfile(ctx context.Context, token string, profile Profile) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "UpdateProfile")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodPut, "/api/user/profile", token, profile, nil)
}
