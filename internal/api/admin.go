package api

import (
	"context"
	"net/http"
	"net/url"

	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// Back-office operations under /api/sidigi/*. Authorization is enforced
// server-side from the token's role claim; the front-end only reacts to
// 401/403 by dropping the session and redirecting.

// GetAdminStats fetches the back-office overview counters.
func (c *Client) GetAdminStats(ctx context.Context, token string) (result0 *AdminStats, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetAdminStats")
	defer observability.FinishSpan(span, &err)

	var stats AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/sidigi/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers lists all accounts.
func (c *Client) ListUsers(ctx context.Context, token string) (result0 []AdminUser, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "ListUsers")
	defer observability.FinishSpan(span, &err)

	var users []AdminUser
	if err := c.doJSON(ctx, http.MethodGet, "/api/sidigi/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an account's role or profile fields.
func (c *Client) UpdateUser(ctx context.Context, token string, user AdminUser) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "UpdateUser")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodPut, "/api/sidigi/users/"+url.PathEscape(user.ID), token, user, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "DeleteUser")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodDelete, "/api/sidigi/users/"+url.PathEscape(userID), token, nil, nil)
}

// ListBlogPosts lists blog entries, drafts included.
func (c *Client) ListBlogPosts(ctx context.Context, token string) (result0 []BlogPost, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "ListBlogPosts")
	defer observability.FinishSpan(span, &err)

	var posts []BlogPost
	if err := c.doJSON(ctx, http.MethodGet, "/api/sidigi/blog", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateBlogPost creates a blog entry.
func (c *Client) CreateBlogPost(ctx context.Context, token string, post BlogPost) (result0 *BlogPost, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "CreateBlogPost")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(post); err != nil {
		return nil, err
	}

	var created BlogPost
	if err := c.doJSON(ctx, http.MethodPost, "/api/sidigi/blog", token, post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBlogPost updates a blog entry.
func (c *Client) UpdateBlogPost(ctx context.Context, token string, post BlogPost) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "UpdateBlogPost")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(post); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, "/api/sidigi/blog/"+url.PathEscape(post.ID), token, post, nil)
}

// DeleteBlogPost removes a blog entry.
func (c *Client) DeleteBlogPost(ctx context.Context, token, postID string) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "DeleteBlogPost")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodDelete, "/api/sidigi/blog/"+url.PathEscape(postID), token, nil, nil)
}

// ListPromptTemplates lists the AI prompt templates.
func (c *Client) ListPromptTemplates(ctx context.Context, token string) (result0 []PromptTemplate, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "ListPromptTemplates")
	defer observability.FinishSpan(span, &err)

	var prompts []PromptTemplate
	if err := c.doJSON(ctx, http.MethodGet, "/api/sidigi/prompts", token, nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// CreatePromptTemplate creates an AI prompt template.
func (c *Client) CreatePromptTemplate(ctx context.Context, token string, prompt PromptTemplate) (result0 *PromptTemplate, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "CreatePromptTemplate")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(prompt); err != nil {
		return nil, err
	}

	var created PromptTemplate
	if err := c.doJSON(ctx, http.MethodPost, "/api/sidigi/prompts", token, prompt, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePromptTemplate updates an AI prompt template.
func (c *Client) UpdatePromptTemplate(ctx context.Context, token string, prompt PromptTemplate) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "UpdatePromptTemplate")
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(prompt); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, "/api/sidigi/prompts/"+url.PathEscape(prompt.ID), token, prompt, nil)
}

// DeletePromptTemplate removes an AI prompt template.
func (c *Client) DeletePromptTemplate(ctx context.Context, token, promptID string) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "DeletePromptTemplate")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodDelete, "/api/sidigi/prompts/"+url.PathEscape(promptID), token, nil, nil)
}
