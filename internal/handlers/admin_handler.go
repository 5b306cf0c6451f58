package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/api"
	"bandly/internal/middleware"
	"bandly/internal/observability"
)

// Back-office pages under /sidigi. Every operation proxies to the
// scoring API with the admin's token; authorization is enforced there.

// AdminDashboard renders the back-office overview.
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminDashboard")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	stats, err := h.client.GetAdminStats(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard", h.pageData(c, "Back office", gin.H{
		"Stats": stats,
	}))
}

// AdminUsers lists all accounts.
func (h *Handler) AdminUsers(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminUsers")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	users, err := h.client.ListUsers(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_users", h.pageData(c, "Users", gin.H{
		"Users": users,
	}))
}

// AdminUserUpdate updates an account's role.
func (h *Handler) AdminUserUpdate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminUserUpdate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	user := api.AdminUser{
		ID:    c.Param("id"),
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Role:  c.PostForm("role"),
	}

	if err := h.client.UpdateUser(ctx, token, user); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/users")
}

// AdminUserDelete removes an account.
func (h *Handler) AdminUserDelete(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminUserDelete")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	if err := h.client.DeleteUser(ctx, token, c.Param("id")); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/users")
}

// AdminBlog lists blog posts, drafts included.
func (h *Handler) AdminBlog(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminBlog")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	posts, err := h.client.ListBlogPosts(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_blog", h.pageData(c, "Blog posts", gin.H{
		"Posts": posts,
	}))
}

// AdminBlogCreate creates a blog post from the form.
func (h *Handler) AdminBlogCreate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminBlogCreate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	post := api.BlogPost{
		Slug:      c.PostForm("slug"),
		Title:     c.PostForm("title"),
		Excerpt:   c.PostForm("excerpt"),
		Body:      c.PostForm("body"),
		Published: c.PostForm("published") == "on",
	}

	if _, err := h.client.CreateBlogPost(ctx, token, post); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/blog")
}

// AdminBlogUpdate updates a blog post.
func (h *Handler) AdminBlogUpdate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminBlogUpdate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	post := api.BlogPost{
		ID:        c.Param("id"),
		Slug:      c.PostForm("slug"),
		Title:     c.PostForm("title"),
		Excerpt:   c.PostForm("excerpt"),
		Body:      c.PostForm("body"),
		Published: c.PostForm("published") == "on",
	}

	if err := h.client.UpdateBlogPost(ctx, token, post); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/blog")
}

// AdminBlogDelete removes a blog post.
func (h *Handler) AdminBlogDelete(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminBlogDelete")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	if err := h.client.DeleteBlogPost(ctx, token, c.Param("id")); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/blog")
}

// AdminPrompts lists the AI prompt templates.
func (h *Handler) AdminPrompts(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminPrompts")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	prompts, err := h.client.ListPromptTemplates(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_prompts", h.pageData(c, "Prompt templates", gin.H{
		"Prompts": prompts,
	}))
}

// AdminPromptCreate creates a prompt template.
func (h *Handler) AdminPromptCreate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminPromptCreate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	prompt := api.PromptTemplate{
		Name:     c.PostForm("name"),
		TaskType: c.PostForm("taskType"),
		Body:     c.PostForm("body"),
		Active:   c.PostForm("active") == "on",
	}

	if _, err := h.client.CreatePromptTemplate(ctx, token, prompt); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/prompts")
}

// AdminPromptUpdate updates a prompt template.
func (h *Handler) AdminPromptUpdate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminPromptUpdate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	prompt := api.PromptTemplate{
		ID:       c.Param("id"),
		Name:     c.PostForm("name"),
		TaskType: c.PostForm("taskType"),
		Body:     c.PostForm("body"),
		Active:   c.PostForm("active") == "on",
	}

	if err := h.client.UpdatePromptTemplate(ctx, token, prompt); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/prompts")
}

// AdminPromptDelete removes a prompt template.
func (h *Handler) AdminPromptDelete(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AdminPromptDelete")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	if err := h.client.DeletePromptTemplate(ctx, token, c.Param("id")); err != nil {
		h.renderUpstreamError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/sidigi/prompts")
}
