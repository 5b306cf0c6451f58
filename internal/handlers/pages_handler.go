package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	h.tracker.Track(c, "page_view", map[string]interface{}{"page": "home"})
	c.HTML(http.StatusOK, "home", h.pageData(c, "BandLy: IELTS essay scoring", gin.H{}))
}

// BlogIndex lists the published articles. The blog ships with the
// application; the back-office CRUD manages upstream drafts that feed
// the next release.
func (h *Handler) BlogIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "blog_index", h.pageData(c, "Blog", gin.H{
		"Posts": blogPosts,
	}))
}

// BlogPost renders a single article by slug.
func (h *Handler) BlogPost(c *gin.Context) {
	slug := c.Param("slug")
	for i := range blogPosts {
		if blogPosts[i].Slug == slug {
			h.tracker.Track(c, "blog_post_viewed", map[string]interface{}{"slug": slug})
			c.HTML(http.StatusOK, "blog_post", h.pageData(c, blogPosts[i].Title, gin.H{
				"Post": &blogPosts[i],
			}))
			return
		}
	}
	h.renderError(c, http.StatusNotFound, "That article doesn't exist.", nil)
}
