package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndesc/ndesc-api/models"
	"github.com/ndesc/ndesc-api/store"
	"github.com/ndesc/ndesc-api/utils"
)

// PostController manages CRUD operations for blog posts.
type PostController struct {
	posts *store.PostStore
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *store.PostStore) *PostController {
	return &PostController{posts: posts}
}

func failPost(ctx *gin.Context, err error, fallbackTag string) {
	if errors.Is(err, store.ErrNotFound) {
		utils.Message(ctx, http.StatusNotFound, msgPostNotFound)
		return
	}
	utils.ServerError(ctx, trackingTag(err, fallbackTag))
}

// List returns every post with its slug attached.
func (p *PostController) List(ctx *gin.Context) {
	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		failPost(ctx, err, tagListRoute)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "posts": posts})
}

// Create stores a new post under a slug derived from its title. On a slug
// collision a fresh suffix is drawn, a few times; after that the write
// proceeds and overwrites, which the random suffix makes vanishingly rare.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Title      string `json:"title"`
		Author     string `json:"author"`
		Datetime   string `json:"datetime"`
		FeatureImg string `json:"feature_img"`
		Content    string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.Title == "" || req.Author == "" || req.Datetime == "" || req.FeatureImg == "" || req.Content == "" {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	var slug string
	for attempt := 0; attempt < 3; attempt++ {
		slug = utils.Slugify(req.Title)
		taken, err := p.posts.Exists(ctx.Request.Context(), slug)
		if err != nil {
			failPost(ctx, err, tagCreateRoute)
			return
		}
		if !taken {
			break
		}
	}

	post := models.Post{
		Title:      utils.Sanitize(strings.TrimSpace(req.Title)),
		Author:     req.Author,
		Datetime:   req.Datetime,
		FeatureImg: req.FeatureImg,
		Content:    utils.Sanitize(req.Content),
	}
	if err := p.posts.Create(ctx.Request.Context(), slug, post); err != nil {
		failPost(ctx, err, tagCreateRoute)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": msgPostCreated, "slug": slug})
}

// Get fetches one post by slug.
func (p *PostController) Get(ctx *gin.Context) {
	post, err := p.posts.Fetch(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		failPost(ctx, err, tagFetchRoute)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "post": post})
}

// Edit merges the supplied fields into an existing post. There is no
// ownership check; anyone who knows the slug can edit.
func (p *PostController) Edit(ctx *gin.Context) {
	var req models.PostPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.Title != nil {
		t := utils.Sanitize(strings.TrimSpace(*req.Title))
		req.Title = &t
	}
	if req.Content != nil {
		c := utils.Sanitize(*req.Content)
		req.Content = &c
	}

	if err := p.posts.Edit(ctx.Request.Context(), ctx.Param("slug"), req); err != nil {
		failPost(ctx, err, tagEditPostRoute)
		return
	}
	utils.Message(ctx, http.StatusOK, msgPostEdited)
}

// Delete removes a post by slug.
func (p *PostController) Delete(ctx *gin.Context) {
	if err := p.posts.Delete(ctx.Request.Context(), ctx.Param("slug")); err != nil {
		failPost(ctx, err, tagDeletePostRoute)
		return
	}
	utils.Message(ctx, http.StatusOK, msgPostDeleted)
}
