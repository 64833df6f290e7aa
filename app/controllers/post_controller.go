package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendCachedJSON(w, r, models.NewPostSummaries(posts))
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendCachedJSON(w, r, models.NewPostDetail(post))
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		sendError(w, r, err)
		return
	}

	hlog.FromRequest(r).Debug().Str("post_id", post.ID).Msg("post created")
	sendJSON(w, r, http.StatusCreated, models.NewPostDetail(post))
}
