package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	postService    *services.PostService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, postService *services.PostService) *CommentController {
	return &CommentController{
		commentService: commentService,
		postService:    postService,
	}
}

// Create handles adding a comment to a post. The body is validated first,
// then the post is resolved, and only then is the comment written.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var in models.CreateCommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendError(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		sendError(w, r, err)
		return
	}

	if err := cc.postService.Exists(r.Context(), postID); err != nil {
		sendError(w, r, err)
		return
	}

	comment, err := cc.commentService.AddComment(r.Context(), postID, in)
	if err != nil {
		sendError(w, r, err)
		return
	}

	hlog.FromRequest(r).Debug().Str("post_id", postID).Str("comment_id", comment.ID).Msg("comment created")
	sendJSON(w, r, http.StatusCreated, models.NewCreatedComment(comment))
}
