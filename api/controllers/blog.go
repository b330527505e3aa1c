package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/huydhb/greenfarm-backend/api/responses"
	"github.com/huydhb/greenfarm-backend/internal/blog"
	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
)

type postReader interface {
	Cards() []blog.Card
	Get(id string) (blog.Post, bool)
}

func BlogPosts(posts postReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards := []blog.Card{}
		if posts != nil {
			cards = posts.Cards()
		}
		responses.WriteSuccess(w, cards)
	}
}

func BlogPost(posts postReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := strings.TrimSpace(chi.URLParam(r, "postId"))
		if posts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "post not found"))
			return
		}
		post, ok := posts.Get(postID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "post not found").
				WithDetails(map[string]any{"post_id": postID}))
			return
		}
		responses.WriteSuccess(w, blog.NewDetail(post))
	}
}
