package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	// user service
	router.HandlerFunc(http.MethodPost, "/v1/users/signup", app.signupUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/signin", app.signinUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/follow/:id", app.requireAuth(app.followUserHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users/like/:id", app.requireAuth(app.likeBlogHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users/save/:id", app.requireAuth(app.saveBlogHandler))
	router.HandlerFunc(http.MethodPut, "/v1/users/:id", app.requireAuth(app.updateUserHandler))

	// httprouter rejects a static path next to a wildcard in the same
	// segment, so the GET and DELETE user subtrees share one wildcard
	// entry per depth and dispatch on the segment value.
	router.HandlerFunc(http.MethodGet, "/v1/users/:id", app.getUserDispatch)
	router.HandlerFunc(http.MethodGet, "/v1/users/:id/:rel", app.getUserSubDispatch)
	router.HandlerFunc(http.MethodDelete, "/v1/users/:id", app.requireAuth(app.deleteUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:id/:rel", app.deleteUserSubDispatch)

	// blog service
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireAuth(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id", app.getBlogDispatch)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id/:rel", app.getBlogSubDispatch)
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:id", app.requireAuth(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id", app.requireAuth(app.deleteBlogHandler))

	// comment service
	router.HandlerFunc(http.MethodPost, "/v1/comments", app.requireAuth(app.createCommentHandler))
	router.HandlerFunc(http.MethodPut, "/v1/comments/:id", app.requireAuth(app.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/comments/:id", app.requireAuth(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/comments/blog/:id", app.getCommentsByBlogHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}

// GET /v1/users/followers | /v1/users/following | /v1/users/saved | /v1/users/:id
func (app *application) getUserDispatch(w http.ResponseWriter, r *http.Request) {
	switch app.readStringSegment(r, "id") {
	case "followers":
		app.requireAuth(app.listFollowersHandler)(w, r)
	case "following":
		app.requireAuth(app.listFollowingHandler)(w, r)
	case "saved":
		app.requireAuth(app.getSavedBlogsHandler)(w, r)
	default:
		app.requireAuth(app.getUserHandler)(w, r)
	}
}

// GET /v1/users/followers/:id | /v1/users/like/:id | /v1/users/save/:id
func (app *application) getUserSubDispatch(w http.ResponseWriter, r *http.Request) {
	switch app.readStringSegment(r, "id") {
	case "followers":
		app.followerCountHandler(w, r)
	case "like":
		app.requireAuth(app.blogLikedHandler)(w, r)
	case "save":
		app.requireAuth(app.blogSavedHandler)(w, r)
	default:
		app.notFoundErrorResponse(w, r)
	}
}

// DELETE /v1/users/unfollow/:id | /v1/users/unlike/:id | /v1/users/unsave/:id
func (app *application) deleteUserSubDispatch(w http.ResponseWriter, r *http.Request) {
	switch app.readStringSegment(r, "id") {
	case "unfollow":
		app.requireAuth(app.unfollowUserHandler)(w, r)
	case "unlike":
		app.requireAuth(app.unlikeBlogHandler)(w, r)
	case "unsave":
		app.requireAuth(app.unsaveBlogHandler)(w, r)
	default:
		app.notFoundErrorResponse(w, r)
	}
}

// GET /v1/blogs/bulk | /v1/blogs/search | /v1/blogs/author | /v1/blogs/:id
func (app *application) getBlogDispatch(w http.ResponseWriter, r *http.Request) {
	switch app.readStringSegment(r, "id") {
	case "bulk":
		app.getAllBlogsHandler(w, r)
	case "search":
		app.searchBlogsHandler(w, r)
	case "author":
		app.requireAuth(app.getOwnBlogsHandler)(w, r)
	default:
		app.getBlogHandler(w, r)
	}
}

// GET /v1/blogs/author/:id | /v1/blogs/likes/:id | /v1/blogs/saved/:id
func (app *application) getBlogSubDispatch(w http.ResponseWriter, r *http.Request) {
	switch app.readStringSegment(r, "id") {
	case "author":
		app.getBlogsByAuthorHandler(w, r)
	case "likes":
		app.likeCountHandler(w, r)
	case "saved":
		app.saveCountHandler(w, r)
	default:
		app.notFoundErrorResponse(w, r)
	}
}
