package main

import (
	"context"
	"net/http"
)

type contextKey string

const userIDContextKey = contextKey("userID")

// createUserContext stores the authenticated user id on the request. An id
// of 0 marks an anonymous caller.
func (app *application) createUserContext(r *http.Request, userID int) *http.Request {
	ctx := context.WithValue(r.Context(), userIDContextKey, userID)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) int {
	userID, ok := r.Context().Value(userIDContextKey).(int)
	if !ok {
		return 0
	}
	return userID
}
