package app

import (
	"log/slog"
	"net/http"
)

type sessionKey string

// SessionKeyUserId is written by the authentication service sharing the
// session store. Guests have no user id.
const SessionKeyUserId = sessionKey("userID")

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const loggerContextKey = contextKey("logger")

func (app *Application) contextGetUserId(r *http.Request) *int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		return nil
	}

	return &userId
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
