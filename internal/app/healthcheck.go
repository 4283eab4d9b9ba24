package app

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, app.openapi, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
