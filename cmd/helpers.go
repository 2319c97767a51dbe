package main

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.errorLog.Output(2, err.Error()+"\n"+string(debug.Stack()))
	app.clientError(w, http.StatusInternalServerError, err.Error())
}

func (app *application) clientError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Status: "error", Message: message})
}
