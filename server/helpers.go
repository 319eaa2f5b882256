package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mtetteh/groundwork/database"
	"github.com/mtetteh/groundwork/server/models"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

// ResponsePayload is the uniform response envelope: successes carry
// {message, data}, failures carry {message} or {errors}.
type ResponsePayload struct {
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

// writeServerError logs the real failure & surfaces a fixed message,
// never internal detail.
func writeServerError(rw http.ResponseWriter, err error) {
	logg.Errorf("request failed - internal server error: %v", err)
	writeResponse(rw, ResponsePayload{Errors: []string{"Internal server error"}}, http.StatusInternalServerError)
}

// writeRepoError maps a repository failure onto the envelope:
// validation -> 400, not-found -> 404, anything else -> 500.
func writeRepoError(rw http.ResponseWriter, err error, notFoundMsg string) {
	var validationError *models.ValidationError
	if errors.As(err, &validationError) {
		writeResponse(rw, ResponsePayload{Errors: validationError.Violations}, http.StatusBadRequest)
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		writeResponse(rw, ResponsePayload{Message: notFoundMsg}, http.StatusNotFound)
		return
	}

	writeServerError(rw, err)
}

func removeUnknownFields(args map[string]interface{}, validFields map[string]bool) {
	for key := range args {
		if !validFields[key] {
			delete(args, key)
		}
	}
}

func requestClaims(r *http.Request) DecodedJWT {
	return r.Context().Value(RequestContextKey("decodedJWT")).(DecodedJWT)
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Groundwork server is listening on %v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(server *http.Server, db *database.DB) {
	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Groundwork server shutdown failed:%+s", err)
	}

	if err := db.Disconnect(ctxShutDown); err != nil {
		logg.Errorf("mongo disconnect failed: %v", err)
	}

	logg.Infof("Groundwork server stopped properly")
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
