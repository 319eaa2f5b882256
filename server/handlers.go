package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mtetteh/groundwork/server/auth"
	"github.com/mtetteh/groundwork/server/models"
	"github.com/pkg/errors"
)

const contactNotFoundMsg = "Contact message not found"

func (s *Server) createContact(rw http.ResponseWriter, r *http.Request) {
	contact := models.Contact{}

	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"invalid request body"}}, http.StatusBadRequest)
		return
	}

	// timestamps & ids are never accepted from the caller
	contact.BaseModel = models.BaseModel{}

	if err := s.contacts.Create(r.Context(), &contact); err != nil {
		writeRepoError(rw, err, contactNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Contact message sent successfully",
		Data:    contact,
	}, http.StatusCreated)
}

func (s *Server) listContacts(rw http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.All(r.Context())
	if err != nil {
		writeServerError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Contact messages retrieved successfully",
		Data:    contacts,
	}, http.StatusOK)
}

func (s *Server) findContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := s.contacts.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(rw, err, contactNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Contact message retrieved successfully",
		Data:    contact,
	}, http.StatusOK)
}

func (s *Server) deleteContact(rw http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(rw, err, contactNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{Message: "Contact message deleted successfully"}, http.StatusOK)
}

func (s *Server) updateContactStatus(rw http.ResponseWriter, r *http.Request) {
	body := struct {
		Status string `json:"status"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"invalid request body"}}, http.StatusBadRequest)
		return
	}

	if !models.ContactStatusNameMap[body.Status] {
		writeResponse(rw, ResponsePayload{
			Errors: []string{"Status must be one of: New, In Progress, Replied, Closed"},
		}, http.StatusBadRequest)
		return
	}

	contact, err := s.contacts.Update(r.Context(), mux.Vars(r)["id"], map[string]interface{}{"status": body.Status})
	if err != nil {
		writeRepoError(rw, err, contactNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Contact message updated successfully",
		Data:    contact,
	}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Auth handlers
// --------------------------------------------------------------------------------//

func (s *Server) signUp(rw http.ResponseWriter, r *http.Request) {
	user := models.User{}

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"invalid request body"}}, http.StatusBadRequest)
		return
	}
	user.BaseModel = models.BaseModel{}

	exists, err := s.users.AtLeastOneUserExists(r.Context())
	if err != nil {
		writeServerError(rw, err)
		return
	}

	// The very first account is open; after that only admins may
	// create accounts.
	if exists {
		decodedJWT := requestClaims(r)
		if decodedJWT.ErrorMsg != "" {
			writeResponse(rw, ResponsePayload{Errors: []string{decodedJWT.ErrorMsg}}, http.StatusUnauthorized)
			return
		}
		if decodedJWT.Claims.Role != models.ADMIN_USER_ROLE {
			writeResponse(rw, ResponsePayload{Errors: []string{"action is forbidden"}}, http.StatusForbidden)
			return
		}
	} else {
		user.Role = models.ADMIN_USER_ROLE
	}

	if _, err := s.users.FindByEmail(r.Context(), user.Email); err == nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"Email is already registered"}}, http.StatusBadRequest)
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		writeServerError(rw, err)
		return
	}

	if err := s.users.Create(r.Context(), &user); err != nil {
		writeRepoError(rw, err, "User not found")
		return
	}

	user.Password = ""
	writeResponse(rw, ResponsePayload{Message: "Account created successfully", Data: user}, http.StatusCreated)
}

func (s *Server) signIn(rw http.ResponseWriter, r *http.Request) {
	data := make(map[string]string)
	json.NewDecoder(r.Body).Decode(&data)

	user, err := s.users.FindByEmail(r.Context(), data["email"])
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		writeServerError(rw, err)
		return
	}

	if err != nil || !auth.CheckPasswordHash(data["password"], user.Password) {
		writeResponse(rw, ResponsePayload{Errors: []string{"email/password is invalid"}}, http.StatusUnauthorized)
		return
	}

	claims := auth.NewAPITokenClaims(user.ID.Hex(), user.Role, s.tokenLifetime)
	token, err := auth.EncodeJWT(claims, s.jwtSecret)
	if err != nil {
		writeServerError(rw, err)
		return
	}

	user.Password = ""
	writeResponse(rw, ResponsePayload{
		Message: "Signed in successfully",
		Data:    map[string]interface{}{"token": token, "user": user},
	}, http.StatusOK)
}

func (s *Server) me(rw http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r).Claims

	data := map[string]interface{}{"claims": claims}

	// CLI-minted tokens carry subjects with no backing account; the
	// claims alone are still a valid profile for those.
	if user, err := s.users.FindByID(r.Context(), claims.Subject); err == nil {
		user.Password = ""
		data["user"] = user
	}

	writeResponse(rw, ResponsePayload{
		Message: fmt.Sprintf("Profile retrieved for %v", claims.Subject),
		Data:    data,
	}, http.StatusOK)
}
