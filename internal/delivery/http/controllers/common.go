package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/delivery/http/middleware"
	"prodroster/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ProfileRequest is the profile block supplied when registering or redeeming.
type ProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (p ProfileRequest) validate(requireEmail bool) []string {
	var errs []string
	email := strings.TrimSpace(p.Email)
	switch {
	case email == "" && requireEmail:
		errs = append(errs, "profile.email is required")
	case email != "" && !emailRegexp.MatchString(email):
		errs = append(errs, "invalid email format")
	}
	return errs
}

func (p ProfileRequest) toDomain() domain.Profile {
	return domain.Profile{Email: p.Email, FirstName: p.FirstName, LastName: p.LastName}
}

// callerID returns the authenticated account id, writing a 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}

// memberRole parses the {role} path value, writing a 400 when it is not STAFF or ATHLETE.
func memberRole(w http.ResponseWriter, r *http.Request) (domain.Role, bool) {
	role, ok := domain.ParseRole(r.PathValue("role"))
	if !ok || !role.IsMemberRole() {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, domain.ErrInvalidRole.Reason)
		return "", false
	}
	return role, true
}
