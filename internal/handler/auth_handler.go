/*
Package handler provides the HTTP handlers and routing setup for the userhub server.

This file implements the authentication surface: login, registration, and logout.
*/
package handler

import (
	"errors"
	"net/http"

	"userhub/internal/app/auth"
	"userhub/internal/app/session"
	"userhub/internal/app/user"
	"userhub/internal/pkg/errs"
	"userhub/internal/pkg/logx"
	"userhub/internal/pkg/req"
)

// setSessionCookie writes the session token cookie. HttpOnly keeps it away from
// scripts; SameSite=Lax still allows the top-level redirects the app relies on.
func setSessionCookie(w http.ResponseWriter, deps *AppDeps, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(deps.Config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   deps.Config.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session token cookie.
func clearSessionCookie(w http.ResponseWriter, deps *AppDeps) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   deps.Config.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleLoginPage renders the login form. Authenticated users are sent home.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		renderPage(w, http.StatusOK, "login.html", pageData{Form: map[string]string{}})
	}
}

// HandleLogin verifies the submitted credentials and establishes a session.
// On success the browser is redirected home with a fresh session cookie; on
// failure the form is re-rendered with the single generic invalid-credentials
// message and no session is set.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if customErr := req.BindForm(w, r); customErr != nil {
			renderPage(w, customErr.Status, "login.html", pageData{
				Error: customErr.Message,
				Form:  map[string]string{},
			})
			return
		}

		identifier := req.FormValue(r, "identifier")
		password := r.FormValue("password")

		u, err := deps.Auth.Authenticate(r.Context(), identifier, password)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				logx.Error(err, "login: authentication lookup failed")
			}

			// One message for unknown identifier and wrong password alike.
			invalidErr := errs.NewError(errs.ErrInvalidCredentials)
			renderPage(w, invalidErr.Status, "login.html", pageData{
				Error: invalidErr.Message,
				Form:  map[string]string{"identifier": identifier},
			})
			return
		}

		token, err := deps.Sessions.Establish(u.ID, session.TokenFromRequest(r))
		if err != nil {
			logx.Error(err, "login: failed to establish session", "user_id", u.ID)
			unknownErr := errs.NewError(errs.ErrUnknown)
			renderPage(w, unknownErr.Status, "login.html", pageData{
				Error: unknownErr.Message,
				Form:  map[string]string{"identifier": identifier},
			})
			return
		}

		logx.Info("user logged in", "user_id", u.ID)
		setSessionCookie(w, deps, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleRegisterPage renders the registration form. Authenticated users are sent home.
func HandleRegisterPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		renderPage(w, http.StatusOK, "register.html", pageData{Form: map[string]string{}})
	}
}

// HandleRegister processes the registration form. Validation failures and
// uniqueness conflicts re-render the form with a field-identifying message;
// the failed insert never leaves a partial record. On success a session is
// auto-established when the configuration says so, otherwise the new user is
// sent to the login page.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if customErr := req.BindForm(w, r); customErr != nil {
			renderPage(w, customErr.Status, "register.html", pageData{
				Error: customErr.Message,
				Form:  map[string]string{},
			})
			return
		}

		params := auth.RegisterParams{
			Username:        req.FormValue(r, "username"),
			Email:           req.FormValue(r, "email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		u, err := deps.Auth.Register(r.Context(), params)
		if err != nil {
			customErr := registrationError(err, deps.Config.PasswordMinLength)
			renderPage(w, customErr.Status, "register.html", pageData{
				Error: customErr.Message,
				Form: map[string]string{
					"username": params.Username,
					"email":    params.Email,
				},
			})
			return
		}

		logx.Info("user registered", "user_id", u.ID, "username", u.Username)

		if !deps.Config.AutoLoginOnRegister {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		token, err := deps.Sessions.Establish(u.ID, session.TokenFromRequest(r))
		if err != nil {
			logx.Error(err, "register: failed to establish session", "user_id", u.ID)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		setSessionCookie(w, deps, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleLogout terminates the current session, clears the cookie, and redirects
// to the login page. Logging out without a valid session is harmless.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := session.TokenFromRequest(r); token != "" {
			deps.Sessions.Terminate(token)
		}

		clearSessionCookie(w, deps)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// registrationError maps service and store errors onto user-facing CustomErrors.
// Uniqueness conflicts identify the colliding field: both values are probeable
// through the form anyway, so hiding the field would only hurt usability.
func registrationError(err error, passwordMinLength int) *errs.CustomError {
	switch {
	case errors.Is(err, auth.ErrInvalidUsername):
		return errs.NewError(errs.ErrInvalidUsername)
	case errors.Is(err, auth.ErrInvalidEmail):
		return errs.NewError(errs.ErrInvalidEmail)
	case errors.Is(err, auth.ErrWeakPassword):
		return errs.NewError(errs.ErrWeakPassword, passwordMinLength)
	case errors.Is(err, auth.ErrPasswordMismatch):
		return errs.NewError(errs.ErrPasswordMismatch)
	case errors.Is(err, user.ErrUsernameTaken):
		return errs.NewError(errs.ErrUsernameTaken)
	case errors.Is(err, user.ErrEmailTaken):
		return errs.NewError(errs.ErrEmailTaken)
	default:
		logx.Error(err, "registration failed with unexpected error")
		return errs.NewError(errs.ErrUnknown)
	}
}
