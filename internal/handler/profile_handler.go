/*
Package handler provides the HTTP handlers and routing setup for the userhub server.

This file implements the protected pages: the home page, profile viewing and
editing, and the profile-picture upload embedded in the profile form.
*/
package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"userhub/internal/app/session"
	"userhub/internal/app/user"
	"userhub/internal/pkg/errs"
	"userhub/internal/pkg/logx"
	"userhub/internal/pkg/req"
)

// allowedUploadExts lists the accepted profile-picture file extensions.
var allowedUploadExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// currentUser loads the account bound to the request's session. A dangling
// session (account deleted underneath it) is terminated and the caller should
// redirect to login.
func currentUser(deps *AppDeps, r *http.Request) (user.User, bool) {
	userID, ok := session.UserIDFromContext(r)
	if !ok {
		return user.User{}, false
	}

	u, err := deps.Users.GetByID(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			logx.Error(err, "failed to load session user", "user_id", userID)
		}
		deps.Sessions.Terminate(session.TokenFromRequest(r))
		return user.User{}, false
	}

	return u, true
}

// HandleIndex renders the home page for the signed-in user.
func HandleIndex(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(deps, r)
		if !ok {
			clearSessionCookie(w, deps)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		renderPage(w, http.StatusOK, "index.html", pageData{User: &u})
	}
}

// HandleProfilePage renders the profile form prefilled with the current account.
func HandleProfilePage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(deps, r)
		if !ok {
			clearSessionCookie(w, deps)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data := pageData{User: &u}
		if r.URL.Query().Get("saved") == "1" {
			data.Info = "Profile updated."
		}
		renderPage(w, http.StatusOK, "profile.html", data)
	}
}

// HandleUpdateProfile applies a profile edit: username/email change plus an
// optional picture upload from the multipart field "profile_picture".
//
// A missing file or a disallowed extension silently skips the upload and still
// applies the field changes, mirroring the forgiving behavior users expect from
// the form. The field update and the new avatar key commit atomically.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(deps, r)
		if !ok {
			clearSessionCookie(w, deps)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if customErr := req.BindMultipart(w, r); customErr != nil {
			renderPage(w, customErr.Status, "profile.html", pageData{
				User:  &u,
				Error: customErr.Message,
			})
			return
		}

		params := user.UpdateProfileParams{
			ID:       u.ID,
			Username: req.FormValue(r, "username"),
			Email:    req.FormValue(r, "email"),
		}
		if params.Username == "" || params.Email == "" {
			invalidErr := errs.NewError(errs.ErrInvalidParams)
			renderPage(w, invalidErr.Status, "profile.html", pageData{
				User:  &u,
				Error: invalidErr.Message,
			})
			return
		}

		newKey, customErr := saveAvatar(deps, r, u)
		if customErr != nil {
			renderPage(w, customErr.Status, "profile.html", pageData{
				User:  &u,
				Error: customErr.Message,
			})
			return
		}
		if newKey != "" {
			params.AvatarFile = &newKey
		}

		if _, err := deps.Users.UpdateProfile(r.Context(), params); err != nil {
			customErr := registrationError(err, deps.Config.PasswordMinLength)
			renderPage(w, customErr.Status, "profile.html", pageData{
				User:  &u,
				Error: customErr.Message,
			})
			return
		}

		http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
	}
}

// saveAvatar stores an uploaded profile picture and returns its storage key.
// It returns ("", nil) when there is nothing to store: no file was submitted or
// its extension is not allowed. The previous picture is removed before the new
// one is written when the key changes.
func saveAvatar(deps *AppDeps, r *http.Request, u user.User) (string, *errs.CustomError) {
	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		logx.Warn("profile: unreadable upload, skipping", "user_id", u.ID, "error", err)
		return "", nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedUploadExts[ext]; !ok {
		logx.Debug("profile: disallowed upload extension, skipping", "user_id", u.ID, "ext", ext)
		return "", nil
	}

	key := fmt.Sprintf("user_%s_avatar%s", u.ID, ext)

	if u.AvatarFile != "" && u.AvatarFile != key {
		if err := deps.Storage.Delete(r.Context(), u.AvatarFile); err != nil {
			logx.Error(err, "profile: failed to remove old picture", "user_id", u.ID, "key", u.AvatarFile)
		}
	}

	if err := storeUpload(deps, r, key, header, file); err != nil {
		logx.Error(err, "profile: failed to store picture", "user_id", u.ID, "key", key)
		return "", errs.NewError(errs.ErrFileStorageFailed)
	}

	return key, nil
}

func storeUpload(deps *AppDeps, r *http.Request, key string, header *multipart.FileHeader, file multipart.File) error {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return deps.Storage.Save(r.Context(), key, contentType, header.Size, file)
}
