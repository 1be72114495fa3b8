package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postMultipart submits the profile form with the given fields and an optional
// file part named "profile_picture".
func postMultipart(t *testing.T, router http.Handler, cookie *http.Cookie, fields map[string]string, filename string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("profile_picture", filename)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rec := postForm(t, router, "/register", registerForm(), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	return cookie
}

func TestProfileUpdateFields(t *testing.T) {
	deps := newTestDeps(t)
	router := Router(deps)
	cookie := registerAndLogin(t, router)

	rec := postMultipart(t, router, cookie, map[string]string{
		"username": "alice_b",
		"email":    "alice@new.example",
	}, "", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile?saved=1", rec.Header().Get("Location"))

	rec = get(t, router, "/profile?saved=1", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice_b")
	assert.Contains(t, rec.Body.String(), "alice@new.example")
	assert.Contains(t, rec.Body.String(), "Profile updated.")
}

func TestProfilePictureUploadAndServe(t *testing.T) {
	deps := newTestDeps(t)
	router := Router(deps)
	cookie := registerAndLogin(t, router)

	picture := []byte("not really a png, but the server does not care")
	rec := postMultipart(t, router, cookie, map[string]string{
		"username": "alice",
		"email":    "a@x.com",
	}, "me.png", picture)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// The profile page now references the uploaded picture.
	rec = get(t, router, "/profile", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/uploads/user_")

	// The picture is served back, keyed by user id and original extension.
	body := rec.Body.String()
	start := strings.Index(body, "/uploads/")
	require.GreaterOrEqual(t, start, 0)
	end := start + strings.IndexByte(body[start:], '"')
	uploadPath := body[start:end]

	rec = get(t, router, uploadPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, picture, got)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestProfileUploadDisallowedExtensionIsSkipped(t *testing.T) {
	deps := newTestDeps(t)
	router := Router(deps)
	cookie := registerAndLogin(t, router)

	rec := postMultipart(t, router, cookie, map[string]string{
		"username": "alice",
		"email":    "a@x.com",
	}, "evil.exe", []byte("MZ..."))

	// The upload is silently skipped; the field update still succeeds.
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(t, router, "/profile", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/uploads/")
}

func TestProfileUpdateConflictShowsFieldMessage(t *testing.T) {
	deps := newTestDeps(t)
	router := Router(deps)
	cookie := registerAndLogin(t, router)

	// A second account whose username alice then tries to take.
	second := url.Values{
		"username":         {"bob"},
		"email":            {"b@x.com"},
		"password":         {"Secret123"},
		"confirm_password": {"Secret123"},
	}
	require.Equal(t, http.StatusSeeOther, postForm(t, router, "/register", second, nil).Code)

	rec := postMultipart(t, router, cookie, map[string]string{
		"username": "bob",
		"email":    "a@x.com",
	}, "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username is already taken.")
}

func TestServeUploadMissingFile(t *testing.T) {
	deps := newTestDeps(t)
	router := Router(deps)

	rec := get(t, router, "/uploads/nope.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
