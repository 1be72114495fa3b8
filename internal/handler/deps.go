package handler

import (
	"userhub/internal/app/auth"
	"userhub/internal/app/session"
	"userhub/internal/app/storage"
	"userhub/internal/app/user"
	"userhub/internal/configs"
)

// AppDeps bundles the collaborators every handler needs. It is built once in
// main and passed by reference; nothing here is global.
type AppDeps struct {
	Config   *configs.AppConfig
	Users    user.Store
	Auth     *auth.Service
	Sessions *session.Manager
	Storage  storage.Service
}
