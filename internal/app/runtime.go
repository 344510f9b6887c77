package app

import (
	"log"

	"letsstretch/internal/catalog"
	"letsstretch/internal/core/model"
)

// AppName names the settings directory, the login item and the instance lock.
const AppName = "LetsStretch"

// Runtime is everything a front end needs to host a Controller.
type Runtime struct {
	AppName  string
	Settings model.Settings
	Catalog  *catalog.Repository
	Store    SettingsStore
	Login    LoginItems
	Logger   *log.Logger
}
