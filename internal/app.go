package internal

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// AppInternal aggregates the wired controllers for the CLI entrypoint.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context with all controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
