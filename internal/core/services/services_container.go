package services

import (
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit comes first: both writers snapshot through it.
	container.Audit = NewAuditService(repos.AuditRepo, options...)
	container.Shift = NewShiftService(repos.ShiftRepo, repos.EntryRepo, container.Audit, options...)
	container.Entry = NewEntryService(repos.EntryRepo, repos.ShiftRepo, container.Audit, options...)
	container.Continuity = NewContinuityService(repos.EntryRepo, options...)
	container.Initializer = NewInitializer(repos.HotelRepo, container.Shift, container.Continuity, options...)

	return container
}
