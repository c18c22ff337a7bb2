package services

import (
	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	renderer portssvc.ReceiptRenderer,
	mailer portssvc.ReceiptMailer,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Receipt = NewReceiptService(repos.ReceiptRepo)
	container.Ledger = NewLedgerService(repos.ReceiptRepo)
	container.Auth = NewAuthService(cfg)
	container.Export = NewExportService(container.Receipt, renderer, mailer)

	return container
}
