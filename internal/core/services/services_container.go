package services

import (
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		ProductSvc:     NewProductService(repos.ProductRepo),
		CompanySvc:     NewCompanyService(repos.CompanyRepo),
		ProjectSvc:     NewProjectService(repos.ProjectRepo, repos.CompanyRepo),
		UserSvc:        NewUserService(repos.UserRepo, repos.CompanyRepo),
		TransactionSvc: NewTransactionService(repos.TransactionRepo, repos.ProjectRepo, repos.UserRepo, cfg.AdminPinRequired),
		AuthSvc:        NewAuthService(repos.UserRepo, cfg),
	}
}
