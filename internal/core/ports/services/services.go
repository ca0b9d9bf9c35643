package services

// ServiceContainer bundles every service facade the handlers need.
type ServiceContainer struct {
	ProductSvc     ProductSvcFacade
	CompanySvc     CompanySvcFacade
	ProjectSvc     ProjectSvcFacade
	UserSvc        UserSvcFacade
	TransactionSvc TransactionSvcFacade
	AuthSvc        AuthSvcFacade
}
