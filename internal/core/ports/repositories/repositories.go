package repositories

// RepositoryProvider bundles every repository facade the service layer needs.
type RepositoryProvider struct {
	ProductRepo     ProductRepositoryWithTx
	CompanyRepo     CompanyRepositoryFacade
	ProjectRepo     ProjectRepositoryFacade
	UserRepo        UserRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
