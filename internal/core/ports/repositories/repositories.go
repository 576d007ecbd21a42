package repositories

// RepositoryProvider holds instances of all repository facades. It is the
// single value the service layer is wired against.
type RepositoryProvider struct {
	UserRepo    UserRepository
	ProductRepo ProductRepository
	OrderRepo   OrderRepository
}
