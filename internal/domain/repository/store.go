package repository

// Store bundles the three repositories of one backend so the backend can be
// swapped as a unit (memory, mongo or postgres).
type Store struct {
	Users    UserRepository
	Requests SwapRequestRepository
	Messages MessageRepository
	// Close releases backend resources. It may be nil.
	Close func()
}
