package domain

// RoleAdmin is the role required to access the ride administration API.
const RoleAdmin = "admin"

// User represents a registered user. Users act as riders or drivers on
// rides; this service only ever reads them.
type User struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	Email       string
	Role        string
	PhoneNumber string
}
