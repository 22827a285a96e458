package user

// Role is a user's authorization class. The set is closed: registration
// always produces a customer, and only a manager can change it afterwards.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
)

// Column names of the editable Users fields. Field names end up in SET
// clauses, where they cannot be bound as parameters, so every edit goes
// through this closed set.
const (
	FieldFavoriteItem = "favoriteItems"
	FieldPhone        = "phoneNum"
	FieldPassword     = "password"
	FieldLogin        = "login"
	FieldRole         = "role"
)

type User struct {
	Login        string
	Password     string
	Role         Role
	FavoriteItem string
	Phone        string
}
