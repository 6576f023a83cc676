package domain

// SeedUser is a predefined account created at startup if absent.
// Plaintext passwords are exposed on /predefined-users for testing.
type SeedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

var SeedUsers = []SeedUser{
	{Username: "admin", Password: "admin123", Role: RoleAdmin},
	{Username: "user1", Password: "user1123", Role: RoleUser},
	{Username: "user2", Password: "user2123", Role: RoleUser},
	{Username: "alice", Password: "alice123", Role: RoleAdmin},
	{Username: "bob", Password: "bob12345", Role: RoleUser},
}
