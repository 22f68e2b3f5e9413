package domain

type User struct {
	ID        int64
	Login     string
	FirstName string
	LastName  string
	Email     string
}
