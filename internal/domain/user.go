package domain

// User — покупатель витрины. Пароль хранится только в виде bcrypt-хеша.
type User struct {
	ID           int64
	UserName     string
	FirstName    string
	LastName     string
	PasswordHash string
}
