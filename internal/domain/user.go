package domain

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Surname  string `json:"surname" db:"surname"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

func (User) TableName() string {
	return "users"
}
