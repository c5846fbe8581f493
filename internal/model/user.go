package model

import "time"

// Role: уровень доступа пользователя.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// rank задаёт порядок ролей: чем больше, тем шире права.
func (r Role) rank() int {
	switch r {
	case RoleSuperadmin:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// Valid сообщает, входит ли роль в закрытый набор.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperadmin
}

// AtLeast возвращает true, если роль не ниже min.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

// ParseRole разбирает строковое представление роли.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User: пользователь чата. ID выдаёт платформа, поэтому автоинкремент выключен.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	Username  string
	FirstName string
	LastName  string
	Role      Role      `gorm:"type:varchar(16);not null;default:user;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// DisplayName возвращает @username или имя и фамилию.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
