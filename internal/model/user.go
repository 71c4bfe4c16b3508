package model

// User is an operator account; maps to users.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	DisplayName  string `gorm:"type:varchar(200);not null;default:''"          json:"display_name"`
	BaseModel
}

func (User) TableName() string { return "users" }
