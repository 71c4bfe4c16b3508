package model

// Child is a client on whose behalf care hours are billed; maps to children.
// Same lifecycle discipline as Employee: soft deactivation only.
type Child struct {
	ChildID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"child_id"`
	Name    string `gorm:"type:varchar(200);not null"                     json:"name"`
	Code    string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"code"`
	Active  bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

func (Child) TableName() string { return "children" }
