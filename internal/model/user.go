package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

// Profile fields a user may change after signup.
const (
	FieldName     = "name"
	FieldLocation = "location"
	FieldPhone    = "phone"
	FieldCity     = "city"
	FieldStudy    = "study"
)

var ProfileFields = []string{FieldName, FieldLocation, FieldPhone, FieldCity, FieldStudy}

func IsProfileField(name string) bool {
	for _, f := range ProfileFields {
		if f == name {
			return true
		}
	}
	return false
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Role     string             `bson:"role" json:"role"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	City     string             `bson:"city,omitempty" json:"city,omitempty"`
	Study    string             `bson:"study,omitempty" json:"study,omitempty"`
}

func (u *User) HasRole(role string) bool {
	return u != nil && u.Role == role
}
