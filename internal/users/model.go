package users

// User is a row of the users table.
type User struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:text;not null"`
	Age  int    `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the wire representation of a User. It is mapped by hand so
// that schema changes never leak into the API.
type UserResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func toResponse(u User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Age: u.Age}
}

func toResponses(list []User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toResponse(u))
	}
	return out
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
