package forms

// ClientForm is the input for creating or updating a client.
type ClientForm struct {
	Name string `form:"name" json:"name" validate:"required,max=200"`
}
