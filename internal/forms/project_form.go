package forms

// ProjectForm is the input for creating or updating a project. A blank or
// zero Client leaves the project unassigned.
type ProjectForm struct {
	Client Choice `form:"client" json:"client"`
	Name   string `form:"name" json:"name" validate:"required,max=200"`
}

func (f *ProjectForm) clean(errs Errors) {
	if f.Client.Blank() {
		return
	}
	if _, ok := f.Client.ID(); !ok {
		errs.Add("client", MsgInvalidChoice)
	}
}

// ClientID returns the referenced client, or nil when none was chosen.
func (f ProjectForm) ClientID() *uint {
	id, ok := f.Client.ID()
	if !ok {
		return nil
	}
	return &id
}
