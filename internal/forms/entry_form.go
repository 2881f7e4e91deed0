package forms

import (
	"strings"
	"time"
)

// EntryForm is the input for creating an entry. Start and Stop are
// free-form date/time strings; a blank Start means "now".
type EntryForm struct {
	Start       string `form:"start" json:"start"`
	Stop        string `form:"stop" json:"stop"`
	Project     Choice `form:"project" json:"project"`
	Description string `form:"description" json:"description" validate:"required,max=200"`

	start *time.Time
	stop  *time.Time
}

func (f *EntryForm) clean(errs Errors) {
	f.start, f.stop = nil, nil
	if f.Project.Blank() {
		errs.Add("project", MsgRequired)
	} else if _, ok := f.Project.ID(); !ok {
		errs.Add("project", MsgInvalidChoice)
	}
	if s := strings.TrimSpace(f.Start); s != "" {
		if t, ok := parseTime(s); ok {
			f.start = &t
		} else {
			errs.Add("start", MsgInvalidTime)
		}
	}
	if s := strings.TrimSpace(f.Stop); s != "" {
		if t, ok := parseTime(s); ok {
			f.stop = &t
		} else {
			errs.Add("stop", MsgInvalidTime)
		}
	}
}

// ProjectID is the chosen project, zero when blank or malformed.
func (f *EntryForm) ProjectID() uint {
	id, _ := f.Project.ID()
	return id
}

// StartTime is the parsed start, nil when left blank. Only meaningful after Validate.
func (f *EntryForm) StartTime() *time.Time { return f.start }

// StopTime is the parsed stop, nil when left blank. Only meaningful after Validate.
func (f *EntryForm) StopTime() *time.Time { return f.stop }
