package profile

import (
	"fmt"
	"strconv"
	"strings"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/validation"
	"internmatch-client/internal/models"
)

// Editable field names, as they appear on the wire.
const (
	FieldName         = "name"
	FieldMajor        = "major"
	FieldYear         = "year"
	FieldSkills       = "skills"
	FieldInterests    = "interests"
	FieldGPA          = "gpa"
	FieldLocationPref = "location_pref"
)

// Draft is an editable copy of a profile. LocationPref is list-valued here
// and comma-joined on the wire.
type Draft struct {
	Name         string   `json:"name"`
	Major        string   `json:"major"`
	Year         string   `json:"year"`
	Skills       string   `json:"skills"`
	Interests    string   `json:"interests"`
	GPA          float64  `json:"gpa"`
	LocationPref []string `json:"location_pref"`
}

// FromProfile clones p into a draft.
func FromProfile(p models.Profile) Draft {
	return Draft{
		Name:         p.Name,
		Major:        p.Major,
		Year:         p.Year,
		Skills:       p.Skills,
		Interests:    p.Interests,
		GPA:          p.GPA,
		LocationPref: validation.SplitList(p.LocationPref),
	}
}

// Update is the wire form of the draft.
func (d Draft) Update() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:         d.Name,
		Major:        d.Major,
		Year:         d.Year,
		Skills:       d.Skills,
		Interests:    d.Interests,
		GPA:          d.GPA,
		LocationPref: validation.JoinList(d.LocationPref),
	}
}

func (d Draft) clone() Draft {
	d.LocationPref = append([]string(nil), d.LocationPref...)
	return d
}

// Set assigns one field from its text form.
func (d *Draft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldMajor:
		d.Major = value
	case FieldYear:
		d.Year = value
	case FieldSkills:
		d.Skills = value
	case FieldInterests:
		d.Interests = value
	case FieldGPA:
		gpa, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || gpa < 0 || gpa > validation.MaxGPA {
			return errors.NewValidationError("gpa must be a number between 0 and 10", FieldGPA)
		}
		d.GPA = gpa
	case FieldLocationPref:
		d.LocationPref = validation.SplitList(value)
	default:
		return errors.NewValidationError(fmt.Sprintf("%q is not an editable field", field), field)
	}
	return nil
}

// diff lists the fields whose wire value differs from p.
func (d Draft) diff(p models.Profile) []string {
	u := d.Update()
	var changed []string
	if u.Name != p.Name {
		changed = append(changed, FieldName)
	}
	if u.Major != p.Major {
		changed = append(changed, FieldMajor)
	}
	if u.Year != p.Year {
		changed = append(changed, FieldYear)
	}
	if u.Skills != p.Skills {
		changed = append(changed, FieldSkills)
	}
	if u.Interests != p.Interests {
		changed = append(changed, FieldInterests)
	}
	if u.GPA != p.GPA {
		changed = append(changed, FieldGPA)
	}
	if u.LocationPref != validation.JoinList(validation.SplitList(p.LocationPref)) {
		changed = append(changed, FieldLocationPref)
	}
	return changed
}
