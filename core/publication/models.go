package publication

import (
	"errors"
	"time"

	"github.com/edunova/colegio/core"
)

// Audience says who a publication is addressed to.
type Audience string

const (
	// AudienceAll reaches every account in the school.
	AudienceAll Audience = "all"
	// AudienceStudents reaches the rosters of the target courses only.
	AudienceStudents Audience = "students"
)

func (a Audience) Valid() bool { return a == AudienceAll || a == AudienceStudents }

// Author personas. Students cannot publish.
const (
	AuthorTypeAdministrative = "administrative"
	AuthorTypeTeacher        = "teacher"
)

type Publication struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorType string    `json:"author_type"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	Audience   Audience  `json:"audience"`
	// CourseIDs lists the target courses; meaningful only when the
	// audience is AudienceStudents.
	CourseIDs []string `json:"course_ids,omitempty"`
}

// SchoolWide reports whether the publication targets the whole school.
func (p Publication) SchoolWide() bool { return p.Audience != AudienceStudents }

// Targets reports whether the publication is addressed to the given course.
func (p Publication) Targets(courseID string) bool {
	for _, id := range p.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// NewPublication contains information needed to create a new Publication.
type NewPublication struct {
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Audience  Audience `json:"audience" validate:"required,audience"`
	CourseIDs []string `json:"course_ids"`
}

func (np *NewPublication) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Content = core.CleanString(np.Content)
	if err := core.Validate.Struct(np); err != nil {
		return err
	}

	switch np.Audience {
	case AudienceStudents:
		if len(np.CourseIDs) == 0 {
			return core.NewValidationError(
				errors.New("no target courses"),
				core.FieldError{Field: "course_ids", Error: "select at least one course"},
			)
		}
	default:
		np.CourseIDs = nil
	}
	return nil
}
