package course

import (
	"time"

	"github.com/edunova/colegio/core"
)

// DateLayout is the wire format for attendance dates.
const DateLayout = "2006-01-02"

// GradePeriods is the number of grading periods in a school year (bimesters).
const GradePeriods = 4

// Grade bounds on the vigesimal scale.
const (
	GradeMin = 0
	GradeMax = 20
)

// AttendanceStatus is the per-student outcome recorded for a school day.
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "present"
	StatusAbsent    AttendanceStatus = "absent"
	StatusJustified AttendanceStatus = "justified"
	StatusLate      AttendanceStatus = "late"
)

var AllStatuses = []AttendanceStatus{StatusPresent, StatusAbsent, StatusJustified, StatusLate}

func (s AttendanceStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type (
	// Student is an enrollment record scoped to one course. The optional
	// UserID links the record to a login account so that the same person
	// can be recognized across courses.
	Student struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		DNI    string `json:"dni"`
		Email  string `json:"email,omitempty"`
		UserID string `json:"user_id,omitempty"`
	}

	Course struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Level       string    `json:"level"` // grade, eg. "5to Primaria"
		Section     string    `json:"section"`
		TeacherID   string    `json:"teacher_id"`
		TeacherName string    `json:"teacher_name,omitempty"`
		Students    []Student `json:"students"`
	}

	// AttendanceEntry is one student's status within a DayAttendance sheet.
	AttendanceEntry struct {
		StudentID string           `json:"student_id"`
		Status    AttendanceStatus `json:"status"`
	}

	// DayAttendance is the attendance sheet of one course on one date.
	// At most one sheet exists per (date, course) pair.
	DayAttendance struct {
		ID       string            `json:"id"`
		Date     string            `json:"date"` // DateLayout
		CourseID string            `json:"course_id"`
		Entries  []AttendanceEntry `json:"entries"`
	}

	// GradeRecord holds one student's period grades. Each slot is either
	// nil (not yet graded) or a value on the vigesimal scale.
	GradeRecord struct {
		StudentID string     `json:"student_id"`
		Grades    []*float64 `json:"grades"`
	}

	// CourseGrades is the grade sheet of one course, at most one per course.
	CourseGrades struct {
		ID       string        `json:"id"`
		CourseID string        `json:"course_id"`
		Records  []GradeRecord `json:"records"`
	}
)

// FindStudent returns the enrollment record with the given id.
func (c Course) FindStudent(studentID string) (Student, bool) {
	for _, std := range c.Students {
		if std.ID == studentID {
			return std, true
		}
	}
	return Student{}, false
}

// HasUser reports whether the given login account is enrolled in the course.
func (c Course) HasUser(userID string) bool {
	if userID == "" {
		return false
	}
	for _, std := range c.Students {
		if std.UserID == userID {
			return true
		}
	}
	return false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string `json:"name" validate:"required"`
	Level       string `json:"level" validate:"required"`
	Section     string `json:"section" validate:"required"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Level = core.CleanString(nc.Level)
	nc.Section = core.CleanString(nc.Section)
	nc.TeacherName = core.CleanString(nc.TeacherName)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Section     string `json:"section"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if level := core.CleanString(uc.Level); level != "" {
		uc.Level = level
	} else {
		uc.Level = orig.Level
	}
	if section := core.CleanString(uc.Section); section != "" {
		uc.Section = section
	} else {
		uc.Section = orig.Section
	}
	if uc.TeacherID == "" {
		uc.TeacherID = orig.TeacherID
	}
	if name := core.CleanString(uc.TeacherName); name != "" {
		uc.TeacherName = name
	} else {
		uc.TeacherName = orig.TeacherName
	}
	return core.Validate.Struct(uc)
}

// NewStudent contains information needed to enroll a student in a course.
type NewStudent struct {
	Name   string `json:"name" validate:"required"`
	DNI    string `json:"dni" validate:"required,dni"`
	Email  string `json:"email" validate:"omitempty,email"`
	UserID string `json:"user_id"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.DNI = core.CleanString(ns.DNI)
	return core.Validate.Struct(ns)
}

// parseDate validates an attendance date against DateLayout.
func parseDate(date string) error {
	_, err := time.Parse(DateLayout, date)
	return err
}
