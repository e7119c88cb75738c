package course

import (
	"errors"
	"fmt"

	"github.com/edunova/colegio/core"
)

var (
	// errors
	ErrNotFound           = errors.New("course not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrAttendanceNotFound = errors.New("no attendance recorded for this date")
	ErrGradesNotFound     = errors.New("no grades recorded for this course")
)

type (
	// Repository persists the course, attendance and grade collections.
	Repository interface {
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		CreateCourse(crs Course) (Course, error)
		UpdateCourse(crs Course) (Course, error)
		DeleteCoursesByID(ids ...string) error

		QueryAllAttendance() ([]DayAttendance, error)
		// GetAttendance returns ErrAttendanceNotFound when no sheet exists
		// for the (date, course) pair.
		GetAttendance(date, courseID string) (DayAttendance, error)
		UpsertAttendance(att DayAttendance) (DayAttendance, error)

		QueryAllGrades() ([]CourseGrades, error)
		// GetGradesByCourseID returns ErrGradesNotFound when no sheet exists.
		GetGradesByCourseID(courseID string) (CourseGrades, error)
		UpsertGrades(cg CourseGrades) (CourseGrades, error)
	}

	Service interface {
		QueryAll() ([]Course, error)
		GetByID(id string) (Course, error)
		Create(nc NewCourse) (Course, error)
		Update(id string, uc UpdateCourse) (Course, error)
		Delete(ids ...string) error

		// ForTeacher returns the courses taught by the given teacher.
		ForTeacher(teacherID string) ([]Course, error)
		// ForStudentUser returns the courses whose roster links to the
		// given login account.
		ForStudentUser(userID string) ([]Course, error)

		AddStudent(courseID string, ns NewStudent) (Course, error)
		RemoveStudent(courseID, studentID string) (Course, error)

		Attendance(date, courseID string) (DayAttendance, error)
		AttendanceForCourse(courseID string) ([]DayAttendance, error)
		SaveAttendance(date, courseID string, entries []AttendanceEntry) (DayAttendance, error)

		Grades(courseID string) (CourseGrades, error)
		SaveGrades(courseID string, records []GradeRecord) (CourseGrades, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) Create(nc NewCourse) (Course, error) {
	crs := Course{
		Name:        nc.Name,
		Level:       nc.Level,
		Section:     nc.Section,
		TeacherID:   nc.TeacherID,
		TeacherName: nc.TeacherName,
		Students:    []Student{},
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *service) Update(id string, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	crs.Name = uc.Name
	crs.Level = uc.Level
	crs.Section = uc.Section
	crs.TeacherID = uc.TeacherID
	crs.TeacherName = uc.TeacherName
	return svc.repo.UpdateCourse(crs)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteCoursesByID(ids...)
}

func (svc *service) ForTeacher(teacherID string) ([]Course, error) {
	all, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(all))
	for _, crs := range all {
		if crs.TeacherID == teacherID {
			courses = append(courses, crs)
		}
	}
	return courses, nil
}

func (svc *service) ForStudentUser(userID string) ([]Course, error) {
	all, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(all))
	for _, crs := range all {
		if crs.HasUser(userID) {
			courses = append(courses, crs)
		}
	}
	return courses, nil
}

func (svc *service) AddStudent(courseID string, ns NewStudent) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	crs.Students = append(crs.Students, Student{
		Name:   ns.Name,
		DNI:    ns.DNI,
		Email:  ns.Email,
		UserID: ns.UserID,
	})
	return svc.repo.UpdateCourse(crs)
}

// RemoveStudent drops an enrollment record. Removing an unknown student
// is a no-op; attendance and grade history keeps its rows.
func (svc *service) RemoveStudent(courseID, studentID string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	students := make([]Student, 0, len(crs.Students))
	for _, std := range crs.Students {
		if std.ID != studentID {
			students = append(students, std)
		}
	}
	crs.Students = students
	return svc.repo.UpdateCourse(crs)
}

func (svc *service) Attendance(date, courseID string) (DayAttendance, error) {
	return svc.repo.GetAttendance(date, courseID)
}

func (svc *service) AttendanceForCourse(courseID string) ([]DayAttendance, error) {
	all, err := svc.repo.QueryAllAttendance()
	if err != nil {
		return nil, err
	}
	sheets := make([]DayAttendance, 0, len(all))
	for _, att := range all {
		if att.CourseID == courseID {
			sheets = append(sheets, att)
		}
	}
	return sheets, nil
}

// SaveAttendance records the sheet for a (date, course) pair, replacing any
// existing sheet for that pair. Every entry must reference an enrolled student
// and carry a known status.
func (svc *service) SaveAttendance(date, courseID string, entries []AttendanceEntry) (DayAttendance, error) {
	if err := parseDate(date); err != nil {
		return DayAttendance{}, core.NewValidationError(
			errors.New("invalid date"),
			core.FieldError{Field: "date", Error: fmt.Sprintf("date must match %s", DateLayout)},
		)
	}
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return DayAttendance{}, err
	}

	var fieldErrs []core.FieldError
	for i, entry := range entries {
		if _, ok := crs.FindStudent(entry.StudentID); !ok {
			fieldErrs = append(fieldErrs, core.FieldError{
				Field: fmt.Sprintf("entries[%d].student_id", i),
				Error: fmt.Sprintf("student %q is not enrolled in course %q", entry.StudentID, courseID),
			})
		}
		if !entry.Status.Valid() {
			fieldErrs = append(fieldErrs, core.FieldError{
				Field: fmt.Sprintf("entries[%d].status", i),
				Error: fmt.Sprintf("unknown status %q", entry.Status),
			})
		}
	}
	if len(fieldErrs) > 0 {
		return DayAttendance{}, core.NewValidationError(errors.New("invalid attendance sheet"), fieldErrs...)
	}

	att := DayAttendance{
		Date:     date,
		CourseID: courseID,
		Entries:  entries,
	}
	return svc.repo.UpsertAttendance(att)
}

func (svc *service) Grades(courseID string) (CourseGrades, error) {
	return svc.repo.GetGradesByCourseID(courseID)
}

// SaveGrades records the grade sheet of a course, replacing any existing
// sheet. Every record must reference an enrolled student; grades are either
// nil or within the vigesimal scale, at most one per period.
func (svc *service) SaveGrades(courseID string, records []GradeRecord) (CourseGrades, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return CourseGrades{}, err
	}

	var fieldErrs []core.FieldError
	for i, rec := range records {
		if _, ok := crs.FindStudent(rec.StudentID); !ok {
			fieldErrs = append(fieldErrs, core.FieldError{
				Field: fmt.Sprintf("records[%d].student_id", i),
				Error: fmt.Sprintf("student %q is not enrolled in course %q", rec.StudentID, courseID),
			})
		}
		if len(rec.Grades) > GradePeriods {
			fieldErrs = append(fieldErrs, core.FieldError{
				Field: fmt.Sprintf("records[%d].grades", i),
				Error: fmt.Sprintf("at most %d period grades allowed", GradePeriods),
			})
			continue
		}
		for j, g := range rec.Grades {
			if g == nil {
				continue
			}
			if *g < GradeMin || *g > GradeMax {
				fieldErrs = append(fieldErrs, core.FieldError{
					Field: fmt.Sprintf("records[%d].grades[%d]", i, j),
					Error: fmt.Sprintf("grade must be between %d and %d", GradeMin, GradeMax),
				})
			}
		}
	}
	if len(fieldErrs) > 0 {
		return CourseGrades{}, core.NewValidationError(errors.New("invalid grade sheet"), fieldErrs...)
	}

	// pad every record to the full period count
	for i, rec := range records {
		if len(rec.Grades) < GradePeriods {
			grades := make([]*float64, GradePeriods)
			copy(grades, rec.Grades)
			records[i].Grades = grades
		}
	}

	cg := CourseGrades{
		CourseID: courseID,
		Records:  records,
	}
	return svc.repo.UpsertGrades(cg)
}
