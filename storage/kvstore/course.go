package kvstore

import "github.com/edunova/colegio/core/course"

// CourseRepo implements course.Repository on the shared DB handle. It owns
// three slots: the roster, the attendance sheets and the grade sheets.
type CourseRepo struct {
	db *DB
}

var _ course.Repository = (*CourseRepo)(nil)

func NewCourseRepo(db *DB) *CourseRepo {
	return &CourseRepo{db: db}
}

func (repo *CourseRepo) QueryAllCourses() ([]course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]course.Course, len(repo.db.courses))
	copy(courses, repo.db.courses)
	return courses, nil
}

func (repo *CourseRepo) GetCourseByID(id string) (course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, crs := range repo.db.courses {
		if crs.ID == id {
			return crs, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *CourseRepo) CreateCourse(crs course.Course) (course.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if crs.ID == "" {
		crs.ID = newID("c")
	}
	crs = assignStudentIDs(crs)
	repo.db.courses = append(repo.db.courses, crs)
	if err := saveSlot(repo.db, slotCourses, repo.db.courses); err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (repo *CourseRepo) UpdateCourse(crs course.Course) (course.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, existing := range repo.db.courses {
		if existing.ID != crs.ID {
			continue
		}
		crs = assignStudentIDs(crs)
		repo.db.courses[i] = crs
		if err := saveSlot(repo.db, slotCourses, repo.db.courses); err != nil {
			return course.Course{}, err
		}
		return crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *CourseRepo) DeleteCoursesByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		keep := true
		for _, id := range ids {
			if crs.ID == id {
				keep = false
				break
			}
		}
		if keep {
			courses = append(courses, crs)
		}
	}
	repo.db.courses = courses
	return saveSlot(repo.db, slotCourses, repo.db.courses)
}

func (repo *CourseRepo) QueryAllAttendance() ([]course.DayAttendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	sheets := make([]course.DayAttendance, len(repo.db.attendance))
	copy(sheets, repo.db.attendance)
	return sheets, nil
}

func (repo *CourseRepo) GetAttendance(date, courseID string) (course.DayAttendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, att := range repo.db.attendance {
		if att.Date == date && att.CourseID == courseID {
			return att, nil
		}
	}
	return course.DayAttendance{}, course.ErrAttendanceNotFound
}

// UpsertAttendance replaces the sheet keyed by (date, course), keeping the
// existing sheet id, or appends a new one.
func (repo *CourseRepo) UpsertAttendance(att course.DayAttendance) (course.DayAttendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, existing := range repo.db.attendance {
		if existing.Date == att.Date && existing.CourseID == att.CourseID {
			att.ID = existing.ID
			repo.db.attendance[i] = att
			if err := saveSlot(repo.db, slotAttendance, repo.db.attendance); err != nil {
				return course.DayAttendance{}, err
			}
			return att, nil
		}
	}

	att.ID = newID("a")
	repo.db.attendance = append(repo.db.attendance, att)
	if err := saveSlot(repo.db, slotAttendance, repo.db.attendance); err != nil {
		return course.DayAttendance{}, err
	}
	return att, nil
}

func (repo *CourseRepo) QueryAllGrades() ([]course.CourseGrades, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	sheets := make([]course.CourseGrades, len(repo.db.grades))
	copy(sheets, repo.db.grades)
	return sheets, nil
}

func (repo *CourseRepo) GetGradesByCourseID(courseID string) (course.CourseGrades, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, cg := range repo.db.grades {
		if cg.CourseID == courseID {
			return cg, nil
		}
	}
	return course.CourseGrades{}, course.ErrGradesNotFound
}

// UpsertGrades replaces the sheet keyed by course, keeping the existing
// sheet id, or appends a new one.
func (repo *CourseRepo) UpsertGrades(cg course.CourseGrades) (course.CourseGrades, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, existing := range repo.db.grades {
		if existing.CourseID == cg.CourseID {
			cg.ID = existing.ID
			repo.db.grades[i] = cg
			if err := saveSlot(repo.db, slotGrades, repo.db.grades); err != nil {
				return course.CourseGrades{}, err
			}
			return cg, nil
		}
	}

	cg.ID = newID("g")
	repo.db.grades = append(repo.db.grades, cg)
	if err := saveSlot(repo.db, slotGrades, repo.db.grades); err != nil {
		return course.CourseGrades{}, err
	}
	return cg, nil
}

// assignStudentIDs mints ids for roster entries that do not carry one yet.
func assignStudentIDs(crs course.Course) course.Course {
	for i, std := range crs.Students {
		if std.ID == "" {
			crs.Students[i].ID = newID("s")
		}
	}
	return crs
}
