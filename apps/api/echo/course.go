package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/user"
)

type courseApi struct {
	svc    course.Service
	usrSvc user.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc course.Service, usrSvc user.Service) {
	api := courseApi{svc: svc, usrSvc: usrSvc}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, adminMiddleware())

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())

	dg.POST("/students", api.addStudent, adminMiddleware())
	dg.DELETE("/students/:studentID", api.removeStudent, adminMiddleware())

	dg.GET("/attendance", api.queryAttendance, staffMiddleware())
	dg.GET("/attendance/:date", api.retrieveAttendance, staffMiddleware())
	dg.PUT("/attendance/:date", api.saveAttendance, ownCourseMiddleware(svc))

	dg.GET("/grades", api.retrieveGrades)
	dg.PUT("/grades", api.saveGrades, ownCourseMiddleware(svc))
}

// Handlers

// query lists courses through the caller's persona: admins see the whole
// catalog, teachers their own courses and students the courses they are
// enrolled in.
func (api *courseApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var courses []course.Course
	switch {
	case usr.IsAdmin():
		courses, err = api.svc.QueryAll()
	case usr.IsTeacher():
		courses, err = api.svc.ForTeacher(usr.ID)
	default:
		courses, err = api.svc.ForStudentUser(usr.ID)
	}
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}

	var data course.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(crs); err != nil {
		return err
	}

	crs, err = api.svc.Update(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) addStudent(ctx echo.Context) error {
	var data course.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.AddStudent(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) removeStudent(ctx echo.Context) error {
	crs, err := api.svc.RemoveStudent(ctx.Param("id"), ctx.Param("studentID"))
	if err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) queryAttendance(ctx echo.Context) error {
	sheets, err := api.svc.AttendanceForCourse(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if sheets == nil {
		sheets = []course.DayAttendance{}
	}
	return ctx.JSON(http.StatusOK, sheets)
}

func (api *courseApi) retrieveAttendance(ctx echo.Context) error {
	att, err := api.svc.Attendance(ctx.Param("date"), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding attendance")
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *courseApi) saveAttendance(ctx echo.Context) error {
	var data SaveAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveAttendanceRequest")
	}

	att, err := api.svc.SaveAttendance(ctx.Param("date"), ctx.Param("id"), data.Entries)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *courseApi) retrieveGrades(ctx echo.Context) error {
	cg, err := api.svc.Grades(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding grades")
	}
	return ctx.JSON(http.StatusOK, cg)
}

func (api *courseApi) saveGrades(ctx echo.Context) error {
	var data SaveGradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveGradesRequest")
	}

	cg, err := api.svc.SaveGrades(ctx.Param("id"), data.Records)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cg)
}

// ownCourseMiddleware lets the course's teacher, or an admin, through.
func ownCourseMiddleware(svc course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			if claims.IsTeacher {
				crs, err := svc.GetByID(ctx.Param("id"))
				if err != nil {
					return errors.Wrap(err, "finding course by ID")
				}
				if crs.TeacherID == claims.Subject {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

type (
	SaveAttendanceRequest struct {
		Entries []course.AttendanceEntry `json:"entries"`
	}

	SaveGradesRequest struct {
		Records []course.GradeRecord `json:"records"`
	}
)
