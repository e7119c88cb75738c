package user

// MenuItem is one entry of the navigation menu exposed to the presentation layer.
type MenuItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var (
	studentMenu = []MenuItem{
		{Path: "/publications", Label: "Publications"},
		{Path: "/messaging", Label: "Messaging"},
		{Path: "/grades", Label: "Grades"},
		{Path: "/payments", Label: "Payments"},
		{Path: "/attendance", Label: "Attendance"},
		{Path: "/my-courses", Label: "My Courses"},
		{Path: "/enrollment", Label: "Online Enrollment"},
		{Path: "/school-schedule", Label: "School Schedule"},
	}

	teacherMenu = []MenuItem{
		{Path: "/publications", Label: "Publications"},
		{Path: "/my-courses", Label: "My Courses"},
		{Path: "/teacher-grades", Label: "Grades"},
		{Path: "/teacher-attendance", Label: "Attendance"},
		{Path: "/schedule", Label: "Schedule"},
		{Path: "/messaging", Label: "Messaging"},
	}

	adminMenu = []MenuItem{
		{Path: "/publications", Label: "Publications"},
		{Path: "/users", Label: "Users"},
		{Path: "/enrolled-students", Label: "Enrolled Students"},
		{Path: "/hired-teachers", Label: "Hired Teachers"},
		{Path: "/courses", Label: "Courses"},
		{Path: "/payments", Label: "Payments"},
		{Path: "/messaging", Label: "Messaging"},
	}
)

// MenuFor returns the navigation entries visible to the user's persona.
func MenuFor(usr User) []MenuItem {
	switch usr.Type {
	case TypeTeacher:
		return teacherMenu
	case TypeAdmin:
		return adminMenu
	default:
		return studentMenu
	}
}
