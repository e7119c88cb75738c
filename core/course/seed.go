package course

// Seed returns the default course roster used to initialize an empty database.
// Student s1 is linked to the seed student account (user id "1") so the demo
// student sees Matemáticas in their course list.
func Seed() []Course {
	return []Course{
		{
			ID:          "c1",
			Name:        "Matemáticas",
			Level:       "5to Primaria",
			Section:     "A",
			TeacherID:   "2",
			TeacherName: "María García",
			Students: []Student{
				{ID: "s1", Name: "Jose Bayona", DNI: "70481123", Email: "alumno@colegio.com", UserID: "1"},
				{ID: "s2", Name: "Ana Torres", DNI: "70512234", Email: "ana.torres@colegio.com"},
				{ID: "s3", Name: "Luis Ramos", DNI: "70523345", Email: "luis.ramos@colegio.com"},
				{ID: "s4", Name: "Carla Díaz", DNI: "70534456", Email: "carla.diaz@colegio.com"},
				{ID: "s5", Name: "Pedro Quispe", DNI: "70545567", Email: "pedro.quispe@colegio.com"},
			},
		},
		{
			ID:          "c2",
			Name:        "Comunicación",
			Level:       "5to Primaria",
			Section:     "B",
			TeacherID:   "2",
			TeacherName: "María García",
			Students: []Student{
				{ID: "s6", Name: "Rosa Flores", DNI: "70656678", Email: "rosa.flores@colegio.com"},
				{ID: "s7", Name: "Diego Castro", DNI: "70667789", Email: "diego.castro@colegio.com"},
				{ID: "s8", Name: "Elena Vargas", DNI: "70678890", Email: "elena.vargas@colegio.com"},
			},
		},
	}
}
