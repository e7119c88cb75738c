package publication

import "time"

// Seed returns the default announcement set used to initialize an empty
// database, newest first. p3 targets the Matemáticas course only.
func Seed() []Publication {
	return []Publication{
		{
			ID:         "p1",
			Title:      "Inicio del año escolar",
			Content:    "Les damos la bienvenida al nuevo año escolar. Las clases inician el lunes 11 de marzo.",
			AuthorID:   "3",
			AuthorName: "Carlos Pérez",
			AuthorType: AuthorTypeAdministrative,
			CreatedAt:  time.Date(2024, time.March, 8, 9, 0, 0, 0, time.UTC),
			Audience:   AudienceAll,
		},
		{
			ID:         "p2",
			Title:      "Reunión de padres de familia",
			Content:    "Se convoca a los padres de familia a la reunión general del viernes a las 6 pm en el auditorio.",
			AuthorID:   "3",
			AuthorName: "Carlos Pérez",
			AuthorType: AuthorTypeAdministrative,
			CreatedAt:  time.Date(2024, time.March, 12, 15, 30, 0, 0, time.UTC),
			Audience:   AudienceAll,
		},
		{
			ID:         "p3",
			Title:      "Examen de Matemáticas",
			Content:    "El examen del primer bimestre será el próximo miércoles. Repasar los capítulos 1 a 3.",
			AuthorID:   "2",
			AuthorName: "María García",
			AuthorType: AuthorTypeTeacher,
			CreatedAt:  time.Date(2024, time.March, 18, 8, 0, 0, 0, time.UTC),
			Audience:   AudienceStudents,
			CourseIDs:  []string{"c1"},
		},
		{
			ID:         "p4",
			Title:      "Actividades por el Día de la Madre",
			Content:    "Este viernes celebraremos el Día de la Madre con actuaciones en el patio principal.",
			AuthorID:   "3",
			AuthorName: "Carlos Pérez",
			AuthorType: AuthorTypeAdministrative,
			CreatedAt:  time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC),
			Audience:   AudienceAll,
		},
	}
}
