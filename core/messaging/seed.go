package messaging

import "time"

// Seed returns the default mailbox contents used to initialize an empty
// database, newest first. Two received messages for the demo student are
// unread (m1, m3).
func Seed() []Message {
	return []Message{
		{
			ID:      "m1",
			From:    "María García",
			To:      "Jose Bayona",
			Subject: "Tarea de Matemáticas",
			Body:    "Hola Jose, recuerda entregar la tarea del capítulo 2 antes del viernes.",
			SentAt:  time.Date(2024, time.March, 20, 10, 15, 0, 0, time.UTC),
			Read:    false,
			Folder:  FolderReceived,
		},
		{
			ID:      "m2",
			From:    "Carlos Pérez",
			To:      "Jose Bayona",
			Subject: "Actualización de matrícula",
			Body:    "Tu matrícula del presente año ha sido registrada correctamente.",
			SentAt:  time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC),
			Read:    true,
			Folder:  FolderReceived,
		},
		{
			ID:      "m3",
			From:    "María García",
			To:      "Jose Bayona",
			Subject: "Examen del primer bimestre",
			Body:    "El examen se adelanta al miércoles. Revisa la publicación del curso para más detalles.",
			SentAt:  time.Date(2024, time.March, 19, 16, 45, 0, 0, time.UTC),
			Read:    false,
			Folder:  FolderReceived,
		},
		{
			ID:      "m4",
			From:    "Jose Bayona",
			To:      "María García",
			Subject: "Consulta sobre la tarea",
			Body:    "Profesora, ¿la tarea del capítulo 2 incluye los ejercicios opcionales?",
			SentAt:  time.Date(2024, time.March, 20, 18, 30, 0, 0, time.UTC),
			Read:    true,
			Folder:  FolderSent,
		},
		{
			ID:      "m5",
			From:    "Jose Bayona",
			To:      "Carlos Pérez",
			Subject: "Constancia de estudios",
			Body:    "Buenas tardes, quisiera solicitar una constancia de estudios.",
			SentAt:  time.Date(2024, time.March, 18, 12, 0, 0, 0, time.UTC),
			Read:    true,
			Folder:  FolderSent,
		},
		{
			ID:      "m6",
			From:    "Jose Bayona",
			To:      "María García",
			Subject: "Justificación de inasistencia",
			Body:    "Profesora, le escribo para justificar mi inasistencia del lunes...",
			SentAt:  time.Date(2024, time.March, 22, 8, 20, 0, 0, time.UTC),
			Read:    true,
			Folder:  FolderDraft,
		},
		{
			ID:      "m7",
			From:    "Carlos Pérez",
			To:      "Jose Bayona",
			Subject: "Encuesta de servicios",
			Body:    "Te invitamos a completar la encuesta anual de servicios escolares.",
			SentAt:  time.Date(2024, time.March, 10, 11, 0, 0, 0, time.UTC),
			Read:    true,
			Folder:  FolderTrash,
		},
	}
}
