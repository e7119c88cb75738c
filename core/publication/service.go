package publication

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/user"
)

var (
	// errors
	ErrNotFound  = errors.New("publication not found")
	ErrNotAuthor = errors.New("only the author may delete a publication")
	ErrForbidden = errors.New("students cannot publish")
)

type (
	// Repository persists the publication collection, newest first.
	Repository interface {
		QueryAllPublications() ([]Publication, error)
		GetPublicationByID(id string) (Publication, error)
		CreatePublication(pub Publication) (Publication, error)
		DeletePublicationsByID(ids ...string) error
	}

	Service interface {
		QueryAll() ([]Publication, error)
		GetByID(id string) (Publication, error)
		Create(author user.User, np NewPublication) (Publication, error)
		// Delete removes a publication on behalf of its author.
		Delete(id string, author user.User) error
		// VisibleTo filters the collection down to what the user's
		// persona may read.
		VisibleTo(usr user.User) ([]Publication, error)
	}

	service struct {
		repo      Repository
		courseSvc course.Service
		mailSvc   core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, courseSvc course.Service, mailSvc core.EmailService) Service {
	return &service{
		repo:      repo,
		courseSvc: courseSvc,
		mailSvc:   mailSvc,
	}
}

func (svc *service) QueryAll() ([]Publication, error) {
	return svc.repo.QueryAllPublications()
}

func (svc *service) GetByID(id string) (Publication, error) {
	return svc.repo.GetPublicationByID(id)
}

// Create publishes on behalf of a staff member. When courses are targeted,
// they must exist, and their enrolled students with an email address get a
// notification.
func (svc *service) Create(author user.User, np NewPublication) (Publication, error) {
	if author.IsStudent() {
		return Publication{}, ErrForbidden
	}

	var recipients []mail.Address
	for _, courseID := range np.CourseIDs {
		crs, err := svc.courseSvc.GetByID(courseID)
		if err != nil {
			if err == course.ErrNotFound {
				return Publication{}, core.NewValidationError(
					errors.New("unknown course"),
					core.FieldError{Field: "course_ids", Error: fmt.Sprintf("course %q does not exist", courseID)},
				)
			}
			return Publication{}, err
		}
		for _, std := range crs.Students {
			if std.Email != "" {
				recipients = append(recipients, mail.Address{Name: std.Name, Address: std.Email})
			}
		}
	}

	authorType := AuthorTypeTeacher
	if author.IsAdmin() {
		authorType = AuthorTypeAdministrative
	}
	pub := Publication{
		Title:      np.Title,
		Content:    np.Content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorType: authorType,
		CreatedAt:  time.Now().UTC(),
		Audience:   np.Audience,
		CourseIDs:  np.CourseIDs,
	}
	pub, err := svc.repo.CreatePublication(pub)
	if err != nil {
		return Publication{}, err
	}

	if len(recipients) > 0 {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			Bcc:     recipients,
			Subject: fmt.Sprintf("New publication: %s", pub.Title),
			BodyStr: fmt.Sprintf("%s\n\n%s\n— %s", pub.Title, pub.Content, pub.AuthorName),
		})
	}
	return pub, nil
}

func (svc *service) Delete(id string, author user.User) error {
	pub, err := svc.repo.GetPublicationByID(id)
	if err != nil {
		return err
	}
	if pub.AuthorID != author.ID {
		return ErrNotAuthor
	}
	return svc.repo.DeletePublicationsByID(id)
}

func (svc *service) VisibleTo(usr user.User) ([]Publication, error) {
	all, err := svc.repo.QueryAllPublications()
	if err != nil {
		return nil, err
	}

	if usr.IsAdmin() {
		return all, nil
	}

	visible := make([]Publication, 0, len(all))
	switch {
	case usr.IsTeacher():
		for _, pub := range all {
			if pub.SchoolWide() || pub.AuthorID == usr.ID {
				visible = append(visible, pub)
			}
		}
	default: // student
		enrolled, err := svc.courseSvc.ForStudentUser(usr.ID)
		if err != nil {
			return nil, err
		}
		for _, pub := range all {
			if pub.SchoolWide() {
				visible = append(visible, pub)
				continue
			}
			for _, crs := range enrolled {
				if pub.Targets(crs.ID) {
					visible = append(visible, pub)
					break
				}
			}
		}
	}
	return visible, nil
}
