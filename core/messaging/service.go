package messaging

import (
	"errors"
	"time"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("message not found")
	ErrNotDraft = errors.New("message is not a draft")
)

type (
	// Repository persists the message collection, newest first.
	Repository interface {
		QueryAllMessages() ([]Message, error)
		GetMessageByID(id string) (Message, error)
		CreateMessage(msg Message) (Message, error)
		UpdateMessage(msg Message) (Message, error)
		DeleteMessagesByID(ids ...string) error
	}

	Service interface {
		// Compose validates and sends a message right away.
		Compose(from user.User, nm NewMessage) (Message, error)
		// SaveDraft keeps a possibly half-written message.
		SaveDraft(from user.User, nm NewMessage) (Message, error)
		// SendDraft validates a draft and moves it to the sent folder.
		SendDraft(id string, from user.User) (Message, error)
		MarkRead(id string) (Message, error)
		MoveToTrash(id string) (Message, error)
		GetByID(id string) (Message, error)
		// Folder lists the user's view of a mailbox folder.
		Folder(f Folder, usr user.User) ([]Message, error)
		// UnreadCountFor counts unread received messages addressed to the user.
		UnreadCountFor(usr user.User) (int, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Compose sends right away; sent mail is read from the sender's side.
func (svc *service) Compose(from user.User, nm NewMessage) (Message, error) {
	if err := nm.Validate(); err != nil {
		return Message{}, err
	}
	return svc.repo.CreateMessage(Message{
		From:    from.Name,
		To:      nm.To,
		Subject: nm.Subject,
		Body:    nm.Body,
		SentAt:  time.Now().UTC(),
		Read:    true,
		Folder:  FolderSent,
	})
}

func (svc *service) SaveDraft(from user.User, nm NewMessage) (Message, error) {
	nm.To = core.CleanString(nm.To)
	nm.Subject = core.CleanString(nm.Subject)
	return svc.repo.CreateMessage(Message{
		From:    from.Name,
		To:      nm.To,
		Subject: nm.Subject,
		Body:    nm.Body,
		SentAt:  time.Now().UTC(),
		Read:    true,
		Folder:  FolderDraft,
	})
}

func (svc *service) SendDraft(id string, from user.User) (Message, error) {
	msg, err := svc.repo.GetMessageByID(id)
	if err != nil {
		return Message{}, err
	}
	if msg.Folder != FolderDraft {
		return Message{}, ErrNotDraft
	}

	nm := NewMessage{To: msg.To, Subject: msg.Subject, Body: msg.Body}
	if err = nm.Validate(); err != nil {
		return Message{}, err
	}

	msg.To = nm.To
	msg.Subject = nm.Subject
	msg.From = from.Name
	msg.SentAt = time.Now().UTC()
	msg.Folder = FolderSent
	return svc.repo.UpdateMessage(msg)
}

func (svc *service) MarkRead(id string) (Message, error) {
	msg, err := svc.repo.GetMessageByID(id)
	if err != nil {
		return Message{}, err
	}
	if msg.Read {
		return msg, nil
	}
	msg.Read = true
	return svc.repo.UpdateMessage(msg)
}

// MoveToTrash moves a message out of its folder; trashing a trashed
// message leaves it where it is.
func (svc *service) MoveToTrash(id string) (Message, error) {
	msg, err := svc.repo.GetMessageByID(id)
	if err != nil {
		return Message{}, err
	}
	if msg.Folder == FolderTrash {
		return msg, nil
	}
	msg.Folder = FolderTrash
	return svc.repo.UpdateMessage(msg)
}

func (svc *service) GetByID(id string) (Message, error) {
	return svc.repo.GetMessageByID(id)
}

// Folder filters the collection down to the user's view: received mail is
// addressed to them, sent mail and drafts are authored by them, and trash
// shows items they were on either side of.
func (svc *service) Folder(f Folder, usr user.User) ([]Message, error) {
	all, err := svc.repo.QueryAllMessages()
	if err != nil {
		return nil, err
	}
	msgs := make([]Message, 0, len(all))
	for _, msg := range all {
		if msg.Folder != f {
			continue
		}
		switch f {
		case FolderReceived:
			if msg.To == usr.Name {
				msgs = append(msgs, msg)
			}
		case FolderSent, FolderDraft:
			if msg.From == usr.Name {
				msgs = append(msgs, msg)
			}
		case FolderTrash:
			if msg.To == usr.Name || msg.From == usr.Name {
				msgs = append(msgs, msg)
			}
		}
	}
	return msgs, nil
}

func (svc *service) UnreadCountFor(usr user.User) (int, error) {
	all, err := svc.repo.QueryAllMessages()
	if err != nil {
		return 0, err
	}
	var count int
	for _, msg := range all {
		if msg.Folder == FolderReceived && !msg.Read && msg.To == usr.Name {
			count++
		}
	}
	return count, nil
}
