package messaging

import (
	"time"

	"github.com/edunova/colegio/core"
)

// Folder is one of the fixed mailbox folders a message lives in.
type Folder string

const (
	FolderReceived Folder = "received"
	FolderSent     Folder = "sent"
	FolderDraft    Folder = "draft"
	FolderTrash    Folder = "trash"
)

var AllFolders = []Folder{FolderReceived, FolderSent, FolderDraft, FolderTrash}

func (f Folder) Valid() bool {
	for _, known := range AllFolders {
		if f == known {
			return true
		}
	}
	return false
}

// Message is one internal mail item. Correspondents are addressed by
// display name, matching what the roster and account records carry.
type Message struct {
	ID      string    `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"` // UTC
	Read    bool      `json:"read"`
	Folder  Folder    `json:"folder"`
}

// NewMessage contains information needed to compose a Message. Drafts skip
// validation so half-written mail can be kept.
type NewMessage struct {
	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	nm.To = core.CleanString(nm.To)
	nm.Subject = core.CleanString(nm.Subject)
	return core.Validate.Struct(nm)
}
