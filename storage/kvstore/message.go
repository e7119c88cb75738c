package kvstore

import "github.com/edunova/colegio/core/messaging"

// MessageRepo implements messaging.Repository on the shared DB handle.
type MessageRepo struct {
	db *DB
}

var _ messaging.Repository = (*MessageRepo)(nil)

func NewMessageRepo(db *DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (repo *MessageRepo) QueryAllMessages() ([]messaging.Message, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	msgs := make([]messaging.Message, len(repo.db.messages))
	copy(msgs, repo.db.messages)
	return msgs, nil
}

func (repo *MessageRepo) GetMessageByID(id string) (messaging.Message, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, msg := range repo.db.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return messaging.Message{}, messaging.ErrNotFound
}

// CreateMessage prepends so mailbox listings stay newest first.
func (repo *MessageRepo) CreateMessage(msg messaging.Message) (messaging.Message, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if msg.ID == "" {
		msg.ID = newID("m")
	}
	repo.db.messages = append([]messaging.Message{msg}, repo.db.messages...)
	if err := saveSlot(repo.db, slotMessages, repo.db.messages); err != nil {
		return messaging.Message{}, err
	}
	return msg, nil
}

func (repo *MessageRepo) UpdateMessage(msg messaging.Message) (messaging.Message, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, existing := range repo.db.messages {
		if existing.ID != msg.ID {
			continue
		}
		repo.db.messages[i] = msg
		if err := saveSlot(repo.db, slotMessages, repo.db.messages); err != nil {
			return messaging.Message{}, err
		}
		return msg, nil
	}
	return messaging.Message{}, messaging.ErrNotFound
}

func (repo *MessageRepo) DeleteMessagesByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	msgs := make([]messaging.Message, 0, len(repo.db.messages))
	for _, msg := range repo.db.messages {
		keep := true
		for _, id := range ids {
			if msg.ID == id {
				keep = false
				break
			}
		}
		if keep {
			msgs = append(msgs, msg)
		}
	}
	repo.db.messages = msgs
	return saveSlot(repo.db, slotMessages, repo.db.messages)
}
