package kvstore

import (
	"time"

	"github.com/edunova/colegio/core/user"
)

// userRecord is the persisted form of user.User. The domain model hides
// the password hash from JSON; the storage form must keep it.
type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

func toRecord(usr user.User) userRecord {
	return userRecord(usr)
}

func toRecords(usrs []user.User) []userRecord {
	recs := make([]userRecord, len(usrs))
	for i, usr := range usrs {
		recs[i] = toRecord(usr)
	}
	return recs
}

func fromRecord(rec userRecord) user.User {
	return user.User(rec)
}

// UserRepo implements user.Repository on the shared DB handle.
type UserRepo struct {
	db *DB
}

var _ user.Repository = (*UserRepo)(nil)

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (repo *UserRepo) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rec := range repo.db.users {
		if rec.Email != email {
			continue
		}
		excluded := false
		for _, exclUsr := range excludedUsers {
			if rec.ID == exclUsr.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *UserRepo) CreateUser(usr user.User) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if usr.ID == "" {
		usr.ID = newID("u")
	}
	repo.db.users = append(repo.db.users, toRecord(usr))
	if err := saveSlot(repo.db, slotUsers, repo.db.users); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *UserRepo) QueryAllUsers() ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	usrs := make([]user.User, len(repo.db.users))
	for i, rec := range repo.db.users {
		usrs[i] = fromRecord(rec)
	}
	return usrs, nil
}

func (repo *UserRepo) GetUserByID(id string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rec := range repo.db.users {
		if rec.ID == id {
			return fromRecord(rec), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepo) GetUserByEmail(email string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rec := range repo.db.users {
		if rec.Email == email {
			return fromRecord(rec), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepo) UpdateUser(usr user.User) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, rec := range repo.db.users {
		if rec.ID != usr.ID {
			continue
		}
		repo.db.users[i] = toRecord(usr)
		if err := saveSlot(repo.db, slotUsers, repo.db.users); err != nil {
			return user.User{}, err
		}
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepo) DeleteUsersByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	recs := make([]userRecord, 0, len(repo.db.users))
	for _, rec := range repo.db.users {
		keep := true
		for _, id := range ids {
			if rec.ID == id {
				keep = false
				break
			}
		}
		if keep {
			recs = append(recs, rec)
		}
	}
	repo.db.users = recs
	return saveSlot(repo.db, slotUsers, repo.db.users)
}

func (repo *UserRepo) GetSession() (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if len(repo.db.session) == 0 {
		return user.User{}, user.ErrNotAuthenticated
	}
	return fromRecord(repo.db.session[0]), nil
}

func (repo *UserRepo) SetSession(usr user.User) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.session = []userRecord{toRecord(usr)}
	return saveSlot(repo.db, slotSession, repo.db.session)
}

func (repo *UserRepo) ClearSession() error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.session = nil
	return saveSlot(repo.db, slotSession, repo.db.session)
}
