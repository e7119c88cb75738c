// Package kvstore keeps every record collection in memory and writes each
// collection back to a key-value slot after every mutation, so the database
// on disk is always a full snapshot of the current state.
package kvstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/messaging"
	"github.com/edunova/colegio/core/publication"
	"github.com/edunova/colegio/core/user"
)

// SchemaVersion tags every persisted slot. A slot carrying a different
// version is treated as unreadable and replaced by seed data.
const SchemaVersion = 1

// slot keys
const (
	slotUsers        = "users"
	slotSession      = "user"
	slotCourses      = "courses"
	slotAttendance   = "attendance"
	slotGrades       = "courseGrades"
	slotPublications = "publications"
	slotMessages     = "messages"
)

// envelope wraps a record collection with its schema version.
type envelope struct {
	Schema  int             `json:"schema"`
	SavedAt time.Time       `json:"saved_at"`
	Records json.RawMessage `json:"records"`
}

// DB is the database handle shared by the repositories. One mutex guards
// all collections; mutations hold it across the in-memory update and the
// slot write so a snapshot never interleaves two writers.
type DB struct {
	mu     sync.RWMutex
	kv     core.KVStore
	logger core.Logger

	users        []userRecord
	session      []userRecord // zero or one record
	courses      []course.Course
	attendance   []course.DayAttendance
	grades       []course.CourseGrades
	publications []publication.Publication
	messages     []messaging.Message
}

// Open loads every slot from the underlying store. Slots that are missing,
// unreadable or tagged with a foreign schema version are replaced by seed
// data; the stored bytes are never partially applied.
func Open(kv core.KVStore, logger core.Logger) (*DB, error) {
	db := &DB{kv: kv, logger: logger}

	db.users = loadSlot(db, slotUsers, func() []userRecord { return toRecords(user.Seed()) })
	db.session = loadSlot(db, slotSession, func() []userRecord { return nil })
	db.courses = loadSlot(db, slotCourses, course.Seed)
	db.attendance = loadSlot(db, slotAttendance, func() []course.DayAttendance { return nil })
	db.grades = loadSlot(db, slotGrades, func() []course.CourseGrades { return nil })
	db.publications = loadSlot(db, slotPublications, publication.Seed)
	db.messages = loadSlot(db, slotMessages, messaging.Seed)

	return db, nil
}

// Reset discards every collection and re-seeds the store.
func (db *DB) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = toRecords(user.Seed())
	db.session = nil
	db.courses = course.Seed()
	db.attendance = nil
	db.grades = nil
	db.publications = publication.Seed()
	db.messages = messaging.Seed()

	for slot, save := range map[string]func() error{
		slotUsers:        func() error { return saveSlot(db, slotUsers, db.users) },
		slotSession:      func() error { return saveSlot(db, slotSession, db.session) },
		slotCourses:      func() error { return saveSlot(db, slotCourses, db.courses) },
		slotAttendance:   func() error { return saveSlot(db, slotAttendance, db.attendance) },
		slotGrades:       func() error { return saveSlot(db, slotGrades, db.grades) },
		slotPublications: func() error { return saveSlot(db, slotPublications, db.publications) },
		slotMessages:     func() error { return saveSlot(db, slotMessages, db.messages) },
	} {
		if err := save(); err != nil {
			return errors.Wrapf(err, "resetting %q", slot)
		}
	}
	return nil
}

// loadSlot reads one collection, failing closed to the seed on any problem.
func loadSlot[T any](db *DB, slot string, seed func() []T) []T {
	doc, ok, err := db.kv.Get(slot)
	if err != nil {
		db.logger.Warn(fmt.Sprintf("kvstore: reading slot %q: %v; seeding", slot, err), err)
		return seed()
	}
	if !ok {
		return seed()
	}

	var env envelope
	if err = json.Unmarshal(doc, &env); err != nil {
		db.logger.Warn(fmt.Sprintf("kvstore: slot %q is malformed: %v; seeding", slot, err), err)
		return seed()
	}
	if env.Schema != SchemaVersion {
		db.logger.Warn(fmt.Sprintf("kvstore: slot %q has schema %d, want %d; seeding", slot, env.Schema, SchemaVersion))
		return seed()
	}

	var records []T
	if err = json.Unmarshal(env.Records, &records); err != nil {
		db.logger.Warn(fmt.Sprintf("kvstore: slot %q records are malformed: %v; seeding", slot, err), err)
		return seed()
	}
	return records
}

// saveSlot writes one collection wholesale under the current schema version.
func saveSlot[T any](db *DB, slot string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "marshaling slot %q", slot)
	}
	doc, err := json.Marshal(envelope{
		Schema:  SchemaVersion,
		SavedAt: time.Now().UTC(),
		Records: raw,
	})
	if err != nil {
		return errors.Wrapf(err, "marshaling slot %q envelope", slot)
	}
	return errors.Wrapf(db.kv.Set(slot, doc), "writing slot %q", slot)
}

// newID mints a collection-scoped identifier.
func newID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}
