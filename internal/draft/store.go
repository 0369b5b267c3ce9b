// Package draft persists in-progress form values between CLI invocations.
// A browser form keeps its draft in memory until the screen unmounts; the CLI
// equivalent spans several invocations, so drafts live in a local SQLite DB
// and are destroyed on successful submit or an explicit clear.
package draft

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Draft is one in-progress create or update form, scoped to a resource and,
// for nested resources, a parent record.
type Draft struct {
	ID        string `gorm:"primaryKey"`
	Resource  string `gorm:"uniqueIndex:idx_draft_scope"`
	ParentID  string `gorm:"uniqueIndex:idx_draft_scope"`
	TargetID  string // record being updated; empty for create drafts
	ImagePath string // local path of the chosen image, if any
	UpdatedAt time.Time
}

// Field is one editable field value of a draft.
type Field struct {
	DraftID string `gorm:"primaryKey"`
	Name    string `gorm:"primaryKey"`
	Value   string
}

type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the draft DB at path and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Draft{}, &Field{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the draft for the scope, or nil when none exists.
func (s *Store) Get(resource, parentID string) (*Draft, error) {
	var d Draft
	err := s.db.Where("resource = ? AND parent_id = ?", resource, parentID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ensure returns the scope's draft, creating an empty one when missing.
func (s *Store) ensure(resource, parentID string) (*Draft, error) {
	d, err := s.Get(resource, parentID)
	if err != nil {
		return nil, err
	}
	if d != nil {
		return d, nil
	}
	d = &Draft{ID: uuid.NewString(), Resource: resource, ParentID: parentID}
	if err := s.db.Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// Set stores one field value, creating the draft when needed.
func (s *Store) Set(resource, parentID, field, value string) error {
	d, err := s.ensure(resource, parentID)
	if err != nil {
		return err
	}
	f := Field{DraftID: d.ID, Name: field, Value: value}
	if err := s.db.Save(&f).Error; err != nil {
		return err
	}
	return s.touch(d)
}

// SetImage records the local image path to attach on submit.
func (s *Store) SetImage(resource, parentID, path string) error {
	d, err := s.ensure(resource, parentID)
	if err != nil {
		return err
	}
	d.ImagePath = path
	return s.db.Save(d).Error
}

// SetTarget marks the draft as an update of the given record and replaces all
// field values with the fetched ones (the update screen's pre-population).
func (s *Store) SetTarget(resource, parentID, targetID string, values map[string]string) error {
	d, err := s.ensure(resource, parentID)
	if err != nil {
		return err
	}
	d.TargetID = targetID
	if err := s.db.Save(d).Error; err != nil {
		return err
	}
	if err := s.db.Where("draft_id = ?", d.ID).Delete(&Field{}).Error; err != nil {
		return err
	}
	for name, value := range values {
		if err := s.db.Create(&Field{DraftID: d.ID, Name: name, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Values returns the draft's field values. A missing draft yields an empty map.
func (s *Store) Values(resource, parentID string) (map[string]string, error) {
	d, err := s.Get(resource, parentID)
	if err != nil || d == nil {
		return map[string]string{}, err
	}
	var fields []Field
	if err := s.db.Where("draft_id = ?", d.ID).Find(&fields).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out, nil
}

// Clear destroys the scope's draft and its fields. Clearing a missing draft
// is a no-op.
func (s *Store) Clear(resource, parentID string) error {
	d, err := s.Get(resource, parentID)
	if err != nil || d == nil {
		return err
	}
	if err := s.db.Where("draft_id = ?", d.ID).Delete(&Field{}).Error; err != nil {
		return err
	}
	return s.db.Delete(d).Error
}

func (s *Store) touch(d *Draft) error {
	return s.db.Model(d).Update("updated_at", time.Now()).Error
}
