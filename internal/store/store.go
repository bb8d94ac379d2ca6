package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hussein34535/waledapi/internal/models"
)

// ErrNotFound reports that the referenced identifier does not exist. Updates
// never create records implicitly; callers get this error instead.
var ErrNotFound = errors.New("record not found")

// Store is the injected repository over the two collections. Handlers hold a
// *Store; nothing in the process reaches the database any other way.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AccountPatch carries a partial account update. Nil fields are left as-is.
type AccountPatch struct {
	Type       *string
	ServerName *string
	Status     *string
	IPAddress  *string
	Username   *string
	Password   *string
	ExpiryDate *string
	Config     *string
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// enforceTypeGroup clears whichever field group does not belong to the
// account's type, so exactly one of {SSH credentials, config} survives.
func enforceTypeGroup(acc *models.VpsAccount) {
	if acc.Type == models.TypeSSH {
		acc.Config = ""
	} else {
		acc.IPAddress = ""
		acc.Username = ""
		acc.Password = ""
		acc.ExpiryDate = ""
	}
}

func (s *Store) CreateAccount(acc *models.VpsAccount) error {
	acc.ID = uuid.NewString()
	now := nowMillis()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	enforceTypeGroup(acc)
	return s.db.Create(acc).Error
}

// ListAccounts returns all accounts, newest first. typeFilter is matched
// case-insensitively when non-empty.
func (s *Store) ListAccounts(typeFilter string) ([]models.VpsAccount, error) {
	q := s.db.Order("created_at desc")
	if typeFilter != "" {
		q = q.Where("type = ?", strings.ToUpper(typeFilter))
	}
	var accounts []models.VpsAccount
	if err := q.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) GetAccount(id string) (*models.VpsAccount, error) {
	var acc models.VpsAccount
	if err := s.db.First(&acc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// UpdateAccount merges the patch into the stored record and refreshes
// updatedAt. Switching Type drops the now-irrelevant field group.
func (s *Store) UpdateAccount(id string, patch AccountPatch) (*models.VpsAccount, error) {
	var acc models.VpsAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&acc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.Type != nil {
			acc.Type = *patch.Type
		}
		if patch.ServerName != nil {
			acc.ServerName = *patch.ServerName
		}
		if patch.Status != nil {
			acc.Status = *patch.Status
		}
		if patch.IPAddress != nil {
			acc.IPAddress = *patch.IPAddress
		}
		if patch.Username != nil {
			acc.Username = *patch.Username
		}
		if patch.Password != nil {
			acc.Password = *patch.Password
		}
		if patch.ExpiryDate != nil {
			acc.ExpiryDate = *patch.ExpiryDate
		}
		if patch.Config != nil {
			acc.Config = *patch.Config
		}
		enforceTypeGroup(&acc)
		acc.UpdatedAt = nowMillis()
		// Save with Select so cleared fields are written back as empty.
		return tx.Model(&acc).Select("*").Omit("created_at").Updates(&acc).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// DeleteAccount removes the record; deleting an absent id is not an error.
func (s *Store) DeleteAccount(id string) error {
	return s.db.Delete(&models.VpsAccount{}, "id = ?", id).Error
}

func (s *Store) CreateSNI(rec *models.SNIRecord) error {
	return s.db.Save(rec).Error
}

func (s *Store) ListSNI() ([]models.SNIRecord, error) {
	var records []models.SNIRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) GetSNI(name string) (*models.SNIRecord, error) {
	var rec models.SNIRecord
	if err := s.db.First(&rec, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// UpdateSNI changes the host of an existing record. The name is immutable
// and an absent name yields ErrNotFound, never an insert.
func (s *Store) UpdateSNI(name, host string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rec models.SNIRecord
		if err := tx.First(&rec, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		rec.Host = host
		return tx.Save(&rec).Error
	})
}

func (s *Store) DeleteSNI(name string) error {
	return s.db.Delete(&models.SNIRecord{}, "name = ?", name).Error
}

// FindAdmin looks the operator account up by email for the login check.
func (s *Store) FindAdmin(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Store) GetAdmin(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
