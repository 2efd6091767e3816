package auth

import (
	"errors"
	"strings"

	"monipack-backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureSuperAdmin provisions the configured super admin if no account with
// that email exists yet. The check-then-create is guarded by the unique email
// constraint: a concurrent boot racing past the check hits the constraint and
// is treated as success. Callers log a returned error but must not abort
// startup on it.
func EnsureSuperAdmin(db *gorm.DB, log *zap.Logger, email, defaultPIN string) error {
	email = strings.ToLower(email)

	var existing model.Admin
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info("Super admin already provisioned", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if !ValidPIN(defaultPIN) {
		return errors.New("configured super admin PIN is not a 6-digit PIN")
	}

	hash, err := HashPIN(defaultPIN)
	if err != nil {
		return err
	}

	admin := model.Admin{
		Email:   email,
		Role:    model.RoleSuperAdmin,
		PinHash: hash,
		Active:  true,
	}

	if err := db.Create(&admin).Error; err != nil {
		// Lost the race against another instance: the account exists now,
		// which is the state we wanted.
		var check model.Admin
		if db.Where("email = ?", email).First(&check).Error == nil {
			log.Info("Super admin created by a concurrent boot", zap.String("email", email))
			return nil
		}
		return err
	}

	log.Info("Super admin provisioned", zap.String("email", email))
	return nil
}
