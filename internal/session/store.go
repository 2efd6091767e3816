// Package session manages server-side login sessions backed by the
// relational store, so sessions survive process restarts and are shared
// across instances.
package session

import (
	"errors"
	"time"

	"monipack-backend/internal/model"
	"monipack-backend/prometheus"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

// Create issues a new session for the admin with the given TTL
func Create(db *gorm.DB, admin *model.Admin, ttl time.Duration) (*model.Session, error) {
	sess := model.Session{
		AdminID:   admin.ID,
		Email:     admin.Email,
		Role:      admin.Role,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := db.Create(&sess).Error; err != nil {
		return nil, err
	}
	prometheus.IncreaseActiveSessions()
	return &sess, nil
}

// Get resolves a cookie token to a live session. Expired rows are removed on
// sight and reported as missing.
func Get(db *gorm.DB, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	var sess model.Session
	err := db.Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if sess.IsExpired() {
		result := db.Delete(&model.Session{}, "token = ?", token)
		prometheus.ReduceActiveSessions(result.RowsAffected)
		return nil, ErrNotFound
	}

	return &sess, nil
}

// Destroy removes a session. Destroying a token that no longer exists is not
// an error, so logout stays idempotent.
func Destroy(db *gorm.DB, token string) error {
	result := db.Delete(&model.Session{}, "token = ?", token)
	prometheus.ReduceActiveSessions(result.RowsAffected)
	return result.Error
}

// DestroyAllForAdmin removes every session the admin holds. Called when an
// admin is deactivated so a stale role snapshot cannot outlive the account.
func DestroyAllForAdmin(db *gorm.DB, adminID string) error {
	result := db.Delete(&model.Session{}, "admin_id = ?", adminID)
	prometheus.ReduceActiveSessions(result.RowsAffected)
	return result.Error
}

// PurgeExpired removes sessions past their TTL and returns how many were cut
func PurgeExpired(db *gorm.DB) (int64, error) {
	result := db.Delete(&model.Session{}, "expires_at < ?", time.Now())
	prometheus.ReduceActiveSessions(result.RowsAffected)
	return result.RowsAffected, result.Error
}
