// Package store provides the namespaced per-user blob persistence the
// progression engines are written against. Engines never see gorm or the
// filesystem — only opaque JSON blobs keyed by (user, namespace).
package store

import "errors"

// Namespaces used by the progression facade.
const (
	NamespaceProgression      = "progression"
	NamespaceStreakProtection = "streak_protection"
	NamespaceAchievements     = "achievements"
	NamespaceDailyLogin       = "daily_login"
)

// ErrNotFound is returned by Load when no blob exists for the key. Callers
// treat it as "fresh account" and substitute defaults.
var ErrNotFound = errors.New("blob not found")

// Store is the persistence contract injected into the facade.
type Store interface {
	Load(externalUserID, namespace string) ([]byte, error)
	Save(externalUserID, namespace string, data []byte) error
	Delete(externalUserID, namespace string) error
}

// Lister is implemented by stores that can enumerate known users. The
// maintenance scheduler and archive worker need it; the in-memory test
// store implements it too.
type Lister interface {
	Users() ([]string, error)
}
