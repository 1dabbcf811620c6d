package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/fema/internal/db"
	"github.com/terraincognita07/fema/internal/store"
)

const (
	authCookieName     = "fema_auth"
	contextUsernameKey = "current_username"

	defaultAuthTokenTTL = 7 * 24 * time.Hour
)

type authClaims struct {
	jwt.RegisteredClaims
}

// Handler serves the single-user tracker. At most one session is open
// at a time; its decrypted buckets live only in memory and the mutex
// serializes every access to them.
type Handler struct {
	buckets      *db.BucketRepository
	secretKey    []byte
	location     *time.Location
	cookieSecure bool

	mutex   sync.Mutex
	session *store.Session
}

func NewHandler(buckets *db.BucketRepository, secretKey []byte, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		buckets:      buckets,
		secretKey:    secretKey,
		location:     location,
		cookieSecure: cookieSecure,
	}
}
