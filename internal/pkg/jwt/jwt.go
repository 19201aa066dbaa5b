package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Verification failures fall into exactly two classes. Expired tokens can be
// recovered through the refresh path; everything else is terminal.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

type Claims struct {
	UserID int64 `json:"user_id"`
	jwtlib.RegisteredClaims
}

// Codec signs and verifies access and refresh tokens. The two token classes
// use independent secrets so compromising one does not expose the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *Codec) SignAccess(userID int64) (string, error) {
	return sign(userID, c.accessSecret, c.accessTTL)
}

func (c *Codec) SignRefresh(userID int64) (string, error) {
	return sign(userID, c.refreshSecret, c.refreshTTL)
}

func (c *Codec) VerifyAccess(tokenStr string) (*Claims, error) {
	return verify(tokenStr, c.accessSecret)
}

func (c *Codec) VerifyRefresh(tokenStr string) (*Claims, error) {
	return verify(tokenStr, c.refreshSecret)
}

func sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
