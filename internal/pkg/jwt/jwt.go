package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/workholic/workholic-go/internal/domain/user"
)

// Claims is the identity carried by an access token.
type Claims struct {
	TokenID   string
	Email     string
	Name      string
	Role      user.Role
	Schedule  string
	ExpiresAt int64
}

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	ParseAccessToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", 0, err
	}

	claims := map[string]interface{}{
		"jti":      tokenID.String(),
		"email":    u.Email,
		"name":     u.Name,
		"role":     string(u.Role),
		"schedule": u.Schedule,
		"type":     "access",
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ParseAccessToken verifies the signature and expiry of tokenString.
func (j *JWTService) ParseAccessToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return ClaimsFromToken(token)
}

// ClaimsFromToken reads the access claims of an already verified token.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	if tokenType, ok := token.Get("type"); !ok || tokenType != "access" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	claims := Claims{
		TokenID:   token.JwtID(),
		ExpiresAt: token.Expiration().Unix(),
	}
	var role string
	for key, dst := range map[string]*string{
		"email":    &claims.Email,
		"name":     &claims.Name,
		"role":     &role,
		"schedule": &claims.Schedule,
	} {
		v, ok := token.Get(key)
		if !ok {
			return Claims{}, jwt.ErrInvalidJWT()
		}
		s, ok := v.(string)
		if !ok {
			return Claims{}, jwt.ErrInvalidJWT()
		}
		*dst = s
	}
	claims.Role = user.Role(role)

	return claims, nil
}

// RevokeToken blacklists tokenID until expiresAt. Expired entries are
// pruned on each call.
func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}
