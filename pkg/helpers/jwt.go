package helpers

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	refreshTokenType = "refresh"
	defaultExpirySec = 3600
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

var expiryPattern = regexp.MustCompile(`^(\d+)([smhdw])$`)

var expiryUnits = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

// ParseExpiry converts an expiry string ("1h", "30m", "7d", or bare seconds)
// into seconds. Unrecognized formats fall back to one hour with a warning.
func ParseExpiry(expiry string, logger *logrus.Logger) int64 {
	if n, err := strconv.ParseInt(expiry, 10, 64); err == nil {
		return n
	}
	if m := expiryPattern.FindStringSubmatch(expiry); m != nil {
		value, _ := strconv.ParseInt(m[1], 10, 64)
		return value * expiryUnits[m[2]]
	}
	if logger != nil {
		logger.WithField("expiry", expiry).Warn("unrecognized expiry format, falling back to 1h")
	}
	return defaultExpirySec
}

// Claims carried by both access and refresh tokens. TokenType is set to
// "refresh" on refresh tokens only; the subject is the user ID.
type Claims struct {
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"tokenType,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// JWTManager signs and validates HS256 token pairs with a single secret; a
// tokenType claim discriminates refresh tokens from access tokens.
type JWTManager struct {
	secret     []byte
	accessSec  int64
	refreshSec int64
}

func NewJWTManager(secret, accessExpiresIn, refreshExpiresIn string, logger *logrus.Logger) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessSec:  ParseExpiry(accessExpiresIn, logger),
		refreshSec: ParseExpiry(refreshExpiresIn, logger),
	}
}

// AccessTTL returns the access token lifetime in seconds.
func (m *JWTManager) AccessTTL() int64 { return m.accessSec }

// GeneratePair issues a fresh access/refresh token pair for the subject.
func (m *JWTManager) GeneratePair(userID, email string, roles []string) (TokenPair, error) {
	now := time.Now()
	access, err := m.sign(userID, email, roles, "", now.Add(time.Duration(m.accessSec)*time.Second))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(userID, email, roles, refreshTokenType, now.Add(time.Duration(m.refreshSec)*time.Second))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: m.accessSec}, nil
}

func (m *JWTManager) sign(userID, email string, roles []string, tokenType string, exp time.Time) (string, error) {
	claims := &Claims{
		Email:     email,
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccessToken validates an access token; a refresh token is rejected
// with ErrWrongTokenType.
func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType == refreshTokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token; an access token is rejected
// with ErrWrongTokenType.
func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
