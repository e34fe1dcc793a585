package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RoleAdmin grants access to the admin routes
const RoleAdmin = "admin"

// Claims are the bearer token claims this service reads
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued by the auth service
type Authenticator struct {
	secret       []byte
	issuer       string
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAuthenticator creates an Authenticator. An empty issuer accepts any issuer.
func NewAuthenticator(secret, issuer string, timeProvider coreport.TimeProvider, logger coreport.Logger) *Authenticator {
	return &Authenticator{
		secret:       []byte(secret),
		issuer:       issuer,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Parse validates a token and returns its claims
func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.timeProvider.Now),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: token has no subject", errs.ErrUnauthorized)
	}
	return claims, nil
}

// Issue signs a token for userID. The CLI and load script use it; users get theirs from the auth service.
func (a *Authenticator) Issue(userID, role string, ttl time.Duration) (string, error) {
	now := a.timeProvider.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// RequireUser rejects requests without a valid bearer token and stores the user ID in the context
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abort(c, errs.ErrUnauthorized, "Missing bearer token")
			return
		}

		claims, err := a.Parse(token)
		if err != nil {
			a.logger.Debug("Rejected bearer token", map[string]any{
				"error":      err.Error(),
				"request_id": c.GetHeader(RequestIDHeader),
			})
			abort(c, errs.ErrUnauthorized, "Invalid bearer token")
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireUser
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			abort(c, errs.ErrForbidden, "Admin role required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func abort(c *gin.Context, err error, message string) {
	status := http.StatusUnauthorized
	if errors.Is(err, errs.ErrForbidden) {
		status = http.StatusForbidden
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}
