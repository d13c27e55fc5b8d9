package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/qitaat/seller-dashboard-backend/pkg/auth"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "seller-dashboard", ExpirationMinutes: 15}

func mintToken(t *testing.T, payload pkgAuth.AccessTokenPayload) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), payload)
	require.NoError(t, err)
	return token
}

type capturedContext struct {
	userID   uuid.UUID
	sellerID uuid.UUID
	role     enums.MemberRole
	called   bool
}

func captureHandler(c *capturedContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.userID, _ = UserIDFromContext(r.Context())
		c.sellerID, _ = SellerIDFromContext(r.Context())
		c.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMissingToken(t *testing.T) {
	var got capturedContext
	handler := Auth(testJWT, logger.Nop())(captureHandler(&got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seller/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, got.called)
}

func TestAuthInvalidToken(t *testing.T) {
	var got capturedContext
	handler := Auth(testJWT, logger.Nop())(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, got.called)
}

func TestAuthSeedsClaims(t *testing.T) {
	userID := uuid.New()
	sellerID := uuid.New()
	token := mintToken(t, pkgAuth.AccessTokenPayload{UserID: userID, SellerID: &sellerID, Role: enums.MemberRoleOwner})

	var got capturedContext
	handler := Auth(testJWT, logger.Nop())(captureHandler(&got))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, got.userID)
	assert.Equal(t, sellerID, got.sellerID)
	assert.Equal(t, enums.MemberRoleOwner, got.role)
}

type stubResolver struct {
	sellerID uuid.UUID
	err      error
	calls    int
}

func (s *stubResolver) SellerIDForUser(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	s.calls++
	return s.sellerID, s.err
}

func TestSellerContextUsesTokenSeller(t *testing.T) {
	sellerID := uuid.New()
	resolver := &stubResolver{}
	var got capturedContext
	handler := SellerContext(resolver, logger.Nop())(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSellerID(WithUserID(req.Context(), uuid.New()), sellerID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, sellerID, got.sellerID)
	assert.Zero(t, resolver.calls)
}

func TestSellerContextResolvesByUser(t *testing.T) {
	sellerID := uuid.New()
	resolver := &stubResolver{sellerID: sellerID}
	var got capturedContext
	handler := SellerContext(resolver, logger.Nop())(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, sellerID, got.sellerID)
	assert.Equal(t, 1, resolver.calls)
}

func TestSellerContextErrors(t *testing.T) {
	cases := []struct {
		name     string
		resolver *stubResolver
		withUser bool
		status   int
	}{
		{name: "no user", resolver: &stubResolver{}, status: http.StatusUnauthorized},
		{name: "user without seller", resolver: &stubResolver{err: pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")}, withUser: true, status: http.StatusForbidden},
		{name: "lookup failure", resolver: &stubResolver{err: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("db"), "lookup")}, withUser: true, status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got capturedContext
			handler := SellerContext(tc.resolver, logger.Nop())(captureHandler(&got))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.withUser {
				req = req.WithContext(WithUserID(req.Context(), uuid.New()))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			assert.False(t, got.called)
		})
	}
}
