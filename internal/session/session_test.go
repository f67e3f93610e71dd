package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecode_Unverified(t *testing.T) {
	store := NewStore("", 24*time.Hour)
	raw := signToken(t, "whatever-secret", jwt.MapClaims{
		"id":       float64(7),
		"role":     "buyer",
		"fullName": "Andri Wahidin",
		"email":    "andri@example.com",
	})

	claims, err := store.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, RoleBuyer, claims.Role, "role is normalized to upper case")
	assert.Equal(t, "Andri Wahidin", claims.FullName)
}

func TestDecode_UserIDFromUserIdClaim(t *testing.T) {
	store := NewStore("", 24*time.Hour)
	raw := signToken(t, "s", jwt.MapClaims{"userId": "42", "role": "ADMIN"})

	claims, err := store.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestDecode_MissingUserID(t *testing.T) {
	store := NewStore("", 24*time.Hour)
	raw := signToken(t, "s", jwt.MapClaims{"role": "BUYER"})

	_, err := store.Decode(raw)
	assert.Error(t, err)
}

func TestDecode_Verified(t *testing.T) {
	store := NewStore("museum-secret", 24*time.Hour)

	good := signToken(t, "museum-secret", jwt.MapClaims{"id": float64(1), "role": "ADMIN"})
	claims, err := store.Decode(good)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	forged := signToken(t, "attacker-secret", jwt.MapClaims{"id": float64(1), "role": "ADMIN"})
	_, err = store.Decode(forged)
	assert.Error(t, err, "token signed with the wrong secret must be rejected")
}

func TestDecode_Garbage(t *testing.T) {
	store := NewStore("", 24*time.Hour)
	_, err := store.Decode("not-a-jwt")
	assert.Error(t, err)

	_, err = store.Decode("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFromRequest(t *testing.T) {
	store := NewStore("", 24*time.Hour)
	raw := signToken(t, "s", jwt.MapClaims{"id": float64(9), "role": "BUYER"})

	req := httptest.NewRequest(http.MethodGet, "/beli/calender", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: raw})

	claims, err := store.FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, 9, claims.UserID)

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = store.FromRequest(bare)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSetAndClearCookies(t *testing.T) {
	store := NewStore("", 24*time.Hour)

	rec := httptest.NewRecorder()
	store.Set(rec, "tok-value", "buyer")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, TokenCookie, cookies[0].Name)
	assert.Equal(t, "tok-value", cookies[0].Value)
	assert.Equal(t, "BUYER", cookies[1].Value)

	rec = httptest.NewRecorder()
	store.Clear(rec)
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge)
	}
}
