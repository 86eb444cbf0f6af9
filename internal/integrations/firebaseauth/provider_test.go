package firebaseauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type verifierStub struct {
	tokens map[string]*auth.Token
}

func (v *verifierStub) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := v.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token expired")
}

func newRequest(authHeader string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	return r
}

func TestIdentify(t *testing.T) {
	provider := NewWithVerifier(&verifierStub{tokens: map[string]*auth.Token{
		"admin-token": {UID: "admin-1", Claims: map[string]interface{}{"role": "admin"}},
		"user-token":  {UID: "user-1", Claims: map[string]interface{}{}},
		"odd-token":   {UID: "user-2", Claims: map[string]interface{}{"role": 42}},
	}}, "", logger.NewNop())

	tests := []struct {
		name    string
		header  string
		want    *domain.User
		wantErr error
	}{
		{name: "admin claim", header: "Bearer admin-token", want: &domain.User{UID: "admin-1", Role: domain.RoleAdmin}},
		{name: "no claim", header: "bearer user-token", want: &domain.User{UID: "user-1", Role: domain.RoleUser}},
		{name: "non string claim", header: "Bearer odd-token", want: &domain.User{UID: "user-2", Role: domain.RoleUser}},
		{name: "missing header", wantErr: ErrMissingToken},
		{name: "basic auth", header: "Basic Zm9vOmJhcg==", wantErr: ErrMissingToken},
		{name: "empty bearer", header: "Bearer   ", wantErr: ErrMissingToken},
		{name: "rejected token", header: "Bearer stale", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := provider.Identify(newRequest(tt.header))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, user)
		})
	}
}

func TestIdentify_CustomRoleClaim(t *testing.T) {
	provider := NewWithVerifier(&verifierStub{tokens: map[string]*auth.Token{
		"t": {UID: "a", Claims: map[string]interface{}{"smc_role": "admin", "role": "user"}},
	}}, "smc_role", logger.NewNop())

	user, err := provider.Identify(newRequest("Bearer t"))
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}
