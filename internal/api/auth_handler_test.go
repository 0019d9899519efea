package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhopper/parkhopper-api/internal/mocks"
	"github.com/parkhopper/parkhopper-api/internal/service/auth"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
	passwordVerifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

	handler := NewAuthHandler(userStore, jwtService, passwordVerifier)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":        "test@example.com",
				"display_name": "Test Planner",
				"password":     "password1234567",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":        "invalid-email",
				"display_name": "Test Planner",
				"password":     "password1234567",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":        "test2@example.com",
				"display_name": "Test Planner",
				"password":     "short",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "missing display name",
			payload: map[string]interface{}{
				"email":    "test3@example.com",
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"email":        "test@example.com",
				"display_name": "Second Planner",
				"password":     "password1234567",
			},
			wantStatus: http.StatusConflict,
			wantToken:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()
			handler.Register(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				err = json.NewDecoder(recorder.Body).Decode(&authResp)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, authResp.UserID)
				assert.Equal(t, "test-token", authResp.AccessToken)
				assert.Equal(t, "test-refresh", authResp.RefreshToken)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	testEmail := "test@example.com"
	testPassword := "password1234567"
	dummyHash := "dummy-hash"

	jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
	userStore := mocks.NewLoginMockUserStore(userID, testEmail, dummyHash)

	tests := []struct {
		name             string
		payload          map[string]interface{}
		passwordVerifier *mocks.MockPasswordVerifier
		wantStatus       int
		wantToken        bool
	}{
		{
			name: "valid login",
			payload: map[string]interface{}{
				"email":    testEmail,
				"password": testPassword,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
			wantStatus:       http.StatusOK,
			wantToken:        true,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nonexistent@example.com",
				"password": testPassword,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: false},
			wantStatus:       http.StatusUnauthorized,
			wantToken:        false,
		},
		{
			name: "invalid password",
			payload: map[string]interface{}{
				"email":    testEmail,
				"password": "wrongpassword",
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: false},
			wantStatus:       http.StatusUnauthorized,
			wantToken:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(userStore, jwtService, tt.passwordVerifier)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()
			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				err = json.NewDecoder(recorder.Body).Decode(&authResp)
				require.NoError(t, err)
				assert.Equal(t, userID, authResp.UserID)
				assert.Equal(t, "test-token", authResp.AccessToken)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		jwtService *mocks.MockJWTService
		wantStatus int
	}{
		{
			name:    "valid refresh token",
			payload: map[string]interface{}{"refresh_token": "good-refresh"},
			jwtService: &mocks.MockJWTService{
				Token:        "new-token",
				RefreshToken: "new-refresh",
				Claims:       &auth.Claims{UserID: userID, TokenType: "refresh"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "expired refresh token",
			payload: map[string]interface{}{"refresh_token": "stale-refresh"},
			jwtService: &mocks.MockJWTService{
				ValidateErr: auth.ErrExpiredRefreshToken,
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "access token presented as refresh token",
			payload: map[string]interface{}{"refresh_token": "access-token"},
			jwtService: &mocks.MockJWTService{
				ValidateErr: auth.ErrWrongTokenType,
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing refresh token",
			payload:    map[string]interface{}{},
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(
				mocks.NewMockUserStore(),
				tt.jwtService,
				&mocks.MockPasswordVerifier{ShouldSucceed: true},
			)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/refresh", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()
			handler.RefreshToken(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp RefreshTokenResponse
				err = json.NewDecoder(recorder.Body).Decode(&resp)
				require.NoError(t, err)
				assert.Equal(t, "new-token", resp.AccessToken)
				assert.Equal(t, "new-refresh", resp.RefreshToken)
			}
		})
	}
}
