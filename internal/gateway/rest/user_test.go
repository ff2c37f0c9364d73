package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserGateway_Update тестирует обновление пользователя без пароля
func TestUserGateway_Update(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeUser(w, domain.User{UUID: "u-1", Name: "Anna Kelly", Email: "anna@workshop.local"})
	}))
	users := NewUserGateway(client)

	updated, err := users.Update(context.Background(), "u-1", domain.UserUpdateDTO{
		Name:     "Anna Kelly",
		Email:    "anna@workshop.local",
		RoleUUID: "r-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/users/u-1", gotPath)
	assert.Equal(t, "Anna Kelly", updated.Name)
	// Пароль в payload обновления отсутствует в принципе.
	assert.NotContains(t, gotBody, "password")
}

// TestUserGateway_ChangePassword тестирует отдельную операцию смены пароля
func TestUserGateway_ChangePassword(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeUser(w, domain.User{UUID: "u-1", Name: "Anna Kelly"})
	}))
	users := NewUserGateway(client)

	_, err := users.ChangePassword(context.Background(), "u-1", domain.ChangePasswordDTO{
		NewPassword: "s3cret-2",
	})
	require.NoError(t, err)

	assert.Equal(t, "/users/u-1/change-password", gotPath)
	assert.Equal(t, "s3cret-2", gotBody["newPassword"])
}

func writeUser(w http.ResponseWriter, user domain.User) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
