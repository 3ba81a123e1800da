package usershandler

import (
	"testing"

	"office-admin-backend/config"
	orgfakes "office-admin-backend/lib/org/org-fakes"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	userapimodels "office-admin-backend/models/api/user"

	"github.com/stretchr/testify/require"
)

func TestCreateAndLogin(t *testing.T) {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	config.Conf = conf

	org := orgfakes.NewOrg()
	handler := NewInstance(org.Users)

	id, err := handler.Create(userapimodels.CreateUser{
		UserData: userapimodels.UserData{
			Email:     "hr@example.com",
			FirstName: "Анна",
			LastName:  "Кадрова",
			Role:      models.HRRole,
		},
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEqual(t, "secret123", org.Users.Recs[id].Password)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := handler.Create(userapimodels.CreateUser{
			UserData: userapimodels.UserData{Email: "HR@example.com", FirstName: "Другая", Role: models.StaffRole},
			Password: "secret123",
		})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("login", func(t *testing.T) {
		response, err := handler.Login("hr@example.com", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, response.Token)

		_, err = handler.Login("hr@example.com", "wrong")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
		_, err = handler.Login("nobody@example.com", "secret123")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("blocked user", func(t *testing.T) {
		org.Users.Recs[id].IsActive = false
		_, err := handler.Login("hr@example.com", "secret123")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("get", func(t *testing.T) {
		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, "Анна Кадрова", view.FullName)
		_, err = handler.Get("missing")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}

func TestSetActive(t *testing.T) {
	org := orgfakes.NewOrg()
	handler := NewInstance(org.Users)
	_, userID := org.AddEmployee("Иван", org.AddUnit("Дирекция", ""), models.StaffRole)

	require.NoError(t, handler.SetActive(userID, false))
	require.False(t, org.Users.Recs[userID].IsActive)
	err := handler.SetActive("missing", true)
	require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
}
