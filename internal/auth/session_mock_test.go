package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/models"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Set(ctx context.Context, identity models.Identity, token string) error {
	return m.Called(identity, token).Error(0)
}

func (m *mockSession) Clear(ctx context.Context) error {
	return m.Called().Error(0)
}

func TestLoginToleratesPersistenceFailure(t *testing.T) {
	sess := new(mockSession)
	sess.On("Set", models.Identity{ID: 1, Role: models.RoleDeveloper}, "tok").
		Return(errors.New("disk full")).Once()

	ctrl := NewController(sess, &stubAPI{login: okLogin})

	res := ctrl.Login(context.Background(), "dev@example.com", "secret1")
	require.True(t, res.Success)
	assert.Equal(t, "/developer-dashboard", res.Landing())
	sess.AssertExpectations(t)
}

func TestFailedLoginLeavesSessionAlone(t *testing.T) {
	sess := new(mockSession)

	ctrl := NewController(sess, &stubAPI{login: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
		return nil, errors.New("connection refused")
	}})

	res := ctrl.Login(context.Background(), "dev@example.com", "secret1")
	assert.False(t, res.Success)
	sess.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	sess.AssertNotCalled(t, "Clear")
}

func TestLogoutClearsOnce(t *testing.T) {
	sess := new(mockSession)
	sess.On("Clear").Return(errors.New("redis down")).Once()

	ctrl := NewController(sess, &stubAPI{logout: func(ctx context.Context) error {
		return errors.New("server down")
	}})

	ctrl.Logout(context.Background())
	sess.AssertExpectations(t)
	sess.AssertNumberOfCalls(t, "Clear", 1)
}
