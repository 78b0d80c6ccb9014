package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cardvault/internal/model"
)

func TestAuditService_Recent(t *testing.T) {
	t.Run("returns the capped recent window", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockRepo.On("ListRecent", mock.Anything, 100).Return([]model.AuditLog{
			{ID: 2, ActionType: "STORE_CARD"},
			{ID: 1, ActionType: "ADD_CUSTOMER"},
		}, nil)

		svc := NewAuditService(mockRepo)
		out, err := svc.Recent(context.Background())

		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, uint(2), out[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockRepo.On("ListRecent", mock.Anything, 100).Return(nil, gorm.ErrInvalidDB)

		svc := NewAuditService(mockRepo)
		_, err := svc.Recent(context.Background())

		assert.ErrorIs(t, err, gorm.ErrInvalidDB)
		mockRepo.AssertExpectations(t)
	})
}
