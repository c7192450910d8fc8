package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abkoo/ticketdesk/internal/domain"
	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

func ptr[T any](v T) *T { return &v }

func TestTicketPatchIsEmpty(t *testing.T) {
	assert.True(t, TicketPatch{}.IsEmpty())
	assert.False(t, TicketPatch{Status: ptr(domain.StatusResolved)}.IsEmpty())
	assert.False(t, TicketPatch{Assignee: &AssigneePatch{}}.IsEmpty())
	assert.False(t, TicketPatch{Archived: ptr(true)}.IsEmpty())
}

func TestTicketPatchValidate(t *testing.T) {
	tests := []struct {
		name     string
		patch    TicketPatch
		wantCode string
	}{
		{"valid status", TicketPatch{Status: ptr(domain.StatusClosed)}, ""},
		{"valid combined", TicketPatch{
			Status:   ptr(domain.StatusInProgress),
			Priority: ptr(domain.PriorityHigh),
			Category: ptr(domain.CategoryNetwork),
		}, ""},
		{"unknown status", TicketPatch{Status: ptr(domain.TicketStatus("Reopened"))}, "VALIDATION_FAILED"},
		{"unknown priority", TicketPatch{Priority: ptr(domain.TicketPriority("Urgent"))}, "VALIDATION_FAILED"},
		{"unknown category", TicketPatch{Category: ptr(domain.TicketCategory("Facilities"))}, "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsCode(err, tt.wantCode))
			}
		})
	}
}

func TestBuildTicketUpdate(t *testing.T) {
	t.Run("status only", func(t *testing.T) {
		query, args := buildTicketUpdate(7, TicketPatch{Status: ptr(domain.StatusResolved)})
		assert.Equal(t, "UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2", query)
		require.Len(t, args, 2)
		assert.Equal(t, domain.StatusResolved, args[0])
		assert.Equal(t, int64(7), args[1])
	})

	t.Run("all fields", func(t *testing.T) {
		patch := TicketPatch{
			Status:   ptr(domain.StatusInProgress),
			Priority: ptr(domain.PriorityCritical),
			Category: ptr(domain.CategoryHardware),
			Assignee: &AssigneePatch{UserID: ptr(int64(3))},
			Archived: ptr(true),
		}
		query, args := buildTicketUpdate(42, patch)
		assert.Equal(t,
			"UPDATE tickets SET status=$1, priority=$2, category=$3, assignee_id=$4, archived=$5, updated_at=NOW() WHERE id=$6",
			query)
		require.Len(t, args, 6)
		assert.Equal(t, int64(42), args[5])
	})

	t.Run("clear assignee binds nil", func(t *testing.T) {
		query, args := buildTicketUpdate(5, TicketPatch{Assignee: &AssigneePatch{}})
		assert.Equal(t, "UPDATE tickets SET assignee_id=$1, updated_at=NOW() WHERE id=$2", query)
		require.Len(t, args, 2)
		assert.Nil(t, args[0])
	})
}
