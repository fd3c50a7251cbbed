package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

func TestAuditLogsAreListedNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for i := range 3 {
		require.NoError(t, store.AppendAuditLog(ctx, ports.AuditLog{
			AuditID:  fmt.Sprintf("audit-%d", i),
			ActorID:  "admin",
			Action:   "sponsor.create",
			TargetID: int64(i + 1),
		}))
	}

	rows, err := store.ListRecentAuditLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "audit-2", rows[0].AuditID)
	assert.Equal(t, "audit-1", rows[1].AuditID)

	rows, err = store.ListRecentAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestNewIDIsUnique(t *testing.T) {
	store := NewStore()
	first, err := store.NewID(context.Background())
	require.NoError(t, err)
	second, err := store.NewID(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "UTC", store.Now().Location().String())
}
