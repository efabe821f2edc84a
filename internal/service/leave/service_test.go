package leave

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
	"github.com/sdgtech/payroll-backend-go/internal/repository/memory"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

func TestListByEmployee(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	table := docstore.NewTable("EmployeeID", "Date", "Reason", "Days")
	table.Append("E001", "2025-03-04", "Medical", "1")
	table.Append("E002", "2025-02-01", "Annual", "3")
	table.Append("E001", "2025-01-15", "Annual", "0.5")
	require.NoError(t, store.Write(ctx, docstore.RelationLeaveRecords, table))

	svc := NewLeaveService(workbook.New(store, payroll.Settings{}))

	resp, err := svc.ListByEmployee(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, "E001", resp.EmployeeID)
	assert.True(t, resp.TotalDays.Equal(decimal.RequireFromString("1.5")))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "2025-01-15", resp.Records[0].Date)
	assert.Equal(t, "Medical", resp.Records[1].Reason)

	none, err := svc.ListByEmployee(ctx, "E404")
	require.NoError(t, err)
	assert.Empty(t, none.Records)
	assert.True(t, none.TotalDays.IsZero())
}
