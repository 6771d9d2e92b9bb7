package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

func TestOpenTable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 3, models.TableStatusAvailable)

	view, creds, err := svc.OpenTable(3, 2, models.BuffetTierPremium)
	require.NoError(t, err)

	assert.Equal(t, models.TableStatusOpen, view.Status)
	assert.Equal(t, 2, view.CustomerCount)
	assert.Equal(t, models.BuffetTierPremium, view.BuffetTier)
	assert.InDelta(t, 299.0, view.BuffetPrice, 0.001)
	require.NotNil(t, view.OpenedAt)
	require.NotNil(t, view.CurrentBillID)

	require.NotNil(t, creds)
	assert.Len(t, creds.Pin, 6)
	assert.NotEmpty(t, creds.EncryptedID)

	// Opening the table creates the session bill.
	bill, err := svc.billing.GetBillByID(*view.CurrentBillID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusActive, bill.Status)
	assert.InDelta(t, 598.0, bill.Total, 0.001)
}

func TestOpenTable_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 1, models.TableStatusAvailable)

	_, _, err := svc.OpenTable(1, 0, models.BuffetTierStarter)
	assert.IsType(t, &utils.ValidationError{}, err)

	_, _, err = svc.OpenTable(1, 5, models.BuffetTierStarter)
	assert.IsType(t, &utils.ValidationError{}, err)

	_, _, err = svc.OpenTable(1, 2, "Deluxe")
	assert.IsType(t, &utils.ValidationError{}, err)

	_, _, err = svc.OpenTable(42, 2, models.BuffetTierStarter)
	assert.IsType(t, &utils.NotFoundError{}, err)
}

func TestOpenTable_ConflictWhenAlreadyOpen(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 2, models.TableStatusAvailable)

	_, _, err := svc.OpenTable(2, 1, models.BuffetTierStarter)
	require.NoError(t, err)

	_, _, err = svc.OpenTable(2, 3, models.BuffetTierPremium)
	assert.IsType(t, &utils.ConflictError{}, err)
}

func TestCloseTable_ArchivesBillAndResets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 4, models.TableStatusAvailable)

	opened, _, err := svc.OpenTable(4, 2, models.BuffetTierStarter)
	require.NoError(t, err)
	billID := *opened.CurrentBillID

	closed, err := svc.CloseTable(4)
	require.NoError(t, err)

	assert.Equal(t, models.TableStatusAvailable, closed.Status)
	assert.Zero(t, closed.CustomerCount)
	assert.Equal(t, models.BuffetTierNone, closed.BuffetTier)
	assert.Nil(t, closed.CurrentBillID)
	assert.Empty(t, closed.Pin)

	bill, err := svc.billing.GetBillByID(billID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusArchived, bill.Status)
	assert.NotNil(t, bill.ArchivedAt)

	// The table is immediately seatable again.
	_, _, err = svc.OpenTable(4, 1, models.BuffetTierStarter)
	require.NoError(t, err)
}

func TestCloseTable_RequiresOpenSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 5, models.TableStatusAvailable)

	_, err := svc.CloseTable(5)
	assert.IsType(t, &utils.StateError{}, err)

	_, err = svc.CloseTable(42)
	assert.IsType(t, &utils.NotFoundError{}, err)
}

func TestCloseTable_ToleratesAlreadyArchivedBill(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 6, models.TableStatusAvailable)

	opened, _, err := svc.OpenTable(6, 2, models.BuffetTierPremium)
	require.NoError(t, err)

	_, err = svc.billing.ArchiveBill(*opened.CurrentBillID)
	require.NoError(t, err)

	closed, err := svc.CloseTable(6)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusAvailable, closed.Status)
}

func TestVerifyPin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 7, models.TableStatusAvailable)

	_, creds, err := svc.OpenTable(7, 2, models.BuffetTierStarter)
	require.NoError(t, err)

	require.NoError(t, svc.VerifyPin(7, creds.Pin))

	err = svc.VerifyPin(7, "000000")
	assert.IsType(t, &utils.ValidationError{}, err)

	seedTable(t, db, 8, models.TableStatusAvailable)
	err = svc.VerifyPin(8, creds.Pin)
	assert.IsType(t, &utils.StateError{}, err)
}

func TestGetAllTables_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 1, models.TableStatusAvailable)
	seedTable(t, db, 2, models.TableStatusAvailable)
	seedTable(t, db, 3, models.TableStatusAvailable)

	_, _, err := svc.OpenTable(2, 2, models.BuffetTierStarter)
	require.NoError(t, err)

	all, err := svc.GetAllTables("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	open, err := svc.GetAllTables(models.TableStatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 2, open[0].TableNumber)

	available, err := svc.GetAllTables(models.TableStatusAvailable)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestTableView_DiningTimeIsDerived(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTableService(db)

	seedTable(t, db, 9, models.TableStatusAvailable)

	_, _, err := svc.OpenTable(9, 2, models.BuffetTierPremium)
	require.NoError(t, err)

	view, err := svc.GetTableByNumber(9)
	require.NoError(t, err)

	// Fresh session: close to the full 90 minutes, never above it.
	assert.LessOrEqual(t, view.DiningTimeRemaining, models.DefaultSessionLength.Milliseconds())
	assert.Greater(t, view.DiningTimeRemaining, (models.DefaultSessionLength - time.Minute).Milliseconds())
	assert.False(t, view.IsOvertime)

	// Backdate the session past its window; remaining clamps at zero.
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.Model(&models.Table{}).Where("table_number = ?", 9).Update("opened_at", past).Error)

	view, err = svc.GetTableByNumber(9)
	require.NoError(t, err)
	assert.EqualValues(t, 0, view.DiningTimeRemaining)
	assert.True(t, view.IsOvertime)
}
