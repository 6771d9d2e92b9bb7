package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

func TestCalculateVAT(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		wantPreVat float64
		wantVat    float64
	}{
		{name: "zero total", total: 0, wantPreVat: 0, wantVat: 0},
		{name: "round figures", total: 277.13, wantPreVat: 259.00, wantVat: 18.13},
		{name: "premium for two", total: 598, wantPreVat: 558.88, wantVat: 39.12},
		{name: "starter for one", total: 199, wantPreVat: 185.98, wantVat: 13.02},
		{name: "small amount", total: 20, wantPreVat: 18.69, wantVat: 1.31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preVat, vat := CalculateVAT(tt.total)
			assert.InDelta(t, tt.wantPreVat, preVat, 0.001)
			assert.InDelta(t, tt.wantVat, vat, 0.001)
			// The two rounded figures must always sum back to the total.
			assert.InDelta(t, tt.total, preVat+vat, 0.001)
		})
	}
}

func TestCreateBillForTable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	bill, err := svc.CreateBillForTable(3, 2, models.BuffetTierPremium, 299)
	require.NoError(t, err)

	assert.Equal(t, 3, bill.TableNumber)
	assert.InDelta(t, 598.0, bill.BuffetCharges, 0.001)
	assert.InDelta(t, 598.0, bill.Total, 0.001)
	assert.InDelta(t, 0.0, bill.SpecialItemsTotal, 0.001)
	assert.InDelta(t, 558.88, bill.PreVatSubtotal, 0.001)
	assert.InDelta(t, 39.12, bill.VatAmount, 0.001)
	assert.Equal(t, models.BillStatusActive, bill.Status)
}

func TestCreateBillForTable_RejectsSecondActiveBill(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	_, err := svc.CreateBillForTable(5, 2, models.BuffetTierStarter, 199)
	require.NoError(t, err)

	_, err = svc.CreateBillForTable(5, 3, models.BuffetTierPremium, 299)
	require.Error(t, err)
	assert.IsType(t, &utils.ConflictError{}, err)

	// A different table is unaffected
	_, err = svc.CreateBillForTable(6, 1, models.BuffetTierStarter, 199)
	assert.NoError(t, err)
}

func TestCreateBillForTable_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	_, err := svc.CreateBillForTable(1, 0, models.BuffetTierStarter, 199)
	assert.IsType(t, &utils.ValidationError{}, err)

	_, err = svc.CreateBillForTable(1, 5, models.BuffetTierStarter, 199)
	assert.IsType(t, &utils.ValidationError{}, err)

	_, err = svc.CreateBillForTable(1, 2, models.BuffetTierNone, 199)
	assert.IsType(t, &utils.ValidationError{}, err)
}

func TestAddItemToBill(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	bill, err := svc.CreateBillForTable(2, 2, models.BuffetTierStarter, 199)
	require.NoError(t, err)

	updated, err := svc.AddItemToBill(bill.ID, BillItemInput{
		MenuItemID:  7,
		NameThai:    "ชาไทย",
		NameEnglish: "Thai Iced Tea",
		Price:       30,
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.InDelta(t, 60.0, updated.SpecialItemsTotal, 0.001)
	assert.InDelta(t, 458.0, updated.Total, 0.001) // 398 buffet + 60 special
	assert.InDelta(t, updated.Total, updated.PreVatSubtotal+updated.VatAmount, 0.001)
	require.Len(t, updated.SpecialItems, 1)
	assert.InDelta(t, 60.0, updated.SpecialItems[0].Subtotal, 0.001)
}

func TestAddItemToBill_Errors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	_, err := svc.AddItemToBill(999, BillItemInput{Price: 10, Quantity: 1})
	assert.IsType(t, &utils.NotFoundError{}, err)

	bill, err := svc.CreateBillForTable(4, 1, models.BuffetTierStarter, 199)
	require.NoError(t, err)

	_, err = svc.AddItemToBill(bill.ID, BillItemInput{Price: 10, Quantity: 0})
	assert.IsType(t, &utils.ValidationError{}, err)

	_, err = svc.ArchiveBill(bill.ID)
	require.NoError(t, err)

	_, err = svc.AddItemToBill(bill.ID, BillItemInput{Price: 10, Quantity: 1})
	assert.IsType(t, &utils.StateError{}, err)
}

func TestArchiveBill_Terminality(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	bill, err := svc.CreateBillForTable(7, 2, models.BuffetTierPremium, 299)
	require.NoError(t, err)

	archived, err := svc.ArchiveBill(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusArchived, archived.Status)
	assert.NotNil(t, archived.ArchivedAt)

	// Archiving twice is always an error, never a silent success.
	_, err = svc.ArchiveBill(bill.ID)
	require.Error(t, err)
	assert.IsType(t, &utils.StateError{}, err)
}

func TestGetActiveBillForTable_NilWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	bill, err := svc.GetActiveBillForTable(9)
	require.NoError(t, err)
	assert.Nil(t, bill)
}

func TestGetPrintableBill(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	bill, err := svc.CreateBillForTable(3, 2, models.BuffetTierPremium, 299)
	require.NoError(t, err)
	_, err = svc.AddItemToBill(bill.ID, BillItemInput{
		NameThai:    "โค้ก",
		NameEnglish: "Coke",
		Price:       20,
		Quantity:    1,
	})
	require.NoError(t, err)

	printable, err := svc.GetPrintableBill(3)
	require.NoError(t, err)

	assert.Equal(t, "MOOMOO Restaurant", printable.Restaurant.Name)
	assert.Equal(t, 3, printable.Bill.TableNumber)
	require.Len(t, printable.Bill.Items, 2)
	assert.Equal(t, "Premium Buffet × 2", printable.Bill.Items[0].Description)
	assert.Equal(t, "โค้ก (Coke) × 1", printable.Bill.Items[1].Description)
	assert.InDelta(t, 618.0, printable.Bill.Total, 0.001)
	assert.Equal(t, "7%", printable.Bill.VatRate)
	assert.InDelta(t, printable.Bill.Total, printable.Bill.Subtotal+printable.Bill.VatAmount, 0.001)

	// No active bill after archiving
	_, err = svc.ArchiveBill(bill.ID)
	require.NoError(t, err)
	_, err = svc.GetPrintableBill(3)
	assert.IsType(t, &utils.NotFoundError{}, err)
}

func TestGetHistoricalBills_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	// Archive five bills on different tables
	for n := 1; n <= 5; n++ {
		bill, err := svc.CreateBillForTable(n, 1, models.BuffetTierStarter, 199)
		require.NoError(t, err)
		_, err = svc.ArchiveBill(bill.ID)
		require.NoError(t, err)
	}
	// One still-active bill must not appear in history
	_, err := svc.CreateBillForTable(6, 1, models.BuffetTierStarter, 199)
	require.NoError(t, err)

	history, err := svc.GetHistoricalBills(BillHistoryFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), history.Pagination.Total)
	assert.Equal(t, 3, history.Pagination.Pages)
	assert.Len(t, history.Data, 2)

	history, err = svc.GetHistoricalBills(BillHistoryFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, history.Data, 1)

	// Table filter
	history, err = svc.GetHistoricalBills(BillHistoryFilter{TableNumber: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), history.Pagination.Total)
	require.Len(t, history.Data, 1)
	assert.Equal(t, 3, history.Data[0].TableNumber)
}
