package render

import (
	"testing"
	"time"

	"procdocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest(tag string) *model.Request {
	return &model.Request{
		ID:          "req-1",
		Number:      "PR-2026-014",
		Department:  "marine",
		Destination: "marine",
		Tag:         tag,
		RequestedBy: "A. Bello",
		CreatedAt:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Signatures: []model.Signature{
			{Name: "A. Bello", Role: "Requester", SignedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
			{Name: "R. Chen", Role: "Accounts Clerk"},
		},
	}
}

func sampleDescriptor() model.DocumentDescriptor {
	return model.DocumentDescriptor{
		Type:        model.DocumentRequisition,
		Name:        "requisition-v1",
		DisplayName: "Apex Marine Requisition",
		VendorID:    "V1",
		VendorName:  "Apex Marine",
		Items: []model.LineItem{
			{Name: "Hydraulic hose", Unit: "pcs", Quantity: 4, UnitPrice: 125.5, TotalPrice: 502,
				ShippingQuantity: 4, ShippingFee: 60, ClearingFee: 25},
			{Name: "Gasket set", Unit: "set", Quantity: 2, UnitPrice: 80, TotalPrice: 160,
				ShippingQuantity: 2, ShippingFee: 30, ClearingFee: 10},
		},
	}
}

func TestBuild_Requisition(t *testing.T) {
	req := sampleRequest("")
	desc := sampleDescriptor()

	l, err := Build(desc, req, &model.Vendor{ID: "V1", Name: "Apex Marine Ltd", Address: "3 Wharf Rd, Apapa"})
	require.NoError(t, err)

	assert.Equal(t, "REQUISITION", l.Title)
	assert.Equal(t, "PR-2026-014", l.DocNumber)
	assert.Equal(t, "14 Mar 2026", l.Date)
	assert.Equal(t, CompanyLetterhead, l.Letterhead)

	require.NotNil(t, l.Vendor)
	assert.Equal(t, "Apex Marine Ltd", l.Vendor.Name)
	assert.Equal(t, "3 Wharf Rd, Apapa", l.Vendor.Address)

	require.NotNil(t, l.ShipTo)

	assert.True(t, l.ShowGrandTotal)
	assert.Equal(t, 662.0, l.GrandTotal)

	// Role filtering applies: the accounts clerk signature is dropped.
	require.Len(t, l.Signatures, 1)
	assert.Equal(t, "Requester", l.Signatures[0].Role)
	assert.Equal(t, "15 Mar 2026 10:30", l.Signatures[0].SignedAt)
}

func TestBuild_VendorFallsBackToDescriptor(t *testing.T) {
	req := sampleRequest("")
	desc := sampleDescriptor()

	l, err := Build(desc, req, nil)
	require.NoError(t, err)

	require.NotNil(t, l.Vendor)
	assert.Equal(t, "Apex Marine", l.Vendor.Name)
	assert.Empty(t, l.Vendor.Address)
}

func TestBuild_RequestFormHasNoVendorBlock(t *testing.T) {
	req := sampleRequest("")
	desc := sampleDescriptor()
	desc.Type = model.DocumentRequestForm

	l, err := Build(desc, req, nil)
	require.NoError(t, err)

	assert.Equal(t, "PROCUREMENT REQUEST FORM", l.Title)
	assert.Nil(t, l.Vendor)
	assert.Nil(t, l.ShipTo)
}

func TestBuild_UnsupportedType(t *testing.T) {
	desc := sampleDescriptor()
	desc.Type = model.DocumentOther

	_, err := Build(desc, sampleRequest(""), nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestBuildTable_FeeColumnGating(t *testing.T) {
	desc := sampleDescriptor()

	t.Run("standard tag shows price columns", func(t *testing.T) {
		l, err := Build(desc, sampleRequest(""), nil)
		require.NoError(t, err)

		assert.Contains(t, l.Table.Columns, "Unit Price")
		assert.Contains(t, l.Table.Columns, "Total")
		assert.NotContains(t, l.Table.Columns, "Shipping Fee")
		assert.NotContains(t, l.Table.Columns, "Clearing Fee")
		assert.True(t, l.ShowGrandTotal)
	})

	t.Run("shipping tag shows fee columns only", func(t *testing.T) {
		l, err := Build(desc, sampleRequest("shipping"), nil)
		require.NoError(t, err)

		assert.Contains(t, l.Table.Columns, "Shipping Qty")
		assert.Contains(t, l.Table.Columns, "Shipping Fee")
		assert.NotContains(t, l.Table.Columns, "Unit Price")
		assert.NotContains(t, l.Table.Columns, "Discount")
		assert.NotContains(t, l.Table.Columns, "VAT")
		assert.NotContains(t, l.Table.Columns, "Total")
		assert.NotContains(t, l.Table.Columns, "Clearing Fee")
		assert.False(t, l.ShowGrandTotal)
	})

	t.Run("clearing tag adds clearing fee", func(t *testing.T) {
		l, err := Build(desc, sampleRequest("clearing"), nil)
		require.NoError(t, err)

		assert.Contains(t, l.Table.Columns, "Shipping Fee")
		assert.Contains(t, l.Table.Columns, "Clearing Fee")
		assert.NotContains(t, l.Table.Columns, "Unit Price")
		assert.False(t, l.ShowGrandTotal)
	})

	t.Run("rows match column count", func(t *testing.T) {
		for _, tag := range []string{"", "shipping", "clearing"} {
			l, err := Build(desc, sampleRequest(tag), nil)
			require.NoError(t, err)
			for _, row := range l.Table.Rows {
				assert.Len(t, row, len(l.Table.Columns))
			}
		}
	})
}

func TestShipTo(t *testing.T) {
	assert.Equal(t, jettyAddress, ShipTo("delivery", "jetty"))
	assert.Equal(t, baseAddress, ShipTo("delivery", "base"))
	assert.Equal(t, vesselAddress, ShipTo("delivery", "vessel"))
	assert.Equal(t, CompanyLetterhead, ShipTo("delivery", "warehouse-9"))
	assert.Equal(t, CompanyLetterhead, ShipTo("pickup", "jetty"))
}

func TestSignatureImageRef(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AAA",
		signatureImageRef(model.Signature{ImageData: "data:image/png;base64,AAA", SignatureURL: "https://x/y.png"}))
	assert.Equal(t, "https://x/y.png",
		signatureImageRef(model.Signature{SignatureURL: "https://x/y.png"}))
	assert.Empty(t, signatureImageRef(model.Signature{}))
}
