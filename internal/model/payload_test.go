package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequest_TopLevelItems(t *testing.T) {
	raw := []byte(`{
		"id": "req-1",
		"number": "PR-2026-014",
		"department": "Marine",
		"destination": "Marine",
		"tag": "Shipping",
		"status": "procurement_review",
		"items": [
			{"name": "Hydraulic hose", "quantity": 4, "unit": "pcs", "unitPrice": "125.50", "vendorId": "V1"},
			{"name": "Gasket set", "quantity": 2, "unit": "set", "unitPrice": 80, "vendor": {"id": "V2", "name": "Delta Supplies"}}
		]
	}`)

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "req-1", req.ID)
	assert.Equal(t, "shipping", req.Tag)
	assert.Equal(t, StateProcurementReview, req.State)
	require.Len(t, req.Items, 2)

	assert.Equal(t, 125.50, req.Items[0].UnitPrice)
	assert.Equal(t, "V1", req.Items[0].VendorID)
	assert.Empty(t, req.Items[0].VendorName)

	assert.Equal(t, "V2", req.Items[1].VendorID)
	assert.Equal(t, "Delta Supplies", req.Items[1].VendorName)
}

func TestNormalizeRequest_NestedDataItems(t *testing.T) {
	raw := []byte(`{
		"id": "req-2",
		"state": "Manager_Approved",
		"data": {"items": [{"name": "Paint", "quantity": 10, "unitPrice": 15}]}
	}`)

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, StateManagerApproved, req.State)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "Paint", req.Items[0].Name)
}

func TestNormalizeRequest_NonNumericPriceBecomesNaN(t *testing.T) {
	raw := []byte(`{
		"id": "req-3",
		"items": [
			{"name": "Quoted on delivery", "quantity": 1, "unitPrice": "TBD", "total": "n/a"},
			{"name": "Empty price", "quantity": 1, "unitPrice": ""}
		]
	}`)

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)
	require.Len(t, req.Items, 2)

	assert.True(t, math.IsNaN(req.Items[0].UnitPrice))
	assert.True(t, math.IsNaN(req.Items[0].Total))
	assert.Equal(t, 0.0, req.Items[1].UnitPrice)
}

func TestNormalizeRequest_SnapshotAndVendorIDString(t *testing.T) {
	raw := []byte(`{
		"id": "req-4",
		"items": [{"name": "Live item", "vendor": "V9"}],
		"originalItemsSnapshot": [{"name": "Approved item", "vendorId": "V1", "totalPrice": 300}]
	}`)

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)

	require.Len(t, req.Items, 1)
	assert.Equal(t, "V9", req.Items[0].VendorID)

	require.Len(t, req.OriginalItemsSnapshot, 1)
	assert.Equal(t, "Approved item", req.OriginalItemsSnapshot[0].Name)
	assert.Equal(t, 300.0, req.OriginalItemsSnapshot[0].TotalPrice)
}

func TestNormalizeRequest_SignaturesAndFiles(t *testing.T) {
	raw := []byte(`{
		"id": "req-5",
		"signatures": [{"userId": "u1", "name": "A. Bello", "role": "Vessel Manager", "signatureUrl": "https://files.example.com/sig/u1.png"}],
		"attachments": [{"type": "Quotation", "name": "quote.pdf", "url": "https://files.example.com/quote.pdf"}]
	}`)

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)

	require.Len(t, req.Signatures, 1)
	assert.Equal(t, "Vessel Manager", req.Signatures[0].Role)
	assert.Equal(t, "https://files.example.com/sig/u1.png", req.Signatures[0].SignatureURL)

	require.Len(t, req.Files, 1)
	assert.Equal(t, "quotation", req.Files[0].Kind)
}

func TestNormalizeRequest_Invalid(t *testing.T) {
	_, err := NormalizeRequest([]byte(`{"number": "PR-1"}`))
	assert.Error(t, err)

	_, err = NormalizeRequest([]byte(`not json`))
	assert.Error(t, err)
}
