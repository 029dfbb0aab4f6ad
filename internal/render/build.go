package render

import (
	"fmt"
	"strconv"

	"procdocs/internal/model"
)

// ErrUnsupportedType is returned for descriptors that have no printable
// layout of their own (uploaded files are served as-is, not rendered).
var ErrUnsupportedType = fmt.Errorf("document type has no printable layout")

// Build maps a descriptor onto its Layout. The vendor argument is optional
// enrichment; passing nil renders the document without a vendor address.
func Build(desc model.DocumentDescriptor, req *model.Request, vendor *model.Vendor) (*Layout, error) {
	switch desc.Type {
	case model.DocumentRequestForm:
		return BuildRequestForm(desc, req), nil
	case model.DocumentRequisition:
		return BuildRequisition(desc, req, vendor), nil
	case model.DocumentPurchaseOrder:
		return BuildPurchaseOrder(desc, req, vendor), nil
	default:
		return nil, ErrUnsupportedType
	}
}

// BuildRequestForm renders the internal request form: header, item table and
// the full (filtered) signature trail. No vendor or delivery block.
func BuildRequestForm(desc model.DocumentDescriptor, req *model.Request) *Layout {
	l := newLayout("PROCUREMENT REQUEST FORM", desc, req)
	l.Notes = []string{"Internal record. Not to be shared with vendors."}
	return l
}

// BuildRequisition renders the requisition sent out for quotation/approval,
// addressed to the vendor with the delivery block included.
func BuildRequisition(desc model.DocumentDescriptor, req *model.Request, vendor *model.Vendor) *Layout {
	l := newLayout("REQUISITION", desc, req)
	l.Vendor = vendorParty(desc, vendor)
	shipTo := ShipTo(req.LogisticsType, req.DeliveryLocation)
	l.ShipTo = &shipTo
	return l
}

// BuildPurchaseOrder renders the vendor-facing commitment document.
func BuildPurchaseOrder(desc model.DocumentDescriptor, req *model.Request, vendor *model.Vendor) *Layout {
	l := newLayout("PURCHASE ORDER", desc, req)
	l.Vendor = vendorParty(desc, vendor)
	shipTo := ShipTo(req.LogisticsType, req.DeliveryLocation)
	l.ShipTo = &shipTo
	l.Notes = []string{"Please quote the PO number on all correspondence, invoices and waybills."}
	return l
}

func newLayout(title string, desc model.DocumentDescriptor, req *model.Request) *Layout {
	l := &Layout{
		Title:      title,
		DocNumber:  req.Number,
		Letterhead: CompanyLetterhead,
		Meta: []Field{
			{Label: "Document", Value: desc.DisplayName},
			{Label: "Department", Value: req.Department},
			{Label: "Destination", Value: req.Destination},
			{Label: "Requested By", Value: req.RequestedBy},
		},
		Table: buildTable(desc.Items, req.Tag),
	}
	if !req.CreatedAt.IsZero() {
		l.Date = req.CreatedAt.Format("02 Jan 2006")
	}
	if !feeTagged(req.Tag) {
		l.ShowGrandTotal = true
		l.GrandTotal = GrandTotal(desc.Items)
	}
	for _, s := range FilterSignatures(req.Department, req.Destination, req.Signatures) {
		line := SignatureLine{Name: s.Name, Role: s.Role, ImageRef: signatureImageRef(s)}
		if !s.SignedAt.IsZero() {
			line.SignedAt = s.SignedAt.Format("02 Jan 2006 15:04")
		}
		l.Signatures = append(l.Signatures, line)
	}
	return l
}

// signatureImageRef prefers the inlined data URI; a raw URL is a best-effort
// fallback when the inline fetch failed.
func signatureImageRef(s model.Signature) string {
	if s.ImageData != "" {
		return s.ImageData
	}
	return s.SignatureURL
}

func vendorParty(desc model.DocumentDescriptor, vendor *model.Vendor) *Party {
	p := Party{Name: desc.VendorName}
	if vendor != nil {
		if vendor.Name != "" {
			p.Name = vendor.Name
		}
		p.Address = vendor.Address
	}
	if p.Name == "" {
		p.Name = desc.VendorID
	}
	if p.Name == "" && p.Address == "" {
		return nil
	}
	return &p
}

func feeTagged(tag string) bool {
	return tag == "shipping" || tag == "clearing"
}

// buildTable lays out the item table. Shipping/clearing-tagged requests show
// fee columns instead of the price/discount/VAT/total columns; the two column
// sets are mutually exclusive.
func buildTable(items []model.LineItem, tag string) Table {
	switch tag {
	case "shipping":
		t := Table{Columns: []string{"No", "Description", "Unit", "Qty", "Shipping Qty", "Shipping Fee"}}
		for i, it := range items {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1), it.Name, it.Unit, qty(it.Quantity),
				qty(it.ShippingQuantity), money(it.ShippingFee),
			})
		}
		return t
	case "clearing":
		t := Table{Columns: []string{"No", "Description", "Unit", "Qty", "Shipping Qty", "Shipping Fee", "Clearing Fee"}}
		for i, it := range items {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1), it.Name, it.Unit, qty(it.Quantity),
				qty(it.ShippingQuantity), money(it.ShippingFee), money(it.ClearingFee),
			})
		}
		return t
	default:
		t := Table{Columns: []string{"No", "Description", "Unit", "Qty", "Unit Price", "Discount", "VAT", "Total"}}
		for i, it := range items {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1), it.Name, it.Unit, qty(it.Quantity),
				money(it.UnitPrice), money(it.Discount), money(it.VAT), money(LineTotal(it)),
			})
		}
		return t
	}
}
