// Package docmodel derives the set of printable documents for a procurement
// request. It is pure computation over the normalized request; no I/O.
package docmodel

import (
	"fmt"
	"strings"

	"procdocs/internal/model"
)

// BuildOptions control which documents are derived for a request.
type BuildOptions struct {
	// VendorSplit emits one document per vendor group instead of one combined
	// document covering all items.
	VendorSplit bool
	// ShowPurchaseOrder asks for purchase-order documents. They are still
	// withheld until the request has passed manager approval.
	ShowPurchaseOrder bool
}

// MultipleVendorsLabel is the vendor label used on combined documents whose
// items are not split per vendor.
const MultipleVendorsLabel = "Multiple Vendors"

var typeLabels = map[model.DocumentType]string{
	model.DocumentRequestForm:   "Request Form",
	model.DocumentRequisition:   "Requisition",
	model.DocumentPurchaseOrder: "Purchase Order",
}

var typeSlugs = map[model.DocumentType]string{
	model.DocumentRequestForm:   "request-form",
	model.DocumentRequisition:   "requisition",
	model.DocumentPurchaseOrder: "purchase-order",
}

var fileKindLabels = map[string]string{
	"quotation":      "Quotation",
	"payment_advice": "Payment Advice",
	"invoice":        "Invoice",
	"image":          "Image",
	"waybill":        "Waybill",
}

// BuildDocuments computes the full descriptor set for a request: request-form
// documents first, then requisitions, then purchase orders (when unlocked),
// then one descriptor per miscellaneous uploaded file. Vendor groups keep the
// order in which their vendors first appear in the item list.
//
// When the request carries a frozen item snapshot and has passed manager
// approval, documents are built from the snapshot so later item edits do not
// alter the as-approved record.
func BuildDocuments(req *model.Request, opts BuildOptions) []model.DocumentDescriptor {
	items := req.Items
	if len(req.OriginalItemsSnapshot) > 0 && req.State.AtOrPast(model.StateManagerApproved) {
		items = req.OriginalItemsSnapshot
	}

	types := []model.DocumentType{model.DocumentRequestForm, model.DocumentRequisition}
	if opts.ShowPurchaseOrder && req.State.AtOrPast(model.StateManagerApproved) {
		types = append(types, model.DocumentPurchaseOrder)
	}

	groups := groupItems(items, opts.VendorSplit)

	var out []model.DocumentDescriptor
	for _, typ := range types {
		for _, g := range groups {
			out = append(out, model.DocumentDescriptor{
				Type:        typ,
				Name:        descriptorName(typ, g, opts.VendorSplit),
				DisplayName: displayName(typ, g),
				VendorID:    g.vendorID,
				VendorName:  g.vendorName,
				Items:       g.items,
			})
		}
	}

	out = append(out, fileDescriptors(req.Files)...)
	return out
}

type vendorGroup struct {
	vendorID   string
	vendorName string
	items      []model.LineItem
}

// groupItems partitions items by vendor id in first-seen order. Items without
// a vendor id form their own group. With split disabled a single group covers
// everything under the combined-vendors label.
func groupItems(items []model.LineItem, split bool) []vendorGroup {
	if !split {
		return []vendorGroup{{vendorName: MultipleVendorsLabel, items: items}}
	}

	var order []string
	byID := map[string]*vendorGroup{}
	for _, it := range items {
		g, ok := byID[it.VendorID]
		if !ok {
			g = &vendorGroup{vendorID: it.VendorID, vendorName: it.VendorName}
			byID[it.VendorID] = g
			order = append(order, it.VendorID)
		}
		if g.vendorName == "" && it.VendorName != "" {
			g.vendorName = it.VendorName
		}
		g.items = append(g.items, it)
	}

	out := make([]vendorGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

func descriptorName(typ model.DocumentType, g vendorGroup, split bool) string {
	slug := typeSlugs[typ]
	if !split {
		return slug
	}
	if g.vendorID == "" {
		return slug + "-no-vendor"
	}
	return slug + "-" + slugify(g.vendorID)
}

func displayName(typ model.DocumentType, g vendorGroup) string {
	label := typeLabels[typ]
	vendor := g.vendorName
	if vendor == "" {
		vendor = g.vendorID
	}
	if vendor == "" {
		return label
	}
	return vendor + " " + label
}

// fileDescriptors appends one descriptor per uploaded file, numbering display
// names with a running counter per file kind.
func fileDescriptors(files []model.RequestFile) []model.DocumentDescriptor {
	if len(files) == 0 {
		return nil
	}
	counters := map[string]int{}
	out := make([]model.DocumentDescriptor, 0, len(files))
	for i, f := range files {
		label, ok := fileKindLabels[f.Kind]
		if !ok {
			label = "Attachment"
		}
		counters[label]++
		out = append(out, model.DocumentDescriptor{
			Type:        model.DocumentOther,
			Name:        fmt.Sprintf("file-%d", i+1),
			DisplayName: fmt.Sprintf("%s %d", label, counters[label]),
			FileURL:     f.URL,
		})
	}
	return out
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
