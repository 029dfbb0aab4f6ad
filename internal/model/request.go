package model

import "time"

// Request is the normalized procurement request as consumed by this service.
// It is a read-only projection of backend state; nothing here is mutated or
// written back. All loose backend payload shapes are mapped onto this type at
// the normalization boundary (see payload.go).
type Request struct {
	ID               string        `json:"id"`
	Number           string        `json:"number"`
	Title            string        `json:"title"`
	Department       string        `json:"department"`
	Destination      string        `json:"destination"`
	Tag              string        `json:"tag"` // "", "shipping" or "clearing"
	LogisticsType    string        `json:"logistics_type"`
	DeliveryLocation string        `json:"delivery_location"`
	State            WorkflowState `json:"state"`
	RequestedBy      string        `json:"requested_by"`
	CreatedAt        time.Time     `json:"created_at"`

	Items []LineItem `json:"items"`
	// OriginalItemsSnapshot freezes the line items as they were when the
	// request passed manager approval. When present it replaces live items in
	// generated documents, so the as-approved record survives later edits.
	OriginalItemsSnapshot []LineItem    `json:"original_items_snapshot,omitempty"`
	Signatures            []Signature   `json:"signatures,omitempty"`
	Files                 []RequestFile `json:"files,omitempty"`
}

// LineItem is a single request line. Monetary fields may be NaN when the
// backend sent a non-numeric value; consumers must treat NaN as zero.
type LineItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	Discount   float64 `json:"discount"`
	VAT        float64 `json:"vat"`
	Total      float64 `json:"total"`
	TotalPrice float64 `json:"total_price"`
	VendorID   string  `json:"vendor_id,omitempty"`
	VendorName string  `json:"vendor_name,omitempty"`

	// Fee fields, meaningful only when the request is tagged shipping/clearing.
	ShippingQuantity float64 `json:"shipping_quantity,omitempty"`
	ShippingFee      float64 `json:"shipping_fee,omitempty"`
	ClearingFee      float64 `json:"clearing_fee,omitempty"`
}

// Signature is a recorded approval event attached to a request.
type Signature struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	SignedAt     time.Time `json:"signed_at"`
	SignatureURL string    `json:"signature_url,omitempty"`
	// ImageData holds the signature image inlined as a base64 data URI so a
	// generated document does not depend on live access to the image asset.
	// Falls back to the raw SignatureURL when the fetch fails.
	ImageData string `json:"image_data,omitempty"`
}

// Vendor is the enrichment record resolved when a line item references a
// vendor by id instead of embedding its details.
type Vendor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RequestFile is a miscellaneous uploaded file attached to a request
// (quotations, payment advice, invoices, images, waybills).
type RequestFile struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
}
