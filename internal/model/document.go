package model

import "time"

// DocumentType identifies which kind of printable artifact a descriptor
// stands for.
type DocumentType string

const (
	DocumentRequestForm   DocumentType = "requestForm"
	DocumentRequisition   DocumentType = "requisition"
	DocumentPurchaseOrder DocumentType = "purchaseOrder"
	// DocumentOther covers arbitrary uploaded files attached to a request.
	DocumentOther DocumentType = "other"
)

// DocumentDescriptor describes one exportable/previewable artifact of a
// request: what document, covering which items, for which vendor. Descriptors
// are computed on demand and never persisted.
type DocumentDescriptor struct {
	Type DocumentType `json:"type"`
	// Name is a stable key unique within one request's descriptor set, usable
	// in URLs.
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	// VendorID is empty when the descriptor applies to all items or the items
	// carry no vendor.
	VendorID   string     `json:"vendor_id,omitempty"`
	VendorName string     `json:"vendor_name,omitempty"`
	Items      []LineItem `json:"items,omitempty"`
	// FileURL is set only for DocumentOther descriptors.
	FileURL string `json:"file_url,omitempty"`
}

// ExportRecord is the persisted metadata of a generated PDF kept in object
// storage. The PDF itself lives under StoragePath.
type ExportRecord struct {
	ID           string       `json:"id"`
	RequestID    string       `json:"request_id"`
	DocumentName string       `json:"document_name"`
	DocumentType DocumentType `json:"document_type"`
	Filename     string       `json:"filename"`
	StoragePath  string       `json:"storage_path"`
	Size         int64        `json:"size"`
	ContentType  string       `json:"content_type"`
	Pages        int          `json:"pages"`
	CreatedAt    time.Time    `json:"created_at"`
}
