// Package render maps a document descriptor plus its request onto a Layout, a
// structured printable representation (letterhead, parties, item table,
// signature block). The layout carries explicit content only; the pdf package
// decides geometry and pagination.
package render

// Layout is the renderable tree for one document.
type Layout struct {
	Title      string  `json:"title"`
	DocNumber  string  `json:"doc_number"`
	Date       string  `json:"date"`
	Letterhead Party   `json:"letterhead"`
	Vendor     *Party  `json:"vendor,omitempty"`
	ShipTo     *Party  `json:"ship_to,omitempty"`
	Meta       []Field `json:"meta,omitempty"`

	Table          Table   `json:"table"`
	ShowGrandTotal bool    `json:"show_grand_total"`
	GrandTotal     float64 `json:"grand_total"`

	Notes      []string        `json:"notes,omitempty"`
	Signatures []SignatureLine `json:"signatures,omitempty"`
}

// Party is a named postal party (the company, a vendor, a delivery point).
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Field is one label/value line in the document header block.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is the item table: a header row and pre-formatted body rows.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SignatureLine is one rendered approval entry. ImageRef is a base64 data URI
// when the signature image was inlined, the raw image URL as a best-effort
// fallback, or empty when there is no image at all.
type SignatureLine struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	SignedAt string `json:"signed_at,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
}

// Company letterhead printed on every document.
var CompanyLetterhead = Party{
	Name:    "Deepwater Marine Logistics Ltd",
	Address: "14 Creek Road, Apapa, Lagos, Nigeria",
}

// Fixed delivery addresses keyed by delivery location.
var (
	jettyAddress = Party{
		Name:    "Deepwater Marine Logistics - Jetty",
		Address: "Federal Ocean Terminal, Onne, Rivers State, Nigeria",
	}
	baseAddress = Party{
		Name:    "Deepwater Marine Logistics - Operations Base",
		Address: "Plot 7 Trans-Amadi Industrial Layout, Port Harcourt, Nigeria",
	}
	vesselAddress = Party{
		Name:    "C/O Vessel Master",
		Address: "NPA Anchorage, Lagos, Nigeria",
	}
)

// ShipTo resolves the delivery block from the request's logistics settings.
// Unknown combinations fall back to the company's own address.
func ShipTo(logisticsType, deliveryLocation string) Party {
	if logisticsType == "delivery" {
		switch deliveryLocation {
		case "jetty":
			return jettyAddress
		case "base":
			return baseAddress
		case "vessel":
			return vesselAddress
		}
	}
	return CompanyLetterhead
}
