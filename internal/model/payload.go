package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// The procurement backend is loose about payload shape: line items arrive at
// the top level or nested under "data", money fields come as numbers or
// strings, and an item's vendor is either an embedded object or a bare id.
// NormalizeRequest is the single place where all of that is mapped onto the
// strict Request type; downstream code never probes alternative shapes.

// flexFloat decodes a JSON number or a numeric string. A non-numeric string
// decodes to NaN so that totals math can skip it instead of failing the whole
// payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = flexFloat(math.NaN())
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = flexFloat(math.NaN())
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type itemPayload struct {
	Name             string          `json:"name"`
	Quantity         flexFloat       `json:"quantity"`
	Unit             string          `json:"unit"`
	UnitPrice        flexFloat       `json:"unitPrice"`
	Discount         flexFloat       `json:"discount"`
	VAT              flexFloat       `json:"vat"`
	Total            flexFloat       `json:"total"`
	TotalPrice       flexFloat       `json:"totalPrice"`
	Vendor           json.RawMessage `json:"vendor,omitempty"`
	VendorID         string          `json:"vendorId,omitempty"`
	ShippingQuantity flexFloat       `json:"shippingQuantity"`
	ShippingFee      flexFloat       `json:"shippingFee"`
	ClearingFee      flexFloat       `json:"clearingFee"`
}

type signaturePayload struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Timestamp    time.Time `json:"timestamp"`
	SignatureURL string    `json:"signatureUrl"`
}

type filePayload struct {
	Kind        string `json:"kind"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

type requestPayload struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	Title            string `json:"title"`
	Department       string `json:"department"`
	Destination      string `json:"destination"`
	Tag              string `json:"tag"`
	LogisticsType    string `json:"logisticsType"`
	DeliveryLocation string `json:"deliveryLocation"`
	Status           string `json:"status"`
	State            string `json:"state"`
	RequestedBy      string    `json:"requestedBy"`
	CreatedAt        time.Time `json:"createdAt"`

	Items []itemPayload `json:"items"`
	Data  *struct {
		Items []itemPayload `json:"items"`
	} `json:"data,omitempty"`
	OriginalItemsSnapshot []itemPayload      `json:"originalItemsSnapshot,omitempty"`
	Signatures            []signaturePayload `json:"signatures,omitempty"`
	Files                 []filePayload      `json:"files,omitempty"`
	Attachments           []filePayload      `json:"attachments,omitempty"`
}

// NormalizeRequest decodes a raw backend payload into a Request.
func NormalizeRequest(raw []byte) (*Request, error) {
	var p requestPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode request payload: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("request payload has no id")
	}

	items := p.Items
	if len(items) == 0 && p.Data != nil {
		items = p.Data.Items
	}

	state := p.State
	if state == "" {
		state = p.Status
	}

	files := p.Files
	if len(files) == 0 {
		files = p.Attachments
	}

	req := &Request{
		ID:                    p.ID,
		Number:                p.Number,
		Title:                 p.Title,
		Department:            p.Department,
		Destination:           p.Destination,
		Tag:                   strings.ToLower(strings.TrimSpace(p.Tag)),
		LogisticsType:         strings.ToLower(strings.TrimSpace(p.LogisticsType)),
		DeliveryLocation:      strings.ToLower(strings.TrimSpace(p.DeliveryLocation)),
		State:                 WorkflowState(strings.ToLower(strings.TrimSpace(state))),
		RequestedBy:           p.RequestedBy,
		CreatedAt:             p.CreatedAt,
		Items:                 normalizeItems(items),
		OriginalItemsSnapshot: normalizeItems(p.OriginalItemsSnapshot),
		Signatures:            normalizeSignatures(p.Signatures),
		Files:                 normalizeFiles(files),
	}
	return req, nil
}

func normalizeItems(in []itemPayload) []LineItem {
	if len(in) == 0 {
		return nil
	}
	out := make([]LineItem, 0, len(in))
	for _, it := range in {
		li := LineItem{
			Name:             it.Name,
			Quantity:         float64(it.Quantity),
			Unit:             it.Unit,
			UnitPrice:        float64(it.UnitPrice),
			Discount:         float64(it.Discount),
			VAT:              float64(it.VAT),
			Total:            float64(it.Total),
			TotalPrice:       float64(it.TotalPrice),
			VendorID:         it.VendorID,
			ShippingQuantity: float64(it.ShippingQuantity),
			ShippingFee:      float64(it.ShippingFee),
			ClearingFee:      float64(it.ClearingFee),
		}
		li.VendorID, li.VendorName = vendorRef(it.Vendor, it.VendorID)
		out = append(out, li)
	}
	return out
}

// vendorRef resolves the item's vendor field, which is either an embedded
// object, a bare id string, or absent (then the sibling vendorId applies).
func vendorRef(raw json.RawMessage, fallbackID string) (id, name string) {
	id = fallbackID
	if len(raw) == 0 {
		return id, ""
	}
	s := strings.TrimSpace(string(raw))
	if s == "null" || s == "" {
		return id, ""
	}
	if strings.HasPrefix(s, "{") {
		var obj struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.ID != "" {
				id = obj.ID
			}
			return id, obj.Name
		}
		return id, ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil && str != "" {
		id = str
	}
	return id, ""
}

func normalizeSignatures(in []signaturePayload) []Signature {
	if len(in) == 0 {
		return nil
	}
	out := make([]Signature, 0, len(in))
	for _, s := range in {
		out = append(out, Signature{
			UserID:       s.UserID,
			Name:         s.Name,
			Role:         s.Role,
			SignedAt:     s.Timestamp,
			SignatureURL: s.SignatureURL,
		})
	}
	return out
}

func normalizeFiles(in []filePayload) []RequestFile {
	if len(in) == 0 {
		return nil
	}
	out := make([]RequestFile, 0, len(in))
	for _, f := range in {
		kind := f.Kind
		if kind == "" {
			kind = f.Type
		}
		out = append(out, RequestFile{
			Kind:        strings.ToLower(strings.TrimSpace(kind)),
			Name:        f.Name,
			URL:         f.URL,
			ContentType: f.ContentType,
		})
	}
	return out
}
