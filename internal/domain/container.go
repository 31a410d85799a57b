package domain

import "encoding/json"

// PartnerRef is a reference to a lending partner. Depending on the query
// path that produced the payload it arrives either as a bare id string or
// as an embedded object, so both shapes decode.
type PartnerRef struct {
	ID string
}

// UnmarshalJSON accepts a bare id string or an object carrying "_id"/"id".
func (r *PartnerRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}

	var obj struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	r.ID = obj.ID
	if r.ID == "" {
		r.ID = obj.AltID
	}

	return nil
}

// SizeMeta holds pricing metadata of a container size.
type SizeMeta struct {
	BasePrice         *Money `json:"base_price,omitempty"`
	RentalPrice       *Money `json:"rental_price,omitempty"`
	RentalPricePerDay *Money `json:"rental_price_per_day,omitempty"`
	DepositValue      *Money `json:"deposit_value,omitempty"`
}

// GroupMeta holds metadata of a container group. Groups may carry the same
// pricing fields as sizes and may embed the lending partner.
type GroupMeta struct {
	SizeMeta

	Partner   PartnerRef `json:"partner,omitempty"`
	PartnerID string     `json:"partner_id,omitempty"`
}

// Container describes one scanned reusable container. Upstream population
// of the partner and pricing fields varies by query path, so every field
// except ID is optional.
type Container struct {
	ID        string     `json:"_id"`
	Partner   PartnerRef `json:"partner,omitempty"`
	PartnerID string     `json:"partner_id,omitempty"`
	Size      SizeMeta   `json:"size,omitempty"`
	Group     GroupMeta  `json:"group,omitempty"`
}
