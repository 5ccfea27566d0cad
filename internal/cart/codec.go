package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/shopspring/decimal"
)

// record is the persisted shape of a cart line, shared with the storefront scripts:
// {"productName": string, "productNameEn"?: string, "price": number, "id"?: string|number}.
type record struct {
	ProductName   string      `json:"productName"`
	ProductNameEn *string     `json:"productNameEn,omitempty"`
	Price         json.Number `json:"price"`
	ID            recordID    `json:"id,omitempty"`
}

// recordID accepts the numeric ids written by the browser (Date.now() + Math.random())
// and keeps them in their textual form.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = recordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id[%s] is neither a string nor a number", data)
	}

	*id = recordID(n.String())
	return nil
}

// decodeCart reports whether any item had no id and was given a fresh one.
func decodeCart(data string) (domain.Cart, bool, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return domain.Cart{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var (
		items      = make([]domain.CartItem, 0, len(records))
		assignedID bool
	)

	for i, rec := range records {
		price, err := decimal.NewFromString(rec.Price.String())
		if err != nil {
			return domain.Cart{}, false, fmt.Errorf("item[%d] price[%s] is not valid: %w", i, rec.Price, err)
		}

		id := domain.ItemID(rec.ID)
		if id == "" {
			id = domain.NewItemID()
			assignedID = true
		}

		items = append(items, domain.CartItem{
			ID:    id,
			Name:  domain.LocalizedName{Ru: rec.ProductName, En: rec.ProductNameEn},
			Price: domain.RUB(price),
		})
	}

	return domain.Cart{Items: items}, assignedID, nil
}

func encodeCart(cart domain.Cart) (string, error) {
	records := make([]record, 0, len(cart.Items))

	for _, item := range cart.Items {
		records = append(records, record{
			ProductName:   item.Name.Ru,
			ProductNameEn: item.Name.En,
			Price:         json.Number(item.Price.Amount.String()),
			ID:            recordID(item.ID),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}
