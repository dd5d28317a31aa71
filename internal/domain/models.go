package domain

import "encoding/json"

// Domain contains the payloads exchanged with the storefront API.

// Registration is the body sent to POST /auth.
type Registration struct {
	Username  string `json:"username" yaml:"username"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Password  string `json:"password" yaml:"-"`
}

// User is the account representation returned after registration.
type User struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Username  string `json:"username" yaml:"username"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Token is the payload returned by POST /auth/token.
type Token struct {
	AccessToken string `json:"access_token" yaml:"access_token"`
	TokenType   string `json:"token_type" yaml:"token_type"`
}

// Product is a catalogue entry. Editable fields are always sent so zero values
// (stock 0, an empty description) reach the server. Fields the server returns
// that are not modelled here are kept in Extra and sent back on update.
type Product struct {
	ID          int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Stock       int     `json:"stock" yaml:"stock"`
	ImageURL    string  `json:"image_url" yaml:"image_url"`
	Category    string  `json:"category" yaml:"category"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// productFields has Product's layout without its JSON methods.
type productFields Product

var productKeys = []string{"id", "name", "description", "price", "stock", "image_url", "category"}

// MarshalJSON writes the modelled fields merged over Extra.
func (p Product) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(productFields(p))
	if err != nil || len(p.Extra) == 0 {
		return known, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(p.Extra)+len(fields))
	for k, v := range p.Extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON fills the modelled fields and collects everything else into Extra.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields productFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range productKeys {
		delete(raw, k)
	}

	*p = Product(fields)
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// CartItem is one line of a cart as reported by the API.
type CartItem struct {
	ID        int64    `json:"id" yaml:"id"`
	ProductID int64    `json:"product_id" yaml:"product_id"`
	Quantity  int      `json:"quantity" yaml:"quantity"`
	Product   *Product `json:"product,omitempty" yaml:"product,omitempty"`
}

type Cart struct {
	ID     int64      `json:"id,omitempty" yaml:"id,omitempty"`
	UserID int64      `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Items  []CartItem `json:"items" yaml:"items"`
	Total  float64    `json:"total,omitempty" yaml:"total,omitempty"`
}

// Message is the generic acknowledgement returned by delete-style endpoints.
type Message struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}
