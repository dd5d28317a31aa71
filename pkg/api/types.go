package api

import "github.com/samvad-hq/storefront-client/internal/domain"

// Aliases so callers outside this module can build request payloads.
type (
	Registration = domain.Registration
	User         = domain.User
	Token        = domain.Token
	Product      = domain.Product
	Cart         = domain.Cart
	CartItem     = domain.CartItem
	Message      = domain.Message
)
