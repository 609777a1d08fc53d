package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "shipping-admin context key " + string(c)
}

// UserIDKey is the key for the authenticated user id in context.Context
const UserIDKey = contextKey("userID")

// UsernameKey is the key for the authenticated username in context.Context
const UsernameKey = contextKey("username")

// RequestIDKey is the key for the per-request id in context.Context
const RequestIDKey = contextKey("requestID")

// CollectionKey is the key for the entity collection name in context.Context
const CollectionKey = contextKey("collection")

// ComponentKey is the key for the emitting component name in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the current operation name in context.Context
const OperationKey = contextKey("operation")

// TokenKey is the key for the raw session token in context.Context
const TokenKey = contextKey("token")

// ClaimsKey is the key for the parsed session claims in context.Context
const ClaimsKey = contextKey("claims")
