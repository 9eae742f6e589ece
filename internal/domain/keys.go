package domain

type CtxKey string

const (
	// KeyPrincipal holds the authenticated Principal on the gin context
	KeyPrincipal CtxKey = "Principal"
	KeyRequestID CtxKey = "RequestID"
)
