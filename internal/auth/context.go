package auth

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

// PrincipalHeader is the metadata key the identity gateway fills in.
const PrincipalHeader = "x-user-id"

type principalKey struct{}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the caller principal placed by the interceptor, falling
// back to incoming metadata. Empty means anonymous.
func GetPrincipal(ctx context.Context) model.Principal {
	if val, ok := ctx.Value(principalKey{}).(model.Principal); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(PrincipalHeader); len(val) > 0 {
			return model.Principal(val[0])
		}
	}
	return ""
}
