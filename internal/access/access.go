// Package access resolves a caller principal to its profile and checks the
// capability the requested operation needs.
package access

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type Capability string

const (
	CapManageCart       Capability = "cart:manage"
	CapPlaceOrder       Capability = "order:place"
	CapViewOwnOrders    Capability = "order:view-own"
	CapSubmitProduct    Capability = "product:submit"
	CapViewSellerOrders Capability = "order:view-seller"
	CapModerateProducts Capability = "product:moderate"
	CapManageAllOrders  Capability = "order:manage-all"
	CapAssignRoles      Capability = "user:assign-role"
)

var sellerCaps = []Capability{CapSubmitProduct, CapViewSellerOrders}

var roleCaps = map[model.Role][]Capability{
	model.RoleBuyer:  {CapManageCart, CapPlaceOrder, CapViewOwnOrders},
	model.RoleSeller: sellerCaps,
	// admins see seller dashboards but do not shop
	model.RoleAdmin: append([]Capability{CapModerateProducts, CapManageAllOrders, CapAssignRoles}, sellerCaps...),
}

func Allows(role model.Role, capability Capability) bool {
	for _, c := range roleCaps[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// ProfileFinder is satisfied by the user repository.
type ProfileFinder interface {
	FindByPrincipal(ctx context.Context, principal model.Principal) (*model.UserProfile, error)
}

type Guard struct {
	profiles ProfileFinder
}

func NewGuard(profiles ProfileFinder) *Guard {
	return &Guard{profiles: profiles}
}

// Resolve returns the caller's profile or ProfileRequired.
func (g *Guard) Resolve(ctx context.Context, principal model.Principal) (*model.UserProfile, error) {
	if principal == "" {
		return nil, apperror.New(apperror.KindProfileRequired, "anonymous caller")
	}
	profile, err := g.profiles.FindByPrincipal(ctx, principal)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.New(apperror.KindProfileRequired, "principal %s has no profile", principal)
	}
	return profile, nil
}

// Require resolves the caller and fails with Unauthorized when its role lacks capability.
func (g *Guard) Require(ctx context.Context, principal model.Principal, capability Capability) (*model.UserProfile, error) {
	profile, err := g.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !Allows(profile.Role, capability) {
		return nil, apperror.New(apperror.KindUnauthorized, "role %s cannot %s", profile.Role, capability)
	}
	return profile, nil
}

// IsAdmin reports whether principal has an admin profile. Missing profiles are not admins.
func (g *Guard) IsAdmin(ctx context.Context, principal model.Principal) (bool, error) {
	profile, err := g.Resolve(ctx, principal)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindProfileRequired {
			return false, nil
		}
		return false, err
	}
	return profile.Role == model.RoleAdmin, nil
}
