package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart"
	"github.com/fekuna/omnipos-marketplace-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-marketplace-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/order"
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/observability"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/validate"
)

type orderUseCase struct {
	repo      order.Repository
	carts     cart.Repository
	inventory inventory.UseCase
	locker    inventory.Locker
	publisher order.EventPublisher
	guard     *access.Guard
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewOrderUseCase(
	repo order.Repository,
	carts cart.Repository,
	inv inventory.UseCase,
	locker inventory.Locker,
	publisher order.EventPublisher,
	guard *access.Guard,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		carts:     carts,
		inventory: inv,
		locker:    locker,
		publisher: publisher,
		guard:     guard,
		logger:    log,
		now:       time.Now,
	}
}

// PlaceOrder turns the caller's cart into an order. The buyer's cart lock is
// held from the cart read until the cart is emptied, so one cart yields at
// most one order. Stock is reserved for every line or for none, and the cart
// is emptied only after the order is stored.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, caller model.Principal, input *dto.PlaceOrderInput) (id uint64, err error) {
	ctx, span := otel.Tracer(observability.ServiceName).Start(ctx, "order.PlaceOrder")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if _, err := uc.guard.Require(ctx, caller, access.CapPlaceOrder); err != nil {
		return 0, err
	}
	if err := validate.Struct(input); err != nil {
		return 0, err
	}
	if !input.PaymentMethod.Valid() {
		return 0, apperror.New(apperror.KindInvalidInput, "unknown payment method %q", input.PaymentMethod)
	}

	unlock, err := uc.locker.Lock(ctx, []string{cart.LockKey(caller)})
	if err != nil {
		return 0, err
	}
	defer unlock()

	items, err := uc.carts.Get(ctx, caller)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, apperror.New(apperror.KindEmptyCart, "cart of %s is empty", caller)
	}

	res, err := uc.inventory.Reserve(ctx, items)
	if err != nil {
		return 0, err
	}

	now := uc.now()
	o := &model.Order{
		BaseModel:     model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Buyer:         caller,
		Items:         snapshot(res),
		TotalAmount:   res.Total(),
		PaymentMethod: input.PaymentMethod,
		ShippingInfo:  input.ShippingInfo,
		Status:        model.OrderStatusPending,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		if relErr := uc.inventory.Release(ctx, res); relErr != nil {
			uc.logger.Error("failed to release reservation", zap.Error(relErr))
		}
		return 0, err
	}
	span.SetAttributes(attribute.Int64("order.id", int64(o.ID)), attribute.Int("order.items", len(o.Items)))

	// the order stands even if the cart cannot be emptied
	if err := uc.carts.Clear(ctx, caller); err != nil {
		uc.logger.Error("failed to clear cart after placement", zap.Uint64("order_id", o.ID), zap.Error(err))
	}
	if err := uc.publisher.PublishOrderPlaced(ctx, o); err != nil {
		uc.logger.Error("failed to publish order placed", zap.Uint64("order_id", o.ID), zap.Error(err))
	}

	uc.logger.Info("order placed",
		zap.Uint64("order_id", o.ID),
		zap.String("buyer", string(caller)),
		zap.Int64("total_amount", o.TotalAmount),
	)
	return o.ID, nil
}

func snapshot(res *invdto.Reservation) []model.OrderItem {
	items := make([]model.OrderItem, len(res.Lines))
	for i, l := range res.Lines {
		items[i] = model.OrderItem{
			ProductID:    l.Item.ProductID,
			ProductName:  l.Product.Name,
			Seller:       l.Product.Seller,
			VariantIndex: l.Item.VariantIndex,
			VariantSize:  l.Variant.Size,
			VariantColor: l.Variant.Color,
			Quantity:     l.Item.Quantity,
			Price:        l.Variant.Price,
		}
	}
	return items
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, caller model.Principal, id uint64, status model.OrderStatus) error {
	profile, err := uc.guard.Resolve(ctx, caller)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return apperror.New(apperror.KindInvalidInput, "unknown order status %q", status)
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperror.New(apperror.KindNotFound, "order %d", id)
	}
	if !access.Allows(profile.Role, access.CapManageAllOrders) && !o.HasSeller(caller) {
		return apperror.New(apperror.KindForbidden, "order %d has no items sold by %s", id, caller)
	}
	if !o.Status.CanTransitionTo(status) {
		return apperror.New(apperror.KindInvalidTransition, "order %d cannot go from %s to %s", id, o.Status, status)
	}

	from := o.Status
	now := uc.now()
	if err := uc.repo.UpdateStatus(ctx, id, from, status, now); err != nil {
		return err
	}
	o.Status = status
	o.UpdatedAt = now

	if err := uc.publisher.PublishOrderStatusChanged(ctx, o, from); err != nil {
		uc.logger.Error("failed to publish order status change", zap.Uint64("order_id", id), zap.Error(err))
	}
	uc.logger.Info("order status updated",
		zap.Uint64("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
		zap.String("by", string(caller)),
	)
	return nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, caller model.Principal, id uint64) (*model.Order, error) {
	profile, err := uc.guard.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.New(apperror.KindNotFound, "order %d", id)
	}
	if o.Buyer != caller && !o.HasSeller(caller) && !access.Allows(profile.Role, access.CapManageAllOrders) {
		return nil, apperror.New(apperror.KindForbidden, "order %d is not visible to %s", id, caller)
	}
	return o, nil
}

func (uc *orderUseCase) GetBuyerOrders(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapViewOwnOrders); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx, &dto.OrderFilters{Buyer: caller})
}

func (uc *orderUseCase) GetSellerOrders(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapViewSellerOrders); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx, &dto.OrderFilters{Seller: caller})
}

func (uc *orderUseCase) GetAllOrders(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageAllOrders); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx, nil)
}
