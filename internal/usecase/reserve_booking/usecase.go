package reserve_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
)

const defaultCurrency = "RUB"

// UseCase use case резервирования автомобиля с оплатой (первая фаза)
//
// Последовательность: создать pending-бронь с hold, создать платежный intent,
// привязать ссылку intent к брони. Если intent создать не удалось, бронь
// отменяется компенсирующим действием - автомобиль не должен оставаться
// занятым бронью, которую никто не сможет оплатить
type UseCase struct {
	creator       BookingCreator
	bookingSvc    BookingService
	paymentClient PaymentServiceClient
	currency      string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	creator BookingCreator,
	bookingSvc BookingService,
	paymentClient PaymentServiceClient,
	currency string,
	logger Logger,
) *UseCase {
	if currency == "" {
		currency = defaultCurrency
	}
	return &UseCase{
		creator:       creator,
		bookingSvc:    bookingSvc,
		paymentClient: paymentClient,
		currency:      currency,
		logger:        logger,
	}
}

// Execute выполняет резервирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Создаем pending-бронь (атомарная проверка-и-запись)
	// Ошибки создания отдаются как есть: у них уже есть свои sentinel-ошибки
	created, err := uc.creator.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Создаем платежный intent
	// UUID-ключ идемпотентности защищает от дублей при сетевых ретраях
	intentReq := paymentservice.CreateIntentRequest{
		BookingID:      created.ID,
		Amount:         created.Amount,
		Currency:       uc.currency,
		IdempotencyKey: uuid.NewString(),
	}

	intent, err := uc.paymentClient.CreateIntent(ctx, intentReq)
	if err != nil {
		uc.logger.Error("ReserveBooking: failed to create payment intent for booking id=%d: %v",
			created.ID, err)
		uc.compensate(ctx, created.ID, "payment intent creation failed")

		if errors.Is(err, paymentservice.ErrIntentRejected) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentRejected, err)
		}
		return nil, fmt.Errorf("%w: failed to create payment intent: %v", ErrInternal, err)
	}

	// 3. Привязываем ссылку intent к брони
	if err := uc.bookingSvc.AttachPayment(ctx, created.ID, intent.Ref); err != nil {
		uc.logger.Error("ReserveBooking: failed to attach payment ref to booking id=%d: %v",
			created.ID, err)
		uc.compensate(ctx, created.ID, "payment ref attachment failed")
		return nil, fmt.Errorf("%w: failed to attach payment ref: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveBooking: booking id=%d reserved, intent=%s, hold until %s",
		created.ID, intent.Ref, created.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:           created.ID,
		VehicleID:    created.VehicleID,
		UserID:       created.UserID,
		CompanyID:    created.CompanyID,
		DriverID:     created.DriverID,
		StartAt:      created.StartAt,
		EndAt:        created.EndAt,
		City:         created.City,
		Intercity:    created.Intercity,
		Status:       created.Status,
		Amount:       created.Amount,
		ExpiresAt:    created.ExpiresAt,
		PaymentRef:   intent.Ref,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// compensate отменяет бронь после неуспешной платежной фазы
// Ошибка отмены не фатальна: hold истечет сам, уборка дочистит
func (uc *UseCase) compensate(ctx context.Context, bookingID int64, reason string) {
	if err := uc.bookingSvc.Cancel(ctx, bookingID, reason); err != nil {
		uc.logger.Warn("ReserveBooking: compensating cancel failed for booking id=%d: %v",
			bookingID, err)
	}
}
