package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"vehicle_id",
	"user_id",
	"company_id",
	"driver_id",
	"start_at",
	"end_at",
	"city",
	"intercity",
	"status",
	"amount",
	"payment_ref",
	"handover_at",
	"expires_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование
// Вызывается только внутри сериализуемой транзакции создания брони:
// проверка конфликтов и вставка должны быть единой атомарной операцией
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"vehicle_id",
			"user_id",
			"company_id",
			"driver_id",
			"start_at",
			"end_at",
			"city",
			"intercity",
			"status",
			"amount",
			"expires_at",
		).
		Values(
			booking.VehicleID,
			booking.UserID,
			booking.CompanyID,
			booking.DriverID,
			booking.Interval.StartAt,
			booking.Interval.EndAt,
			booking.City,
			booking.Intercity,
			booking.Status,
			booking.Amount,
			booking.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByPaymentRef получает бронирование по ссылке на платежный intent
// Используется обработчиком webhook подтверждения оплаты
func (r *Repository) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"payment_ref": paymentRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentRef - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBlockingByVehicle получает брони, занимающие автомобиль на момент now:
// confirmed/ongoing плюс pending с неистёкшим hold. Просроченные pending
// игнорируются на уровне запроса (lazy expiry, инвариант I4)
//
// Внутри транзакции строки блокируются (FOR UPDATE): запрос является
// первой фазой атомарной проверки-и-записи при создании брони
func (r *Repository) GetBlockingByVehicle(ctx context.Context, vehicleID int64, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": []string{string(domain.StatusConfirmed), string(domain.StatusOngoing)}},
			squirrel.And{
				squirrel.Eq{"status": string(domain.StatusPending)},
				squirrel.Gt{"expires_at": now},
			},
		}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByVehicle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCompanyWithFilter получает бронирования компании с гибкой фильтрацией
// по автомобилю, периоду, статусу и включению неактивных броней
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.VehicleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_id": *filter.VehicleID})
	}
	if filter.StartAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartAfter})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_at": *filter.StartBefore})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// AttachPayment сохраняет ссылку на платежный intent
// Условие status = pending и неистёкший hold проверяется прямо в запросе,
// чтобы ссылку нельзя было привязать к протухшей брони
func (r *Repository) AttachPayment(ctx context.Context, id int64, paymentRef string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_ref", paymentRef).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "AttachPayment", query, args)
}

// Confirm переводит бронь pending -> confirmed и снимает hold
// Оптимистичная защита: обновляется только строка в статусе pending
func (r *Repository) Confirm(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Confirm", query, args)
}

// MarkOngoing переводит бронь confirmed -> ongoing с фиксацией момента выдачи
func (r *Repository) MarkOngoing(ctx context.Context, id int64, handoverAt time.Time, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusOngoing).
		Set("handover_at", handoverAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkOngoing - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "MarkOngoing", query, args)
}

// Complete переводит бронь ongoing -> completed
func (r *Repository) Complete(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusOngoing}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Complete", query, args)
}

// Cancel переводит бронь в cancelled с указанием причины
// Разрешено только из pending и confirmed; защита - условие в запросе
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Cancel", query, args)
}

// ExpireStalePending отменяет все pending-брони с истёкшим hold
// Возвращает количество отменённых броней. Безопасно выполняется
// параллельно с созданием броней: Create и так игнорирует истёкшие pending
func (r *Repository) ExpireStalePending(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", "hold expired before payment").
		Set("cancelled_at", now).
		Set("expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - execute update: %v", ErrExecQuery, err)
	}

	expired, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - get rows affected: %v", ErrExecQuery, err)
	}

	return expired, nil
}

// execTransition выполняет условное обновление статуса
// Ноль затронутых строк означает, что бронь не в ожидаемом состоянии
func (r *Repository) execTransition(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStaleTransition
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.VehicleID,
		&booking.UserID,
		&booking.CompanyID,
		&booking.DriverID,
		&booking.Interval.StartAt,
		&booking.Interval.EndAt,
		&booking.City,
		&booking.Intercity,
		&booking.Status,
		&booking.Amount,
		&booking.PaymentRef,
		&booking.HandoverAt,
		&booking.ExpiresAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
