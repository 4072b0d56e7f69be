package reserve_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// Request модель запроса на резервирование с оплатой
// Поля совпадают с запросом создания брони: резервирование - это
// создание pending-брони плюс первая фаза платежа
type Request = create_booking.Request

// Response модель ответа с созданной бронью и данными для оплаты
type Response struct {
	ID        int64     // ID созданного бронирования
	VehicleID int64     // ID автомобиля
	UserID    int64     // ID арендатора
	CompanyID int64     // ID компании-владельца
	DriverID  *int64    // ID водителя (опционально)
	StartAt   time.Time // Начало аренды
	EndAt     time.Time // Конец аренды
	City      string    // Город выдачи
	Intercity bool      // Межгородская аренда
	Status    string    // Статус бронирования (pending)
	Amount    float64   // Стоимость аренды
	ExpiresAt time.Time // Момент истечения hold

	// Данные платежа: ссылка intent и секрет для клиентского SDK процессинга
	PaymentRef   string
	ClientSecret string
}
