package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
// Интервал приходит уже каноникализированным в UTC-мгновения
type Request struct {
	UserID    int64      // ID арендатора
	VehicleID int64      // ID автомобиля
	DriverID  *int64     // ID водителя компании (опционально)
	StartAt   time.Time  // Начало аренды (UTC)
	EndAt     time.Time  // Конец аренды (UTC)
	City      string     // Город выдачи
	Intercity bool       // Межгородская аренда
	Amount    float64    // Стоимость аренды (считается выше по стеку)
}

// Response модель ответа с созданным бронированием
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
	ExpiresAt time.Time // Момент истечения hold неоплаченной брони

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
