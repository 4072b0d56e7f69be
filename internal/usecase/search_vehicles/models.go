package search_vehicles

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на поиск доступных автомобилей
type Request struct {
	StartAt time.Time // Начало аренды (UTC)
	EndAt   time.Time // Конец аренды (UTC)
	City    string    // Город выдачи
}

// VehicleResponse автомобиль в поисковой выдаче
type VehicleResponse struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"companyId"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	CityFee      float64 `json:"cityFee"` // Плата за подачу в запрошенном городе

	BufferTimeHours         int `json:"bufferTimeHours"`
	CancellationWindowHours int `json:"cancellationWindowHours"`
}

// Response модель ответа со списком подходящих автомобилей
type Response struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// fromDomainVehicle конвертирует domain модель в элемент выдачи
func fromDomainVehicle(v *domain.Vehicle, city string) VehicleResponse {
	fee, _ := v.CityFee(city)

	return VehicleResponse{
		ID:                      v.ID,
		CompanyID:               v.CompanyID,
		Brand:                   v.Brand,
		Model:                   v.Model,
		LicensePlate:            v.LicensePlate,
		CityFee:                 fee,
		BufferTimeHours:         v.BufferTimeHours,
		CancellationWindowHours: v.CancellationWindowHours,
	}
}
