package delete_booking

// Request модель запроса на удаление записи
type Request struct {
	BookingID int64 // ID записи
}
