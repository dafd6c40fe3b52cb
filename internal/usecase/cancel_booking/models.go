package cancel_booking

// CancelledBy кто отменяет запись
type CancelledBy string

const (
	// CancelledByClient запись отменяет клиент
	CancelledByClient CancelledBy = "client"
	// CancelledByMaster запись отменяет мастер
	CancelledByMaster CancelledBy = "master"
)

// Request модель запроса на отмену записи
type Request struct {
	BookingID          int64       // ID записи
	CancelledBy        CancelledBy // Инициатор отмены
	CancellationReason string      // Причина отмены (опционально)
}
