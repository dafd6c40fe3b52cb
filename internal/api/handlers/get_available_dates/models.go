package get_available_dates

import (
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	getAvailableDates "github.com/lashroom/scheduling-service/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Dates []string `json:"dates"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(fromStr, toStr string) (*getAvailableDates.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableDates.Request{From: from, To: to}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, date := range resp.Dates {
		dates[i] = date.Format(domain.DateFormat)
	}

	return &AvailableDatesResponse{
		From:  resp.From.Format(domain.DateFormat),
		To:    resp.To.Format(domain.DateFormat),
		Dates: dates,
	}
}
