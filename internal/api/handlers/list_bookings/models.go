package list_bookings

import (
	"strconv"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(startDateStr, endDateStr, statusStr, clientPhone, includeInactiveStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if clientPhone != "" {
		req.ClientPhone = &clientPhone
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
