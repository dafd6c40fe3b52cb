package models

import "github.com/lashroom/scheduling-service/internal/domain"

// ServiceResponse ответ с данными услуги каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{
			Services: []ServiceResponse{},
		}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services[i] = *serviceResp
		}
	}

	return resp
}
