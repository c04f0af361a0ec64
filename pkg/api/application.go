package api

import "time"

// ApplicationRequest представляет запрос на создание отклика
type ApplicationRequest struct {
	JobURL         *string `json:"job_url,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	SalaryRange    *string `json:"salary_range,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	ExternalJobID  *string `json:"external_job_id,omitempty"`
	JobTitle       string  `json:"job_title"`
	CompanyName    string  `json:"company_name"`
	Status         string  `json:"status,omitempty"` // по умолчанию "applied"
	Source         string  `json:"source,omitempty"` // по умолчанию "manual"
}

// ApplicationUpdateRequest представляет частичное обновление отклика.
// Статус меняется только через StatusUpdateRequest
type ApplicationUpdateRequest struct {
	JobTitle       *string `json:"job_title,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	JobURL         *string `json:"job_url,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	SalaryRange    *string `json:"salary_range,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Source         *string `json:"source,omitempty"`
	ExternalJobID  *string `json:"external_job_id,omitempty"`
}

// StatusUpdateRequest представляет смену статуса отклика
type StatusUpdateRequest struct {
	Notes  *string `json:"notes,omitempty"`
	Status string  `json:"status"`
}

// ApplicationResponse представляет отклик на вакансию
type ApplicationResponse struct {
	ApplicationDate time.Time `json:"application_date"`
	JobURL          *string   `json:"job_url"`
	Notes           *string   `json:"notes"`
	SalaryRange     *string   `json:"salary_range"`
	Location        *string   `json:"location"`
	EmploymentType  *string   `json:"employment_type"`
	ExternalJobID   *string   `json:"external_job_id"`
	JobTitle        string    `json:"job_title"`
	CompanyName     string    `json:"company_name"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
}

// StatusHistoryResponse представляет запись истории статусов
type StatusHistoryResponse struct {
	ChangedAt     time.Time `json:"changed_at"`
	Notes         *string   `json:"notes"`
	Status        string    `json:"status"`
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
}

// StatsResponse представляет статистику откликов пользователя
type StatsResponse struct {
	StatusBreakdown map[string]int `json:"status_breakdown"`
	Total           int            `json:"total_applications"`
	ThisMonth       int            `json:"this_month"`
	ResponseRate    float64        `json:"response_rate"`
}
