package models

import (
	"fmt"
	"time"
)

// ApplicationStatus определяет статус отклика на вакансию
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusRejected     ApplicationStatus = "rejected"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
)

// AllStatuses lists every known status in lifecycle order.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterviewing,
	StatusRejected,
	StatusAccepted,
	StatusWithdrawn,
}

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw string into ApplicationStatus.
func ParseStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown application status %q", raw)
	}
	return s, nil
}

// EmploymentType определяет тип занятости
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentFreelance  EmploymentType = "freelance"
)

// IsValid reports whether t is one of the known employment types.
func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentFreelance:
		return true
	}
	return false
}

const (
	// DefaultSource источник отклика по умолчанию
	DefaultSource = "manual"
	// InitialHistoryNote заметка первой записи истории
	InitialHistoryNote = "Application created"
)

// JobApplication представляет отклик пользователя на вакансию
type JobApplication struct {
	ApplicationDate time.Time         `json:"application_date"` // выставляется при создании, не меняется
	JobURL          *string           `json:"job_url,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	SalaryRange     *string           `json:"salary_range,omitempty"`
	Location        *string           `json:"location,omitempty"`
	EmploymentType  *string           `json:"employment_type,omitempty"`
	ExternalJobID   *string           `json:"external_job_id,omitempty"` // ID вакансии во внешнем API (для дедупликации)
	JobTitle        string            `json:"job_title"`
	CompanyName     string            `json:"company_name"`
	Status          ApplicationStatus `json:"status"`
	Source          string            `json:"source"`
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
}

// NewApplication carries the fields accepted when an application is created.
// Empty Status and Source fall back to StatusApplied and DefaultSource.
type NewApplication struct {
	JobURL         *string
	Notes          *string
	SalaryRange    *string
	Location       *string
	EmploymentType *string
	ExternalJobID  *string
	JobTitle       string
	CompanyName    string
	Status         ApplicationStatus
	Source         string
}

// ApplicationUpdate describes a sparse update of the editable application fields.
// Status is deliberately absent: it only changes through a status transition.
type ApplicationUpdate struct {
	JobTitle       *string
	CompanyName    *string
	JobURL         *string
	Notes          *string
	SalaryRange    *string
	Location       *string
	EmploymentType *string
	Source         *string
	ExternalJobID  *string
}

// IsEmpty reports whether the update carries no fields.
func (u ApplicationUpdate) IsEmpty() bool {
	return u.JobTitle == nil && u.CompanyName == nil && u.JobURL == nil &&
		u.Notes == nil && u.SalaryRange == nil && u.Location == nil &&
		u.EmploymentType == nil && u.Source == nil && u.ExternalJobID == nil
}

// StatusHistory представляет запись журнала смены статусов (append-only)
type StatusHistory struct {
	ChangedAt     time.Time         `json:"changed_at"`
	Notes         *string           `json:"notes,omitempty"`
	Status        ApplicationStatus `json:"status"`
	ID            int64             `json:"id"`
	ApplicationID int64             `json:"application_id"`
}

// Stats представляет агрегированную статистику откликов пользователя
type Stats struct {
	StatusBreakdown map[ApplicationStatus]int `json:"status_breakdown"`
	Total           int                       `json:"total_applications"`
	ThisMonth       int                       `json:"this_month"`
	ResponseRate    float64                   `json:"response_rate"` // процент, округлён до 0.1
}
