package handlers

import (
	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/pkg/api"
)

func toUserResponse(u *models.User) api.UserResponse {
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return api.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
		Profile: api.ProfileResponse{
			Phone:        u.Profile.Phone,
			Location:     u.Profile.Location,
			ResumePath:   u.Profile.ResumePath,
			LinkedInURL:  u.Profile.LinkedInURL,
			PortfolioURL: u.Profile.PortfolioURL,
			Bio:          u.Profile.Bio,
			Skills:       skills,
			UpdatedAt:    u.Profile.UpdatedAt,
		},
	}
}

func toApplicationResponse(a *models.JobApplication) api.ApplicationResponse {
	return api.ApplicationResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		JobTitle:        a.JobTitle,
		CompanyName:     a.CompanyName,
		JobURL:          a.JobURL,
		Notes:           a.Notes,
		SalaryRange:     a.SalaryRange,
		Location:        a.Location,
		EmploymentType:  a.EmploymentType,
		Status:          string(a.Status),
		Source:          a.Source,
		ExternalJobID:   a.ExternalJobID,
		ApplicationDate: a.ApplicationDate,
	}
}

func toHistoryResponse(h models.StatusHistory) api.StatusHistoryResponse {
	return api.StatusHistoryResponse{
		ID:            h.ID,
		ApplicationID: h.ApplicationID,
		Status:        string(h.Status),
		Notes:         h.Notes,
		ChangedAt:     h.ChangedAt,
	}
}

func toStatsResponse(s *models.Stats) api.StatsResponse {
	breakdown := make(map[string]int, len(s.StatusBreakdown))
	for status, n := range s.StatusBreakdown {
		breakdown[string(status)] = n
	}
	return api.StatsResponse{
		Total:           s.Total,
		StatusBreakdown: breakdown,
		ThisMonth:       s.ThisMonth,
		ResponseRate:    s.ResponseRate,
	}
}
