package cli

import (
	"strings"

	"github.com/iudanet/jobtracker/internal/client/iocli"
	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

const dateLayout = "2006-01-02 15:04"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func printOptional(io iocli.IO, label string, value *string) {
	if value != nil && *value != "" {
		io.Printf("%-16s %s\n", label+":", *value)
	}
}

func printApplication(io iocli.IO, app *pkgapi.ApplicationResponse) {
	io.Printf("%-16s %d\n", "ID:", app.ID)
	io.Printf("%-16s %s\n", "Title:", app.JobTitle)
	io.Printf("%-16s %s\n", "Company:", app.CompanyName)
	io.Printf("%-16s %s\n", "Status:", app.Status)
	io.Printf("%-16s %s\n", "Applied:", app.ApplicationDate.Local().Format(dateLayout))
	io.Printf("%-16s %s\n", "Source:", app.Source)
	printOptional(io, "URL", app.JobURL)
	printOptional(io, "Location", app.Location)
	printOptional(io, "Salary", app.SalaryRange)
	printOptional(io, "Employment", app.EmploymentType)
	printOptional(io, "External ID", app.ExternalJobID)
	printOptional(io, "Notes", app.Notes)
}

func printUser(io iocli.IO, user *pkgapi.UserResponse) {
	io.Printf("%-16s %s %s\n", "Name:", user.FirstName, user.LastName)
	io.Printf("%-16s %s\n", "Email:", user.Email)
	io.Printf("%-16s %s\n", "Member since:", user.CreatedAt.Local().Format(dateLayout))
	if user.LastLogin != nil {
		io.Printf("%-16s %s\n", "Last login:", user.LastLogin.Local().Format(dateLayout))
	}

	p := user.Profile
	printOptional(io, "Phone", p.Phone)
	printOptional(io, "Location", p.Location)
	printOptional(io, "LinkedIn", p.LinkedInURL)
	printOptional(io, "Portfolio", p.PortfolioURL)
	printOptional(io, "Resume", p.ResumePath)
	printOptional(io, "Bio", p.Bio)
	if len(p.Skills) > 0 {
		io.Printf("%-16s %s\n", "Skills:", strings.Join(p.Skills, ", "))
	}
}
