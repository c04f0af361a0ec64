package cli

import (
	"errors"
	"flag"
	"strings"

	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

// applicationFlags описывает поля отклика, задаваемые флагами add и edit
type applicationFlags struct {
	set            map[string]bool
	title          string
	company        string
	url            string
	notes          string
	salary         string
	location       string
	employmentType string
	source         string
	externalID     string
	status         string
}

func (c *Cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

func (f *applicationFlags) bind(fs *flag.FlagSet, withStatus bool) {
	fs.StringVar(&f.title, "title", "", "job title")
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.url, "url", "", "job posting URL")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
	fs.StringVar(&f.salary, "salary", "", "salary range, e.g. '100k-120k'")
	fs.StringVar(&f.location, "location", "", "job location")
	fs.StringVar(&f.employmentType, "type", "", "employment type, e.g. full-time")
	fs.StringVar(&f.source, "source", "", "where the vacancy was found (default manual)")
	fs.StringVar(&f.externalID, "external-id", "", "identifier of the vacancy on the source site")
	if withStatus {
		fs.StringVar(&f.status, "status", "", "initial status (default applied)")
	}
}

// parse разбирает флаги и запоминает, какие из них были заданы явно
func (f *applicationFlags) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return nil
}

// optional возвращает nil для пустого значения
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// ifSet возвращает указатель на значение только для явно заданного флага.
// Пустая строка сохраняется, чтобы поле можно было очистить
func (f *applicationFlags) ifSet(name, value string) *string {
	if !f.set[name] {
		return nil
	}
	v := strings.TrimSpace(value)
	return &v
}

func (f *applicationFlags) createRequest() pkgapi.ApplicationRequest {
	return pkgapi.ApplicationRequest{
		JobTitle:       strings.TrimSpace(f.title),
		CompanyName:    strings.TrimSpace(f.company),
		JobURL:         optional(f.url),
		Notes:          optional(f.notes),
		SalaryRange:    optional(f.salary),
		Location:       optional(f.location),
		EmploymentType: optional(f.employmentType),
		ExternalJobID:  optional(f.externalID),
		Status:         strings.TrimSpace(f.status),
		Source:         strings.TrimSpace(f.source),
	}
}

func (f *applicationFlags) updateRequest() (pkgapi.ApplicationUpdateRequest, error) {
	req := pkgapi.ApplicationUpdateRequest{
		JobTitle:       f.ifSet("title", f.title),
		CompanyName:    f.ifSet("company", f.company),
		JobURL:         f.ifSet("url", f.url),
		Notes:          f.ifSet("notes", f.notes),
		SalaryRange:    f.ifSet("salary", f.salary),
		Location:       f.ifSet("location", f.location),
		EmploymentType: f.ifSet("type", f.employmentType),
		Source:         f.ifSet("source", f.source),
		ExternalJobID:  f.ifSet("external-id", f.externalID),
	}
	if len(f.set) == 0 {
		return req, errors.New("nothing to update, pass at least one flag")
	}
	return req, nil
}
