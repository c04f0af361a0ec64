// Package cli реализует команды клиента job tracker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iudanet/jobtracker/internal/client/api"
	"github.com/iudanet/jobtracker/internal/client/iocli"
	"github.com/iudanet/jobtracker/internal/client/storage"
	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

// PasswordEnv переменная окружения с паролем пользователя
const PasswordEnv = "JOBTRACKER_PASSWORD"

// API is the part of the HTTP client used by the commands.
type API interface {
	Me(ctx context.Context) (*pkgapi.UserResponse, error)
	CheckEmail(ctx context.Context, email string) (*pkgapi.EmailAvailabilityResponse, error)
	GetProfile(ctx context.Context) (*pkgapi.UserResponse, error)
	UpdateProfile(ctx context.Context, req pkgapi.ProfileUpdateRequest) (*pkgapi.UserResponse, error)
	DeleteAccount(ctx context.Context) error
	CreateApplication(ctx context.Context, req pkgapi.ApplicationRequest) (*pkgapi.ApplicationResponse, error)
	ListApplications(ctx context.Context, status string) ([]pkgapi.ApplicationResponse, error)
	GetApplication(ctx context.Context, id int64) (*pkgapi.ApplicationResponse, error)
	UpdateApplication(ctx context.Context, id int64, req pkgapi.ApplicationUpdateRequest) (*pkgapi.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, id int64, req pkgapi.StatusUpdateRequest) (*pkgapi.ApplicationResponse, error)
	DeleteApplication(ctx context.Context, id int64) error
	GetHistory(ctx context.Context, id int64) ([]pkgapi.StatusHistoryResponse, error)
	GetStats(ctx context.Context) (*pkgapi.StatsResponse, error)
	Health(ctx context.Context) (*pkgapi.HealthResponse, error)
}

// Session управляет локальной сессией пользователя
type Session interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*storage.AuthData, error)
	Login(ctx context.Context, email, password string) (*storage.AuthData, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*storage.AuthData, error)
	Stored(ctx context.Context) (*storage.AuthData, error)
	Forget(ctx context.Context) error
}

// Passwords задает неинтерактивные источники пароля
type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	api       API
	session   Session
	io        iocli.IO
	passwords Passwords
}

func New(apiClient API, session Session, io iocli.IO, passwords Passwords) *Cli {
	return &Cli{
		api:       apiClient,
		session:   session,
		io:        io,
		passwords: passwords,
	}
}

// getPassword retrieves the account password from various sources with priority:
// 1. Environment variable JOBTRACKER_PASSWORD
// 2. File specified by Passwords.FromFile
// 3. Command-line parameter Passwords.FromArgs
// 4. Interactive prompt (fallback)
//
// interactive is true when the password was typed by the user.
func (c *Cli) getPassword(prompt string) (password string, interactive bool, err error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, false, nil
	}

	// Priority 2: File
	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", false, errors.New("password file is empty")
		}
		return password, false, nil
	}

	// Priority 3: CLI parameter
	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, false, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err = c.io.ReadPassword(prompt)
	if err != nil {
		return "", false, fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", false, errors.New("password cannot be empty")
	}

	return password, true, nil
}

// requireSession проверяет наличие действующей сессии перед вызовом API
func (c *Cli) requireSession(ctx context.Context) (*storage.AuthData, error) {
	return c.session.Current(ctx)
}

// apiError приводит ошибку сервера к сообщению для пользователя.
// Отозванная на сервере сессия удаляется локально
func (c *Cli) apiError(ctx context.Context, action string, err error) error {
	if api.IsUnauthorized(err) {
		_ = c.session.Forget(ctx)
		return errors.New("session is no longer valid, run 'jobtracker login' again")
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// parseID разбирает идентификатор отклика из аргументов команды
func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing application ID. Usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid application ID %q", args[0])
	}
	return id, nil
}

// confirm запрашивает подтверждение yes/no
func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " (yes/no): ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y", nil
}

func PrintUsage(io iocli.IO) {
	io.Println("Job Tracker Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  jobtracker [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version              Show version information")
	io.Println("  --server URL           Server URL (default: http://localhost:8000)")
	io.Println("  --db PATH              Path to local session database (default: jobtracker-client.db)")
	io.Println("  --password PASSWORD    Account password (not recommended, use env var or file)")
	io.Println("  --password-file PATH   Path to file containing account password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. JOBTRACKER_PASSWORD environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register [email]                  Register new account")
	io.Println("  login [email]                     Login to server")
	io.Println("  logout                            Logout from server")
	io.Println("  status                            Show session and server status")
	io.Println("  add [flags]                       Add job application")
	io.Println("  edit <id> [flags]                 Update application fields")
	io.Println("  list [status]                     List applications, newest first")
	io.Println("  get <id>                          Show application details")
	io.Println("  set-status <id> <status> [notes]  Change application status")
	io.Println("  history <id>                      Show status history")
	io.Println("  delete [-yes] <id>                Delete application")
	io.Println("  stats                             Show application statistics")
	io.Println("  profile [show|set|delete-account] Show or update profile")
	io.Println()
	io.Println("Statuses: applied, interviewing, rejected, accepted, withdrawn")
	io.Println()
	io.Println("Examples:")
	io.Println("  jobtracker register alice@example.com")
	io.Println("  jobtracker add -title 'Go Developer' -company Acme -url https://acme.dev/jobs/1")
	io.Println("  jobtracker list interviewing")
	io.Println("  jobtracker set-status 12 interviewing 'phone screen on Monday'")
	io.Println("  jobtracker profile set -phone '+1 555 0100' -skills go,sql,docker")
	io.Println("  jobtracker --server https://jobs.example.com login")
}
