package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/jobtracker/internal/client/api"
	"github.com/iudanet/jobtracker/internal/client/auth"
	"github.com/iudanet/jobtracker/internal/client/iocli"
	"github.com/iudanet/jobtracker/internal/client/storage/boltdb"
	"github.com/iudanet/jobtracker/internal/server"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/server/storage/sqlite"
	"github.com/iudanet/jobtracker/internal/validation"
)

// testEnv связывает CLI с настоящим сервером на in-memory SQLite
type testEnv struct {
	cli     *Cli
	client  *api.Client
	session *auth.Service
	out     *bytes.Buffer
	io      *iocli.IOMock
	inputs  []string
}

// newTestIO создает IOMock, который пишет в out и читает ответы из очереди env.inputs
func (e *testEnv) newTestIO() *iocli.IOMock {
	next := func(prompt string) (string, error) {
		if len(e.inputs) == 0 {
			return "", io.EOF
		}
		v := e.inputs[0]
		e.inputs = e.inputs[1:]
		return v, nil
	}
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			_, _ = fmt.Fprintln(e.out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			_, _ = fmt.Fprintf(e.out, format, a...)
		},
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
		WriteFunc: func(p []byte) (int, error) {
			return e.out.Write(p)
		},
	}
}

func setupCLI(t *testing.T) *testEnv {
	t.Helper()
	// Пароль из окружения разработчика не должен влиять на тесты
	t.Setenv(PasswordEnv, "")

	ctx := context.Background()
	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	handler, err := server.NewRouter(server.Dependencies{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracker:   service.NewTracker(store, service.Config{}),
		Version:   "test",
		Passwords: validation.DefaultPasswordPolicy(),
	})
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	authStore, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = authStore.Close()
	})

	env := &testEnv{out: &bytes.Buffer{}}
	env.client = api.NewClient(srv.URL)
	env.session = auth.NewService(env.client, authStore, srv.URL)
	env.io = env.newTestIO()
	env.cli = New(env.client, env.session, env.io, Passwords{})
	return env
}

// run выполняет команду с заданными ответами на запросы ввода
func (e *testEnv) run(t *testing.T, command string, args []string, inputs ...string) (string, error) {
	t.Helper()
	e.out.Reset()
	e.inputs = inputs
	err := e.cli.Run(context.Background(), command, args)
	return e.out.String(), err
}

func (e *testEnv) register(t *testing.T, email string) {
	t.Helper()
	_, err := e.run(t, "register", []string{email}, "Alice", "Smith", "secret123", "secret123")
	require.NoError(t, err)
}

// TestGetPassword_FromEnvVar проверяет чтение пароля из переменной окружения
func TestGetPassword_FromEnvVar(t *testing.T) {
	t.Setenv(PasswordEnv, "env_password_123")
	cli := &Cli{passwords: Passwords{FromArgs: "args_password"}}

	password, interactive, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "env_password_123", password)
	assert.False(t, interactive)
}

// TestGetPassword_FromFile проверяет чтение пароля из файла
func TestGetPassword_FromFile(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte("file_password_456\n"), 0o600))

	cli := &Cli{passwords: Passwords{FromFile: path, FromArgs: "args_password"}}
	password, interactive, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "file_password_456", password)
	assert.False(t, interactive)
}

func TestGetPassword_FileErrors(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.txt"), wantErr: "failed to read password file"},
		{name: "empty file", path: empty, wantErr: "password file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &Cli{passwords: Passwords{FromFile: tt.path}}
			_, _, err := cli.getPassword("Password: ")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestGetPassword_FromCLIParam проверяет чтение пароля из CLI параметра
func TestGetPassword_FromCLIParam(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cli := &Cli{passwords: Passwords{FromArgs: "args_password"}}

	password, interactive, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "args_password", password)
	assert.False(t, interactive)
}

// TestGetPassword_Prompt проверяет интерактивный ввод как последний вариант
func TestGetPassword_Prompt(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	mockIO := &iocli.IOMock{
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "typed_password", nil
		},
	}
	cli := &Cli{io: mockIO}

	password, interactive, err := cli.getPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "typed_password", password)
	assert.True(t, interactive)

	calls := mockIO.ReadPasswordCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Password: ", calls[0].Prompt)

	// Пустой ввод не принимается
	mockIO.ReadPasswordFunc = func(prompt string) (string, error) { return "", nil }
	_, _, err = cli.getPassword("Password: ")
	assert.ErrorContains(t, err, "password cannot be empty")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int64
		wantErr bool
	}{
		{name: "valid", args: []string{"42"}, want: 42},
		{name: "extra args ignored", args: []string{"7", "interviewing"}, want: 7},
		{name: "missing", args: nil, wantErr: true},
		{name: "not a number", args: []string{"abc"}, wantErr: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "negative", args: []string{"-3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID(tt.args, "jobtracker get <id>")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCli_UnknownCommand(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "sync", nil)
	assert.ErrorContains(t, err, "unknown command: sync")
	assert.Contains(t, out, "Usage:")

	out, err = env.run(t, "help", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "set-status <id> <status> [notes]")
}

func TestCli_SessionLifecycle(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "register", []string{"Alice@Example.com"}, "Alice", "Smith", "secret123", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Registration successful")
	assert.Contains(t, out, "Email: alice@example.com")

	out, err = env.run(t, "status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Authenticated")
	assert.Contains(t, out, "Email: alice@example.com")
	assert.Contains(t, out, "Server: ok (version test)")
	assert.Contains(t, out, "Session check: confirmed for user #1")

	out, err = env.run(t, "logout", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out successfully")

	out, err = env.run(t, "logout", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = env.run(t, "status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Not authenticated")

	// Пароль из переменной окружения, email из аргумента
	t.Setenv(PasswordEnv, "secret123")
	out, err = env.run(t, "login", []string{"alice@example.com"})
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")
	assert.Empty(t, env.inputs)

	_, err = env.run(t, "login", []string{"alice@example.com"})
	require.NoError(t, err, "repeated login creates another session")
}

func TestCli_Register_Errors(t *testing.T) {
	env := setupCLI(t)
	env.register(t, "alice@example.com")

	tests := []struct {
		name    string
		args    []string
		inputs  []string
		wantErr string
	}{
		{
			name:    "email taken",
			args:    []string{"alice@example.com"},
			wantErr: "already registered",
		},
		{
			name:    "passwords do not match",
			args:    []string{"bob@example.com"},
			inputs:  []string{"Bob", "Jones", "secret123", "secret124"},
			wantErr: "passwords do not match",
		},
		{
			name:    "weak password",
			args:    []string{"bob@example.com"},
			inputs:  []string{"Bob", "Jones", "short", "short"},
			wantErr: "invalid password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, "register", tt.args, tt.inputs...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCli_Login_WrongPassword(t *testing.T) {
	env := setupCLI(t)
	env.register(t, "alice@example.com")
	_, err := env.run(t, "logout", nil)
	require.NoError(t, err)

	_, err = env.run(t, "login", nil, "alice@example.com", "wrong-password1")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	_, err = env.run(t, "list", nil)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestCli_RequiresSession(t *testing.T) {
	env := setupCLI(t)

	commands := []struct {
		command string
		args    []string
	}{
		{command: "add", args: []string{"-title", "Dev", "-company", "Acme"}},
		{command: "list"},
		{command: "get", args: []string{"1"}},
		{command: "edit", args: []string{"1", "-notes", "x"}},
		{command: "set-status", args: []string{"1", "rejected"}},
		{command: "history", args: []string{"1"}},
		{command: "delete", args: []string{"-yes", "1"}},
		{command: "stats"},
		{command: "profile"},
		{command: "profile", args: []string{"delete-account"}},
	}

	for _, tt := range commands {
		t.Run(tt.command, func(t *testing.T) {
			_, err := env.run(t, tt.command, tt.args)
			assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
		})
	}
}

func TestCli_RevokedSessionIsForgotten(t *testing.T) {
	env := setupCLI(t)
	env.register(t, "alice@example.com")

	// Сессия отзывается на сервере в обход локального хранилища
	require.NoError(t, env.client.Logout(context.Background()))

	_, err := env.run(t, "list", nil)
	assert.ErrorContains(t, err, "session is no longer valid")

	out, err := env.run(t, "status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Not authenticated")
}

func TestCli_StatusDetectsRevokedSession(t *testing.T) {
	env := setupCLI(t)
	env.register(t, "alice@example.com")

	require.NoError(t, env.client.Logout(context.Background()))

	out, err := env.run(t, "status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Authenticated")
	assert.Contains(t, out, "Session was revoked on the server")

	_, err = env.session.Stored(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	out, err = env.run(t, "status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Not authenticated")
}
