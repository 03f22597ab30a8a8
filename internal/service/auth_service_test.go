package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuth(t *testing.T) (*authService, *env) {
	t.Helper()
	e := newEnv(t)
	svc := NewAuthService(e.cfg, e.users).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	svc.now = func() time.Time { return start }
	return svc, e
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuth(t)

	resp, err := svc.SignupStudent(dto.SignupRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "s3cretpass", USN: "1AB21CS001"})
	if err != nil {
		t.Fatalf("SignupStudent: %v", err)
	}
	if resp.User.Email != "asha@example.com" || resp.User.Role != model.RoleStudent || resp.AccessToken == "" {
		t.Errorf("signup response = %+v", resp)
	}
	if !resp.ExpiresAt.Equal(start.Add(time.Hour)) {
		t.Errorf("expires at %v", resp.ExpiresAt)
	}

	if _, err := svc.SignupStudent(dto.SignupRequest{Name: "Again", Email: "asha@example.com", Password: "another-pass"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}

	login, err := svc.Login(dto.LoginRequest{Email: "ASHA@example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.ParseToken(login.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != resp.User.ID || claims.Role != model.RoleStudent {
		t.Errorf("claims = %+v (id %d, %v)", claims, id, err)
	}

	if _, err := svc.Login(dto.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestSignupInterviewer(t *testing.T) {
	svc, e := newAuth(t)
	resp, err := svc.SignupInterviewer(dto.InterviewerSignupRequest{Name: "HR", Email: "hr@acme.io", Password: "hiring-2025", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("SignupInterviewer: %v", err)
	}
	u, err := e.users.FindByID(resp.User.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u.Role != model.RoleInterviewer || u.CompanyName != "Acme" || u.PasswordHash == "hiring-2025" {
		t.Errorf("stored user = %+v", u)
	}
}

func TestParseTokenRejects(t *testing.T) {
	svc, _ := newAuth(t)
	resp, err := svc.SignupStudent(dto.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("SignupStudent: %v", err)
	}

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := svc.ParseToken(resp.AccessToken); err == nil {
		t.Error("expired token accepted")
	}

	svc.now = func() time.Time { return start }
	other := NewAuthService(testConfig(), nil).(*authService)
	other.secret = []byte("different")
	other.now = svc.now
	if _, err := other.ParseToken(resp.AccessToken); err == nil {
		t.Error("token signed with another secret accepted")
	}
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}

// emailLookupMiss hides existing users from FindByEmail so the insert is the
// first place a duplicate shows up.
type emailLookupMiss struct {
	repository.UserRepository
}

func (emailLookupMiss) FindByEmail(string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSignupDuplicateOnInsert(t *testing.T) {
	svc, e := newAuth(t)
	if _, err := svc.SignupStudent(dto.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "s3cretpass"}); err != nil {
		t.Fatalf("SignupStudent: %v", err)
	}

	svc.userRepo = emailLookupMiss{e.users}
	if _, err := svc.SignupStudent(dto.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "s3cretpass"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}
