package gate

import (
	"errors"
	"testing"
)

func TestLoginScenario(t *testing.T) {
	g := New(DefaultCredential)
	if g.State() != Anonymous {
		t.Fatalf("initial state = %v, want anonymous", g.State())
	}
	if err := g.Login("admin", "123456"); err != nil {
		t.Fatalf("Login(admin, 123456) = %v", err)
	}
	if g.State() != Authenticated {
		t.Fatalf("state = %v, want authenticated", g.State())
	}
}

func TestLoginRejectsEveryOtherPair(t *testing.T) {
	pairs := []struct{ id, secret string }{
		{"admin", "1234567"},
		{"admin", ""},
		{"Admin", "123456"},
		{"", ""},
		{"root", "123456"},
		{"admin ", "123456"},
	}
	for _, p := range pairs {
		g := New(DefaultCredential)
		err := g.Login(p.id, p.secret)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) = %v, want ErrInvalidCredentials", p.id, p.secret, err)
		}
		if g.State() != Anonymous {
			t.Errorf("Login(%q, %q) left state %v", p.id, p.secret, g.State())
		}
	}
}

func TestLogoutClearsStagedEdits(t *testing.T) {
	g := New(DefaultCredential)
	if err := g.Login("admin", "123456"); err != nil {
		t.Fatal(err)
	}
	if err := g.Stage("hero.title", "draft"); err != nil {
		t.Fatal(err)
	}
	g.Logout()
	if g.State() != Anonymous {
		t.Errorf("state after logout = %v", g.State())
	}
	if len(g.Pending()) != 0 {
		t.Errorf("pending after logout = %v, want empty", g.Pending())
	}
	// Logging back in starts from a clean buffer.
	if err := g.Login("admin", "123456"); err != nil {
		t.Fatal(err)
	}
	if len(g.Pending()) != 0 {
		t.Errorf("pending after re-login = %v", g.Pending())
	}
}

func TestStageRequiresAuthentication(t *testing.T) {
	g := New(DefaultCredential)
	if err := g.Stage("hero.title", "x"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Stage while anonymous = %v, want ErrNotAuthenticated", err)
	}
}

func TestSaveAndClose(t *testing.T) {
	g := Restore(DefaultCredential, Authenticated)
	_ = g.Stage("hero.title", "A")
	_ = g.Stage("about.desc1", "B")

	var committed map[string]string
	err := g.SaveAndClose(func(m map[string]string) error {
		committed = m
		return nil
	})
	if err != nil {
		t.Fatalf("SaveAndClose: %v", err)
	}
	if committed["hero.title"] != "A" || committed["about.desc1"] != "B" || len(committed) != 2 {
		t.Errorf("committed = %v", committed)
	}
	if g.State() != Anonymous {
		t.Errorf("state after save = %v, want anonymous", g.State())
	}
}

func TestSaveAndCloseFailureKeepsSession(t *testing.T) {
	g := Restore(DefaultCredential, Authenticated)
	_ = g.Stage("hero.badge", "x")
	boom := errors.New("write failed")

	if err := g.SaveAndClose(func(map[string]string) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("SaveAndClose = %v, want %v", err, boom)
	}
	if !g.Authenticated() {
		t.Error("gate should stay authenticated after a failed save")
	}
	if g.Pending()["hero.badge"] != "x" {
		t.Error("staged edits should survive a failed save")
	}
}

func TestSaveAndCloseAnonymous(t *testing.T) {
	g := New(DefaultCredential)
	if err := g.SaveAndClose(func(map[string]string) error { return nil }); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("SaveAndClose while anonymous = %v", err)
	}
}

func TestNilVerifierRejects(t *testing.T) {
	g := New(nil)
	if err := g.Login("admin", "123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login with nil verifier = %v", err)
	}
}

func TestHashedCredential(t *testing.T) {
	hash, err := HashSecret("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	cred := HashedCredential{ID: "owner", Hash: hash}

	g := New(cred)
	if err := g.Login("owner", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong secret: %v", err)
	}
	if err := g.Login("admin", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong id: %v", err)
	}
	if err := g.Login("owner", "correct horse"); err != nil {
		t.Errorf("valid login: %v", err)
	}
}

func TestVerifySecretMalformed(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$v=1$x$y$z", "$argon2id$v=19$m=x$salt$hash"} {
		if _, err := VerifySecret("x", h); err == nil {
			t.Errorf("VerifySecret(%q) should fail", h)
		}
	}
	if (HashedCredential{ID: "a", Hash: "garbage"}).Verify("a", "x") {
		t.Error("malformed hash must reject")
	}
}
