package dto

import "testing"

func TestRegisterRequest_ValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
		wantMsg  string
	}{
		{"valid password", "Password1!", true, ""},
		{"valid with symbol", "Celtics#18", true, ""},
		{"too short", "Pa1!", false, "Password must be at least 8 characters"},
		{"too long for bcrypt", "Aa1!" + string(make([]byte, 70)), false, "Password must not exceed 72 characters"},
		{"no uppercase", "banner17!", false, "Password must contain at least one uppercase letter"},
		{"no lowercase", "BANNER17!", false, "Password must contain at least one lowercase letter"},
		{"no digit", "Banners!!", false, "Password must contain at least one digit"},
		{"no special character", "Banners17", false, "Password must contain at least one special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RegisterRequest{Password: tt.password}
			got, msg := req.ValidatePassword()
			if got != tt.want {
				t.Errorf("ValidatePassword() got = %v, want %v", got, tt.want)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidatePassword() msg = %v, want %v", msg, tt.wantMsg)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"fan@example.com", true},
		{"first.last+tix@sub.example.co", true},
		{"no-at-sign.example.com", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, _ := ValidateEmail(tt.email)
			if got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestRegisterRequest_Normalize(t *testing.T) {
	req := &RegisterRequest{FirstName: " Jo ", LastName: "Jo White ", Email: " JoJo@Example.COM "}
	req.Normalize()

	if req.FirstName != "Jo" || req.LastName != "Jo White" {
		t.Errorf("Normalize() names = %q %q", req.FirstName, req.LastName)
	}
	if req.Email != "jojo@example.com" {
		t.Errorf("Normalize() email = %q", req.Email)
	}
}

func TestAdminUpdateUserRequest_Validate(t *testing.T) {
	ok, _ := (&AdminUpdateUserRequest{FirstName: "A", LastName: "B", Email: "a@b.io"}).Validate()
	if !ok {
		t.Error("expected complete request to be valid")
	}

	ok, msg := (&AdminUpdateUserRequest{FirstName: "A", Email: "a@b.io"}).Validate()
	if ok || msg != "First name, last name, and email are required" {
		t.Errorf("Validate() = %v, %q", ok, msg)
	}

	ok, msg = (&AdminUpdateUserRequest{FirstName: "A", LastName: "B", Email: "nope"}).Validate()
	if ok || msg != "Invalid email format" {
		t.Errorf("Validate() = %v, %q", ok, msg)
	}
}
