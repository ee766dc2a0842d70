package service

import (
	"context"
	"testing"

	"github.com/naufal/go-antar/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(s *fakeStore) UserService {
	return NewUserService(&fakeUserRepo{s})
}

func TestRegisterPassenger(t *testing.T) {
	s := newFakeStore()
	svc := newUserService(s)

	user, err := svc.Register(context.Background(), &models.RegisterUserRequest{
		Email:    "rina@example.com",
		Password: "secret123",
		FullName: "Rina Wijaya",
		Phone:    "081234567890",
		Role:     models.RolePassenger,
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.ID == "" {
		t.Error("user was not assigned an id")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plain text")
	}
	if _, ok := s.profiles[user.ID]; ok {
		t.Error("passenger should not get a driver profile")
	}
}

func TestRegisterDriverCreatesEmptyProfile(t *testing.T) {
	s := newFakeStore()
	svc := newUserService(s)

	user, err := svc.Register(context.Background(), &models.RegisterUserRequest{
		Email:    "budi@example.com",
		Password: "secret123",
		FullName: "Budi Santoso",
		Phone:    "081234567891",
		Role:     models.RoleDriver,
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	profile, ok := s.profiles[user.ID]
	if !ok {
		t.Fatal("driver registration should create a profile")
	}
	if profile.LicenseNumber != "" || profile.VehicleType != "" || profile.VehiclePlate != "" {
		t.Errorf("new profile should have empty vehicle fields, got %+v", profile)
	}
	if profile.IsAvailable {
		t.Error("new driver should start unavailable")
	}
	if profile.CurrentLat != nil || profile.CurrentLng != nil {
		t.Error("new driver should have no location")
	}
	if profile.SubscriptionExpiresAt != nil {
		t.Error("new driver should have no subscription")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newFakeStore()
	svc := newUserService(s)

	req := &models.RegisterUserRequest{
		Email:    "dup@example.com",
		Password: "secret123",
		FullName: "First",
		Phone:    "081234567892",
		Role:     models.RolePassenger,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	assertAPIErrorCode(t, err, "conflict")
}

func TestGetUser(t *testing.T) {
	s := newFakeStore()
	svc := newUserService(s)
	u := s.addUser(models.RolePassenger)

	got, err := svc.GetUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got user %s, want %s", got.ID, u.ID)
	}

	_, err = svc.GetUser(context.Background(), "99999999-9999-9999-9999-999999999999")
	assertAPIErrorCode(t, err, "not_found")
}
