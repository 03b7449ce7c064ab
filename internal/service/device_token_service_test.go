package service

import (
	"testing"

	"goalapp_backend/internal/repository"
)

func newDeviceTokenService(t *testing.T) *DeviceTokenService {
	t.Helper()
	return NewDeviceTokenService(repository.NewDeviceTokenRepository(newTestDB(t)))
}

func TestRegisterUpsertsByFcmToken(t *testing.T) {
	svc := newDeviceTokenService(t)

	first, err := svc.Register(RegisterTokenRequest{
		FcmToken: "tok", DeviceName: "Pixel", Platform: "android",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	second, err := svc.Register(RegisterTokenRequest{
		FcmToken: "tok", DeviceName: "Pixel 9", Platform: "android",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("re-register created new token %s, want existing %s", second.ID, first.ID)
	}
	if second.DeviceName != "Pixel 9" {
		t.Errorf("deviceName = %q, want updated name", second.DeviceName)
	}

	tokens, err := svc.GetActiveTokens()
	if err != nil {
		t.Fatalf("GetActiveTokens: %v", err)
	}
	if len(tokens) != 1 {
		t.Errorf("active tokens = %d, want 1", len(tokens))
	}
}

func TestDeactivateThenReregisterActivates(t *testing.T) {
	svc := newDeviceTokenService(t)

	token, err := svc.Register(RegisterTokenRequest{FcmToken: "tok"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	deactivated, err := svc.Deactivate(token.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("token still active after deactivate")
	}

	// 注销只停用不删除，重新注册同一令牌会再次激活
	reactivated, err := svc.Register(RegisterTokenRequest{FcmToken: "tok"})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if reactivated.ID != token.ID || !reactivated.IsActive {
		t.Errorf("re-register: id=%s active=%v", reactivated.ID, reactivated.IsActive)
	}
}
