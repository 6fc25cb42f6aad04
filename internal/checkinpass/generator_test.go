package checkinpass_test

import (
	"bytes"
	"testing"

	"ms-attendance/internal/checkinpass"
)

func TestGenerateEncryptedQR(t *testing.T) {
	gen := checkinpass.NewGenerator("test-secret-key")

	png, err := gen.GenerateEncryptedQR(checkinpass.NewPass(1, "S001"))
	if err != nil {
		t.Fatalf("Failed to generate QR code: %v", err)
	}
	if len(png) == 0 {
		t.Error("Generated QR code is empty")
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("QR output is not a PNG image")
	}
}

func TestGenerateEncryptedQRDistinctPasses(t *testing.T) {
	gen := checkinpass.NewGenerator("test-secret-key")

	png1, err := gen.GenerateEncryptedQR(checkinpass.NewPass(1, "S001"))
	if err != nil {
		t.Fatalf("Failed to generate QR code: %v", err)
	}
	png2, err := gen.GenerateEncryptedQR(checkinpass.NewPass(1, "S002"))
	if err != nil {
		t.Fatalf("Failed to generate QR code: %v", err)
	}

	if bytes.Equal(png1, png2) {
		t.Error("QR codes for different students should differ")
	}
}
